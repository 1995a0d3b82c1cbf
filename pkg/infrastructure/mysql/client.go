package mysql

import (
	"bittrex-client/pkg/domain/model"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Client MySQL用クライアント
type Client struct {
	db *gorm.DB
}

// NewClient MySQL用クライアントの生成
func NewClient(userName, password, dbHost string, dbPort int, dbName string) (*Client, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC", userName, password, dbHost, dbPort, dbName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database, host: %s, name: %s; error: %w", dbHost, dbName, err)
	}

	return &Client{
		db: db,
	}, nil
}

// Migrate テーブル作成
func (c *Client) Migrate() error {
	return c.db.AutoMigrate(&Market{}, &Trade{})
}

// AddMarket 市場情報の登録
func (c *Client) AddMarket(m *model.MarketSnapshot) error {
	return c.db.Create(NewMarket(m)).Error
}

// AddTrades 約定履歴の登録（登録済みは無視）
func (c *Client) AddTrades(p *model.CurrencyPair, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	now := time.Now()
	records := []Trade{}
	for i := range trades {
		records = append(records, *NewTrade(p, &trades[i], now))
	}

	return c.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error
}

// GetMarkets 市場情報の取得（古い順）
//
// duration が nil の場合は全期間。
func (c *Client) GetMarkets(p *model.CurrencyPair, duration *time.Duration) ([]model.MarketSnapshot, error) {
	records := []Market{}
	if err := c.marketsQuery(p, duration).Find(&records).Error; err != nil {
		return nil, err
	}

	markets := []model.MarketSnapshot{}
	for _, r := range records {
		m, err := r.ToDomainModel()
		if err != nil {
			return nil, err
		}
		markets = append(markets, *m)
	}
	return markets, nil
}

// marketsQuery 市場情報の検索条件
//
// duration はそのペアの最新の記録時刻から遡る。
func (c *Client) marketsQuery(p *model.CurrencyPair, duration *time.Duration) *gorm.DB {
	q := c.db.Where("pair = ?", p.String())
	if duration != nil {
		latest := c.db.Model(&Market{}).Select("MAX(recorded_at)").Where("pair = ?", p.String())
		q = q.Where("recorded_at >= DATE_SUB((?), INTERVAL ? MICROSECOND)", latest, duration.Microseconds())
	}
	return q.Order("recorded_at")
}
