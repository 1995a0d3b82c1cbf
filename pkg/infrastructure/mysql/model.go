package mysql

import (
	"bittrex-client/pkg/domain/model"
	"time"

	"github.com/shopspring/decimal"
)

// Market 市場情報
type Market struct {
	ID         uint64
	Pair       string          `gorm:"index:idx_markets_pair_recorded_at"`
	Bid        decimal.Decimal `gorm:"type:decimal(30,12)"`
	Ask        decimal.Decimal `gorm:"type:decimal(30,12)"`
	Last       decimal.Decimal `gorm:"type:decimal(30,12)"`
	Spread     decimal.Decimal `gorm:"type:decimal(30,12)"`
	BidDepth   decimal.Decimal `gorm:"type:decimal(36,12)"`
	AskDepth   decimal.Decimal `gorm:"type:decimal(36,12)"`
	RecordedAt time.Time       `gorm:"index:idx_markets_pair_recorded_at"`
}

// NewMarket 生成
func NewMarket(org *model.MarketSnapshot) *Market {
	return &Market{
		Pair:       org.Pair.String(),
		Bid:        org.Bid,
		Ask:        org.Ask,
		Last:       org.Last,
		Spread:     org.Spread,
		BidDepth:   org.BidDepth,
		AskDepth:   org.AskDepth,
		RecordedAt: org.RecordedAt,
	}
}

// ToDomainModel ドメインモデルに変換
func (m *Market) ToDomainModel() (*model.MarketSnapshot, error) {
	pair, err := model.ParseToCurrencyPair(m.Pair)
	if err != nil {
		return nil, err
	}
	return &model.MarketSnapshot{
		Pair:       *pair,
		Bid:        m.Bid,
		Ask:        m.Ask,
		Last:       m.Last,
		Spread:     m.Spread,
		BidDepth:   m.BidDepth,
		AskDepth:   m.AskDepth,
		RecordedAt: m.RecordedAt,
	}, nil
}

// Trade 約定履歴
type Trade struct {
	// 取引所の約定ID
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	Pair       string `gorm:"primaryKey"`
	OrderType  string
	FillType   string
	Price      decimal.Decimal `gorm:"type:decimal(30,12)"`
	Quantity   decimal.Decimal `gorm:"type:decimal(30,12)"`
	Total      decimal.Decimal `gorm:"type:decimal(36,12)"`
	TradedAt   time.Time
	RecordedAt time.Time
}

// NewTrade 生成
func NewTrade(p *model.CurrencyPair, org *model.Trade, now time.Time) *Trade {
	return &Trade{
		ID:         org.ID,
		Pair:       p.String(),
		OrderType:  org.OrderType,
		FillType:   org.FillType,
		Price:      org.Price,
		Quantity:   org.Quantity,
		Total:      org.Total,
		TradedAt:   org.TimeStamp,
		RecordedAt: now,
	}
}

// ToDomainModel ドメインモデルに変換
func (t *Trade) ToDomainModel() *model.Trade {
	return &model.Trade{
		ID:        t.ID,
		TimeStamp: t.TradedAt,
		Quantity:  t.Quantity,
		Price:     t.Price,
		Total:     t.Total,
		FillType:  t.FillType,
		OrderType: t.OrderType,
	}
}
