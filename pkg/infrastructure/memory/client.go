package memory

import (
	"bittrex-client/pkg/domain/model"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// SpreadRepository スプレッド保存
type SpreadRepository struct {
	mu      sync.RWMutex
	maxSize int
	queues  map[string][]decimal.Decimal
}

// NewSpreadRepository 生成
func NewSpreadRepository(maxSize int) *SpreadRepository {
	return &SpreadRepository{
		maxSize: maxSize,
		queues:  map[string][]decimal.Decimal{},
	}
}

// AddSpread スプレッド追加
func (r *SpreadRepository) AddSpread(p *model.CurrencyPair, spread decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := p.String()
	q := append(r.queues[key], spread)
	if len(q) > r.maxSize {
		q = q[len(q)-r.maxSize:]
	}
	r.queues[key] = q
	return nil
}

// GetCurrentSpread 最新のスプレッドを取得
func (r *SpreadRepository) GetCurrentSpread(p *model.CurrencyPair) *decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := r.queues[p.String()]
	if len(q) == 0 {
		return nil
	}
	v := q[len(q)-1]
	return &v
}

// GetSpreadHistory スプレッドの履歴を取得（古い順）
func (r *SpreadRepository) GetSpreadHistory(p *model.CurrencyPair) []decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]decimal.Decimal{}, r.queues[p.String()]...)
}

// GetHistorySizeMax 最大容量取得
func (r *SpreadRepository) GetHistorySizeMax() int {
	return r.maxSize
}

// MarketRepository 市場情報保存
type MarketRepository struct {
	mu      sync.RWMutex
	markets []model.MarketSnapshot
	trades  map[string][]model.Trade
}

// NewMarketRepository 生成
func NewMarketRepository() *MarketRepository {
	return &MarketRepository{
		markets: []model.MarketSnapshot{},
		trades:  map[string][]model.Trade{},
	}
}

// AddMarket 市場情報追加
func (r *MarketRepository) AddMarket(m *model.MarketSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.markets = append(r.markets, *m)
	return nil
}

// AddTrades 約定履歴追加
func (r *MarketRepository) AddTrades(p *model.CurrencyPair, trades []model.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trades[p.String()] = append(r.trades[p.String()], trades...)
	return nil
}

// GetMarkets 市場情報取得（古い順）
func (r *MarketRepository) GetMarkets(p *model.CurrencyPair, duration *time.Duration) ([]model.MarketSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	markets := []model.MarketSnapshot{}
	for _, m := range r.markets {
		if m.Pair == *p {
			markets = append(markets, m)
		}
	}
	if duration == nil || len(markets) == 0 {
		return markets, nil
	}

	// 最新の記録時刻から遡る
	border := markets[len(markets)-1].RecordedAt.Add(-*duration)
	for i, m := range markets {
		if !m.RecordedAt.Before(border) {
			return markets[i:], nil
		}
	}
	return markets, nil
}

// GetTrades 保存済みの約定履歴
func (r *MarketRepository) GetTrades(p *model.CurrencyPair) []model.Trade {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.Trade{}, r.trades[p.String()]...)
}
