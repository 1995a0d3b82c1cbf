package repository

import (
	"bittrex-client/pkg/domain/model"
	"time"

	"github.com/shopspring/decimal"
)

// MarketRepository 市場情報用リポジトリ
type MarketRepository interface {
	AddMarket(*model.MarketSnapshot) error
	AddTrades(*model.CurrencyPair, []model.Trade) error
	// GetMarkets 古い順に返す。duration はそのペアの最新の記録時刻から遡る期間で、nil なら全期間。
	GetMarkets(p *model.CurrencyPair, duration *time.Duration) ([]model.MarketSnapshot, error)
}

// SpreadRepository スプレッド用リポジトリ
type SpreadRepository interface {
	AddSpread(*model.CurrencyPair, decimal.Decimal) error
	GetCurrentSpread(*model.CurrencyPair) *decimal.Decimal
	GetSpreadHistory(*model.CurrencyPair) []decimal.Decimal
	GetHistorySizeMax() int
}
