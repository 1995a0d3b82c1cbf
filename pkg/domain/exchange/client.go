package exchange

import (
	"bittrex-client/pkg/domain/model"
	"context"

	"github.com/shopspring/decimal"
)

// PublicClient 認証不要のAPI
type PublicClient interface {
	GetMarkets(ctx context.Context) ([]string, error)
	GetMarketTicker(ctx context.Context, pair string) (*model.Ticker, error)
	GetMarketOrders(ctx context.Context, pair string, depth int) (*model.OrderBook, error)
	GetMarketTradeHistory(ctx context.Context, pair string, count int) ([]model.Trade, error)
	GetMarketDepth(ctx context.Context, pair string) (*model.MarketDepth, error)
	GetMarketSpread(ctx context.Context, pair string) (decimal.Decimal, error)
}

// PrivateClient 署名付きリクエストが必要なAPI
type PrivateClient interface {
	GetBalances(ctx context.Context) ([]model.Balance, error)
	GetOpenOrders(ctx context.Context) ([]model.OpenOrder, error)
	GetDepositAddress(ctx context.Context, currency string) (string, error)
	Buy(ctx context.Context, pair string, quantity, rate decimal.Decimal) (*model.OrderResult, error)
	Sell(ctx context.Context, pair string, quantity, rate decimal.Decimal) (*model.OrderResult, error)
	CancelOrder(ctx context.Context, orderUUID string) error
}

// Client 取引所クライアント
type Client interface {
	PublicClient
	PrivateClient
}
