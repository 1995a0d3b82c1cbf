package usecase

import (
	"bittrex-client/pkg/domain"
	"bittrex-client/pkg/domain/exchange"
	"bittrex-client/pkg/domain/model"
	"bittrex-client/pkg/domain/repository"
	"context"
	"errors"
	"time"
)

// TradeFilter 未取得の約定を選別する
type TradeFilter interface {
	FilterNew(*model.CurrencyPair, []model.Trade) []model.Trade
}

// Fetcher 情報取得
type Fetcher struct {
	pair        model.CurrencyPair
	exCli       exchange.PublicClient
	repo        repository.MarketRepository
	filter      TradeFilter
	logger      domain.Logger
	depth       int
	tradeCount  int
	currentTime func() time.Time
}

// NewFetcher 生成
func NewFetcher(exCli exchange.PublicClient, pair model.CurrencyPair, repo repository.MarketRepository, filter TradeFilter, logger domain.Logger) *Fetcher {
	return &Fetcher{
		pair:        pair,
		exCli:       exCli,
		repo:        repo,
		filter:      filter,
		logger:      logger,
		depth:       50,
		tradeCount:  100,
		currentTime: time.Now,
	}
}

// Fetch 各種情報を取得して保存
func (f *Fetcher) Fetch(ctx context.Context) (*model.MarketSnapshot, error) {
	market := f.pair.String()

	ticker, err := f.exCli.GetMarketTicker(ctx, market)
	if err != nil {
		return nil, err
	}

	// スプレッドと板の厚みは同じ板から計算する
	book, err := f.exCli.GetMarketOrders(ctx, market, f.depth)
	if err != nil {
		return nil, err
	}
	spread, err := book.Spread()
	if errors.Is(err, model.ErrEmptyBook) {
		f.logger.Warn("order book is one-sided, pair: %s, buy: %d, sell: %d", market, len(book.Buy), len(book.Sell))
	} else if err != nil {
		return nil, err
	}
	depth := book.Depth()

	snapshot := &model.MarketSnapshot{
		Pair:       f.pair,
		Bid:        ticker.Bid,
		Ask:        ticker.Ask,
		Last:       ticker.Last,
		Spread:     spread,
		BidDepth:   depth.Bids,
		AskDepth:   depth.Asks,
		RecordedAt: f.currentTime(),
	}
	f.logger.Debug("%+v", *snapshot)
	if err := f.repo.AddMarket(snapshot); err != nil {
		return nil, err
	}

	if err := f.fetchTrades(ctx); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// fetchTrades 新しい約定履歴を保存
func (f *Fetcher) fetchTrades(ctx context.Context) error {
	trades, err := f.exCli.GetMarketTradeHistory(ctx, f.pair.String(), f.tradeCount)
	if err != nil {
		return err
	}
	fresh := f.filter.FilterNew(&f.pair, trades)
	if len(fresh) == 0 {
		return nil
	}
	f.logger.Debug("new trades, pair: %s, count: %d", f.pair.String(), len(fresh))
	return f.repo.AddTrades(&f.pair, fresh)
}
