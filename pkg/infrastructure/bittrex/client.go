package bittrex

import (
	"bittrex-client/pkg/domain"
	"bittrex-client/pkg/domain/exchange"
	"bittrex-client/pkg/domain/model"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	origin = "https://bittrex.com/api/v1.1/"

	// DefaultDepth 板の厚み・スプレッド計算に使う段数
	DefaultDepth = 50
	// MaxDepth 取引所が返す板の最大段数
	MaxDepth = 500
)

// Client Bittrex用クライアント
//
// 生成後に状態を変更しないため、複数のゴルーチンから同時に利用できる。
type Client struct {
	logger     domain.Logger
	apiKey     string
	apiSecret  string
	origin     string
	httpClient *http.Client
	validate   *validator.Validate
}

// Option クライアントの設定
type Option func(*Client)

// WithBaseURL 接続先を変更
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.origin = baseURL
		}
	}
}

// WithHTTPClient HTTPクライアントを変更
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout タイムアウトを変更
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// NewClient 認証情報付きのクライアントを生成
func NewClient(logger domain.Logger, apiKey, apiSecret string, opts ...Option) *Client {
	c := &Client{
		logger:     logger,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		origin:     origin,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewPublicClient 公開APIのみ利用するクライアントを生成
func NewPublicClient(logger domain.Logger, opts ...Option) *Client {
	return NewClient(logger, "", "", opts...)
}

func (c *Client) hasCredentials() bool {
	return c.apiKey != "" && c.apiSecret != ""
}

// GetMarkets 取引可能なマーケット一覧（例: btc-ltc）
func (c *Client) GetMarkets(ctx context.Context) ([]string, error) {
	const endpoint = "public/getmarkets"

	var res []market
	if err := c.requestWithValidation(ctx, endpoint, nil, false, &res); err != nil {
		return nil, err
	}
	if err := c.validateEach(endpoint, len(res), func(i int) interface{} { return &res[i] }); err != nil {
		return nil, err
	}

	markets := []string{}
	for _, m := range res {
		if !m.IsActive {
			continue
		}
		markets = append(markets, strings.ToLower(m.MarketName))
	}
	return markets, nil
}

// GetMarketTicker ティッカー取得
func (c *Client) GetMarketTicker(ctx context.Context, pair string) (*model.Ticker, error) {
	const endpoint = "public/getticker"

	name, err := marketName(pair)
	if err != nil {
		return nil, err
	}

	var res ticker
	if err := c.requestWithValidation(ctx, endpoint, map[string]string{"market": name}, false, &res); err != nil {
		return nil, err
	}
	return &model.Ticker{
		Bid:  res.Bid,
		Ask:  res.Ask,
		Last: res.Last,
	}, nil
}

// GetMarketOrders 板取得
//
// 各側は depth 段以下。買いは価格の降順、売りは価格の昇順。
func (c *Client) GetMarketOrders(ctx context.Context, pair string, depth int) (*model.OrderBook, error) {
	const endpoint = "public/getorderbook"

	name, err := marketName(pair)
	if err != nil {
		return nil, err
	}
	if depth <= 0 || depth > MaxDepth {
		depth = MaxDepth
	}

	var res orderBook
	if err := c.requestWithValidation(ctx, endpoint, map[string]string{
		"market": name,
		"type":   "both",
		"depth":  strconv.Itoa(depth),
	}, false, &res); err != nil {
		return nil, err
	}

	return model.NewOrderBook(toBookEntries(res.Buy), toBookEntries(res.Sell), depth), nil
}

// GetMarketTradeHistory 約定履歴（新しい順、最大 count 件）
//
// count が0以下の場合は取引所が返す全件。
func (c *Client) GetMarketTradeHistory(ctx context.Context, pair string, count int) ([]model.Trade, error) {
	const endpoint = "public/getmarkethistory"

	name, err := marketName(pair)
	if err != nil {
		return nil, err
	}

	var res []marketHistory
	if err := c.requestWithValidation(ctx, endpoint, map[string]string{"market": name}, false, &res); err != nil {
		return nil, err
	}
	if err := c.validateEach(endpoint, len(res), func(i int) interface{} { return &res[i] }); err != nil {
		return nil, err
	}

	if count > 0 && len(res) > count {
		res = res[:count]
	}
	trades := make([]model.Trade, 0, len(res))
	for _, h := range res {
		trades = append(trades, model.Trade{
			ID:        h.ID,
			TimeStamp: h.TimeStamp.Time,
			Quantity:  h.Quantity,
			Price:     h.Price,
			Total:     h.Total,
			FillType:  h.FillType,
			OrderType: h.OrderType,
		})
	}
	return trades, nil
}

// GetLastTrades 直近 count 件の約定履歴
//
// count 件に満たない場合は ErrInsufficientData。
func (c *Client) GetLastTrades(ctx context.Context, pair string, count int) ([]model.Trade, error) {
	trades, err := c.GetMarketTradeHistory(ctx, pair, count)
	if err != nil {
		return nil, err
	}
	if len(trades) < count {
		return nil, fmt.Errorf("%w: want %d trades, got %d, pair: %s", exchange.ErrInsufficientData, count, len(trades), pair)
	}
	return trades, nil
}

// GetMarketDepth 板の厚み（価格×数量の合計）
//
// 板が空の側は0。
func (c *Client) GetMarketDepth(ctx context.Context, pair string) (*model.MarketDepth, error) {
	book, err := c.GetMarketOrders(ctx, pair, DefaultDepth)
	if err != nil {
		return nil, err
	}
	depth := book.Depth()
	return &depth, nil
}

// GetMarketSpread スプレッド（最良売り気配 - 最良買い気配）
func (c *Client) GetMarketSpread(ctx context.Context, pair string) (decimal.Decimal, error) {
	book, err := c.GetMarketOrders(ctx, pair, DefaultDepth)
	if err != nil {
		return decimal.Zero, err
	}
	spread, err := book.Spread()
	if errors.Is(err, model.ErrEmptyBook) {
		return decimal.Zero, fmt.Errorf("%w: %v, pair: %s", exchange.ErrInsufficientData, err, pair)
	}
	return spread, err
}

// GetMarketSummary 24時間サマリ
func (c *Client) GetMarketSummary(ctx context.Context, pair string) (*model.MarketSummary, error) {
	const endpoint = "public/getmarketsummary"

	name, err := marketName(pair)
	if err != nil {
		return nil, err
	}

	// 単一マーケットでも配列で返ってくる
	var res []marketSummary
	if err := c.requestWithValidation(ctx, endpoint, map[string]string{"market": name}, false, &res); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, &exchange.ExchangeError{Endpoint: endpoint, Message: "EMPTY_RESULT"}
	}
	s := res[0]
	if err := c.validateOne(endpoint, &s); err != nil {
		return nil, err
	}

	return &model.MarketSummary{
		MarketName:     strings.ToLower(s.MarketName),
		High:           s.High,
		Low:            s.Low,
		Volume:         s.Volume,
		BaseVolume:     s.BaseVolume,
		Last:           s.Last,
		Bid:            s.Bid,
		Ask:            s.Ask,
		OpenBuyOrders:  s.OpenBuyOrders,
		OpenSellOrders: s.OpenSellOrders,
		TimeStamp:      s.TimeStamp.Time,
	}, nil
}

func toBookEntries(entries []bookEntry) []model.OrderBookEntry {
	ee := make([]model.OrderBookEntry, 0, len(entries))
	for _, e := range entries {
		ee = append(ee, model.OrderBookEntry{
			Price:    e.Rate,
			Quantity: e.Quantity,
		})
	}
	return ee
}
