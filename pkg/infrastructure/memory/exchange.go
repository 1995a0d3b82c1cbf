package memory

import (
	"bittrex-client/pkg/domain/exchange"
	"bittrex-client/pkg/domain/model"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot CSV1行分の市場状態
type Snapshot struct {
	Datetime     time.Time
	Bid          decimal.Decimal
	BidQuantity  decimal.Decimal
	Ask          decimal.Decimal
	AskQuantity  decimal.Decimal
	Last         decimal.Decimal
	LastQuantity decimal.Decimal
}

// NewSnapshot CSVの1行から生成
//
// 列: 日時(RFC3339), 買い気配, 買い数量, 売り気配, 売り数量, 約定価格, 約定数量
func NewSnapshot(v []string) (*Snapshot, error) {
	if len(v) != 7 {
		return nil, fmt.Errorf("csv is not 7 columns, [%d columns]", len(v))
	}
	datetime, err := time.Parse(time.RFC3339, v[0])
	if err != nil {
		return nil, err
	}
	values := make([]decimal.Decimal, 6)
	for i := range values {
		if values[i], err = decimal.NewFromString(v[i+1]); err != nil {
			return nil, fmt.Errorf("failed to parse column %d, value: %s; error: %w", i+1, v[i+1], err)
		}
	}

	return &Snapshot{
		Datetime:     datetime,
		Bid:          values[0],
		BidQuantity:  values[1],
		Ask:          values[2],
		AskQuantity:  values[3],
		Last:         values[4],
		LastQuantity: values[5],
	}, nil
}

// ExchangeMock 取引所モック
//
// CSVの各行を1ステップとして公開APIを再現する。
type ExchangeMock struct {
	mu         sync.RWMutex
	pair       model.CurrencyPair
	reader     *csv.Reader
	snapshot   Snapshot
	trades     []model.Trade
	maxHistory int
	err        error
}

// NewExchangeMock 生成
func NewExchangeMock(p *model.CurrencyPair, r io.Reader) (*ExchangeMock, error) {
	reader := csv.NewReader(r)

	// ヘッダを読み飛ばす
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	e := &ExchangeMock{
		pair:       *p,
		reader:     reader,
		trades:     []model.Trade{},
		maxHistory: 100,
	}
	if !e.NextStep() {
		if e.err != nil {
			return nil, e.err
		}
		return nil, fmt.Errorf("csv has no snapshot rows")
	}
	return e, nil
}

// Err NextStep が読み込みに失敗した場合のエラー（終端まで読めた場合は nil）
func (e *ExchangeMock) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.err
}

// NextStep 次のステップに進める
//
// データの終端または読み込み失敗で false を返す。失敗の内容は Err で取得する。
func (e *ExchangeMock) NextStep() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.err != nil {
		return false
	}
	record, err := e.reader.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		e.err = err
		return false
	}
	s, err := NewSnapshot(record)
	if err != nil {
		line, _ := e.reader.FieldPos(0)
		e.err = fmt.Errorf("invalid snapshot at line %d: %w", line, err)
		return false
	}

	e.snapshot = *s

	orderType := "SELL"
	if s.Last.GreaterThanOrEqual(s.Ask) {
		orderType = "BUY"
	}
	trade := model.Trade{
		ID:        int64(len(e.trades) + 1),
		TimeStamp: s.Datetime,
		Quantity:  s.LastQuantity,
		Price:     s.Last,
		Total:     s.Last.Mul(s.LastQuantity),
		FillType:  model.FillTypeFill,
		OrderType: orderType,
	}
	// 新しい順
	e.trades = append([]model.Trade{trade}, e.trades...)
	if len(e.trades) > e.maxHistory {
		e.trades = e.trades[:e.maxHistory]
	}
	return true
}

func (e *ExchangeMock) checkPair(pair string) error {
	p, err := model.ParseToCurrencyPair(pair)
	if err != nil {
		return fmt.Errorf("%w: %v", exchange.ErrInvalidFormat, err)
	}
	if *p != e.pair {
		return &exchange.ExchangeError{Endpoint: "mock", Message: "INVALID_MARKET"}
	}
	return nil
}

// GetMarkets マーケット一覧
func (e *ExchangeMock) GetMarkets(ctx context.Context) ([]string, error) {
	return []string{e.pair.String()}, nil
}

// GetMarketTicker ティッカー取得
func (e *ExchangeMock) GetMarketTicker(ctx context.Context, pair string) (*model.Ticker, error) {
	if err := e.checkPair(pair); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	return &model.Ticker{
		Bid:  e.snapshot.Bid,
		Ask:  e.snapshot.Ask,
		Last: e.snapshot.Last,
	}, nil
}

// GetMarketOrders 板取得（各側1段）
func (e *ExchangeMock) GetMarketOrders(ctx context.Context, pair string, depth int) (*model.OrderBook, error) {
	if err := e.checkPair(pair); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	buy := []model.OrderBookEntry{}
	if e.snapshot.BidQuantity.IsPositive() {
		buy = append(buy, model.OrderBookEntry{Price: e.snapshot.Bid, Quantity: e.snapshot.BidQuantity})
	}
	sell := []model.OrderBookEntry{}
	if e.snapshot.AskQuantity.IsPositive() {
		sell = append(sell, model.OrderBookEntry{Price: e.snapshot.Ask, Quantity: e.snapshot.AskQuantity})
	}
	return model.NewOrderBook(buy, sell, depth), nil
}

// GetMarketTradeHistory 約定履歴（新しい順）
func (e *ExchangeMock) GetMarketTradeHistory(ctx context.Context, pair string, count int) ([]model.Trade, error) {
	if err := e.checkPair(pair); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := len(e.trades)
	if count > 0 && count < n {
		n = count
	}
	return append([]model.Trade{}, e.trades[:n]...), nil
}

// GetMarketDepth 板の厚み
func (e *ExchangeMock) GetMarketDepth(ctx context.Context, pair string) (*model.MarketDepth, error) {
	book, err := e.GetMarketOrders(ctx, pair, 0)
	if err != nil {
		return nil, err
	}
	depth := book.Depth()
	return &depth, nil
}

// GetMarketSpread スプレッド
func (e *ExchangeMock) GetMarketSpread(ctx context.Context, pair string) (decimal.Decimal, error) {
	book, err := e.GetMarketOrders(ctx, pair, 0)
	if err != nil {
		return decimal.Zero, err
	}
	spread, err := book.Spread()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", exchange.ErrInsufficientData, err)
	}
	return spread, nil
}
