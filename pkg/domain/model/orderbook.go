package model

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrEmptyBook 板の片側が空
var ErrEmptyBook = errors.New("order book side is empty")

// OrderBook 板情報
//
// Buy は価格の降順（最良買い気配が先頭）、Sell は価格の昇順（最良売り気配が先頭）。
type OrderBook struct {
	Buy  []OrderBookEntry `json:"buy"`
	Sell []OrderBookEntry `json:"sell"`
}

// NewOrderBook 板を生成し、並び順と段数を揃える
//
// depth が0以下の場合は段数を制限しない。
func NewOrderBook(buy, sell []OrderBookEntry, depth int) *OrderBook {
	b := &OrderBook{
		Buy:  append([]OrderBookEntry{}, buy...),
		Sell: append([]OrderBookEntry{}, sell...),
	}
	sort.SliceStable(b.Buy, func(i, j int) bool {
		return b.Buy[i].Price.GreaterThan(b.Buy[j].Price)
	})
	sort.SliceStable(b.Sell, func(i, j int) bool {
		return b.Sell[i].Price.LessThan(b.Sell[j].Price)
	})
	if depth > 0 {
		if len(b.Buy) > depth {
			b.Buy = b.Buy[:depth]
		}
		if len(b.Sell) > depth {
			b.Sell = b.Sell[:depth]
		}
	}
	return b
}

// BestBid 最良買い気配
func (b *OrderBook) BestBid() (*OrderBookEntry, error) {
	if len(b.Buy) == 0 {
		return nil, ErrEmptyBook
	}
	return &b.Buy[0], nil
}

// BestAsk 最良売り気配
func (b *OrderBook) BestAsk() (*OrderBookEntry, error) {
	if len(b.Sell) == 0 {
		return nil, ErrEmptyBook
	}
	return &b.Sell[0], nil
}

// Spread 最良売り気配 - 最良買い気配
func (b *OrderBook) Spread() (decimal.Decimal, error) {
	bid, err := b.BestBid()
	if err != nil {
		return decimal.Zero, err
	}
	ask, err := b.BestAsk()
	if err != nil {
		return decimal.Zero, err
	}
	return ask.Price.Sub(bid.Price), nil
}

// Depth 片側ごとの価格×数量の合計
//
// 丸めは行わない。空の側は0。
func (b *OrderBook) Depth() MarketDepth {
	return MarketDepth{
		Bids: notional(b.Buy),
		Asks: notional(b.Sell),
	}
}

func notional(entries []OrderBookEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Price.Mul(e.Quantity))
	}
	return sum
}
