package bittrex

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// タイムゾーンなしで返ってくるがUTC
const timeLayout = "2006-01-02T15:04:05"

// bittrexTime 取引所の日時表現
type bittrexTime struct {
	time.Time
}

func (t *bittrexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return fmt.Errorf("failed to parse time, value: %s; error: %w", s, err)
		}
	}
	t.Time = parsed
	return nil
}

func (t *bittrexTime) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// market マーケット
type market struct {
	MarketCurrency string          `json:"MarketCurrency" validate:"required"`
	BaseCurrency   string          `json:"BaseCurrency" validate:"required"`
	MinTradeSize   decimal.Decimal `json:"MinTradeSize"`
	MarketName     string          `json:"MarketName" validate:"required"`
	IsActive       bool            `json:"IsActive"`
}

// ticker ティッカー
type ticker struct {
	Bid  decimal.Decimal `json:"Bid"`
	Ask  decimal.Decimal `json:"Ask"`
	Last decimal.Decimal `json:"Last"`
}

// bookEntry 板の1段
type bookEntry struct {
	Quantity decimal.Decimal `json:"Quantity"`
	Rate     decimal.Decimal `json:"Rate"`
}

// orderBook 板（type=both）
type orderBook struct {
	Buy  []bookEntry `json:"buy"`
	Sell []bookEntry `json:"sell"`
}

// marketHistory 約定履歴
type marketHistory struct {
	ID        int64           `json:"Id" validate:"gt=0"`
	TimeStamp bittrexTime     `json:"TimeStamp"`
	Quantity  decimal.Decimal `json:"Quantity"`
	Price     decimal.Decimal `json:"Price"`
	Total     decimal.Decimal `json:"Total"`
	FillType  string          `json:"FillType" validate:"required"`
	OrderType string          `json:"OrderType" validate:"required,oneof=BUY SELL"`
}

// marketSummary 24時間サマリ
type marketSummary struct {
	MarketName     string          `json:"MarketName" validate:"required"`
	High           decimal.Decimal `json:"High"`
	Low            decimal.Decimal `json:"Low"`
	Volume         decimal.Decimal `json:"Volume"`
	Last           decimal.Decimal `json:"Last"`
	BaseVolume     decimal.Decimal `json:"BaseVolume"`
	TimeStamp      bittrexTime     `json:"TimeStamp"`
	Bid            decimal.Decimal `json:"Bid"`
	Ask            decimal.Decimal `json:"Ask"`
	OpenBuyOrders  int             `json:"OpenBuyOrders"`
	OpenSellOrders int             `json:"OpenSellOrders"`
}

// balance 残高
type balance struct {
	Currency      string          `json:"Currency" validate:"required"`
	Balance       decimal.Decimal `json:"Balance"`
	Available     decimal.Decimal `json:"Available"`
	Pending       decimal.Decimal `json:"Pending"`
	CryptoAddress *string         `json:"CryptoAddress"`
}

// depositAddress 入金アドレス
type depositAddress struct {
	Currency string `json:"Currency"`
	Address  string `json:"Address" validate:"required"`
}

// openOrder 未約定の注文
type openOrder struct {
	UUID              *string             `json:"Uuid" validate:"omitempty,uuid"`
	OrderUUID         string              `json:"OrderUuid" validate:"required,uuid"`
	Exchange          string              `json:"Exchange" validate:"required"`
	OrderType         string              `json:"OrderType" validate:"required"`
	Quantity          decimal.Decimal     `json:"Quantity"`
	QuantityRemaining decimal.Decimal     `json:"QuantityRemaining"`
	Limit             decimal.Decimal     `json:"Limit"`
	CommissionPaid    decimal.Decimal     `json:"CommissionPaid"`
	Price             decimal.Decimal     `json:"Price"`
	PricePerUnit      decimal.NullDecimal `json:"PricePerUnit"`
	Opened            bittrexTime         `json:"Opened"`
	Closed            *bittrexTime        `json:"Closed"`
	CancelInitiated   bool                `json:"CancelInitiated"`
	ImmediateOrCancel bool                `json:"ImmediateOrCancel"`
	IsConditional     bool                `json:"IsConditional"`
	Condition         string              `json:"Condition"`
	ConditionTarget   decimal.NullDecimal `json:"ConditionTarget"`
}

// orderHistory 注文履歴
type orderHistory struct {
	OrderUUID         string              `json:"OrderUuid" validate:"required,uuid"`
	Exchange          string              `json:"Exchange" validate:"required"`
	TimeStamp         bittrexTime         `json:"TimeStamp"`
	OrderType         string              `json:"OrderType" validate:"required"`
	Limit             decimal.Decimal     `json:"Limit"`
	Quantity          decimal.Decimal     `json:"Quantity"`
	QuantityRemaining decimal.Decimal     `json:"QuantityRemaining"`
	Commission        decimal.Decimal     `json:"Commission"`
	Price             decimal.Decimal     `json:"Price"`
	PricePerUnit      decimal.NullDecimal `json:"PricePerUnit"`
}

// placedOrder 注文受付
type placedOrder struct {
	UUID string `json:"uuid" validate:"required,uuid"`
}
