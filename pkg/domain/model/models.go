package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType 注文種別
type OrderType string

// OrderSide 売買区分
type OrderSide string

// Ticker ティッカー
type Ticker struct {
	Bid  decimal.Decimal `json:"bid"`
	Ask  decimal.Decimal `json:"ask"`
	Last decimal.Decimal `json:"last"`
}

// OrderBookEntry 板の1段
type OrderBookEntry struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Trade 約定履歴
type Trade struct {
	ID        int64           `json:"id"`
	TimeStamp time.Time       `json:"timeStamp"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	FillType  string          `json:"fillType"`
	OrderType string          `json:"orderType"`
}

// MarketDepth 板の厚み（価格×数量の合計）
type MarketDepth struct {
	Bids decimal.Decimal `json:"bids"`
	Asks decimal.Decimal `json:"asks"`
}

// MarketSummary 24時間サマリ
type MarketSummary struct {
	MarketName     string          `json:"marketName"`
	High           decimal.Decimal `json:"high"`
	Low            decimal.Decimal `json:"low"`
	Volume         decimal.Decimal `json:"volume"`
	BaseVolume     decimal.Decimal `json:"baseVolume"`
	Last           decimal.Decimal `json:"last"`
	Bid            decimal.Decimal `json:"bid"`
	Ask            decimal.Decimal `json:"ask"`
	OpenBuyOrders  int             `json:"openBuyOrders"`
	OpenSellOrders int             `json:"openSellOrders"`
	TimeStamp      time.Time       `json:"timeStamp"`
}

// Balance 残高
type Balance struct {
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Available     decimal.Decimal `json:"available"`
	Pending       decimal.Decimal `json:"pending"`
	CryptoAddress *string         `json:"cryptoAddress"`
}

// OpenOrder 未約定の注文
type OpenOrder struct {
	UUID              *uuid.UUID          `json:"uuid"`
	OrderUUID         uuid.UUID           `json:"orderUuid"`
	Exchange          string              `json:"exchange"`
	OrderType         OrderType           `json:"orderType"`
	Quantity          decimal.Decimal     `json:"quantity"`
	QuantityRemaining decimal.Decimal     `json:"quantityRemaining"`
	Limit             decimal.Decimal     `json:"limit"`
	CommissionPaid    decimal.Decimal     `json:"commissionPaid"`
	Price             decimal.Decimal     `json:"price"`
	PricePerUnit      decimal.NullDecimal `json:"pricePerUnit"`
	Opened            time.Time           `json:"opened"`
	Closed            *time.Time          `json:"closed"`
	CancelInitiated   bool                `json:"cancelInitiated"`
	ImmediateOrCancel bool                `json:"immediateOrCancel"`
	IsConditional     bool                `json:"isConditional"`
	Condition         string              `json:"condition"`
	ConditionTarget   decimal.NullDecimal `json:"conditionTarget"`
}

// OrderHistoryEntry 注文履歴
type OrderHistoryEntry struct {
	OrderUUID         uuid.UUID           `json:"orderUuid"`
	Exchange          string              `json:"exchange"`
	TimeStamp         time.Time           `json:"timeStamp"`
	OrderType         OrderType           `json:"orderType"`
	Limit             decimal.Decimal     `json:"limit"`
	Quantity          decimal.Decimal     `json:"quantity"`
	QuantityRemaining decimal.Decimal     `json:"quantityRemaining"`
	Commission        decimal.Decimal     `json:"commission"`
	Price             decimal.Decimal     `json:"price"`
	PricePerUnit      decimal.NullDecimal `json:"pricePerUnit"`
}

// PlacedOrder 受け付けられた注文
type PlacedOrder struct {
	UUID uuid.UUID `json:"uuid"`
}

// OrderResult 注文結果
//
// 最低取引額未満などの業務的な拒否は Success=false と Message で表現する。
// 通信・認証の失敗は error として返し、ここには現れない。
type OrderResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Result  *PlacedOrder `json:"result"`
}

// Rejected 業務的に拒否されたか
func (r *OrderResult) Rejected() bool {
	return !r.Success
}

// MarketSnapshot ある時点の市場状態
type MarketSnapshot struct {
	Pair       CurrencyPair    `json:"pair"`
	Bid        decimal.Decimal `json:"bid"`
	Ask        decimal.Decimal `json:"ask"`
	Last       decimal.Decimal `json:"last"`
	Spread     decimal.Decimal `json:"spread"`
	BidDepth   decimal.Decimal `json:"bidDepth"`
	AskDepth   decimal.Decimal `json:"askDepth"`
	RecordedAt time.Time       `json:"recordedAt"`
}
