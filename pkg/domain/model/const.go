package model

const (
	// LimitBuy 指値買い
	LimitBuy OrderType = "LIMIT_BUY"
	// LimitSell 指値売り
	LimitSell OrderType = "LIMIT_SELL"
)

const (
	// Buy 買い
	Buy OrderSide = "buy"
	// Sell 売り
	Sell OrderSide = "sell"
)

const (
	// BTC ビットコイン
	BTC CurrencyType = "btc"
	// LTC ライトコイン
	LTC CurrencyType = "ltc"
	// PPC ピアコイン
	PPC CurrencyType = "ppc"
	// VTC バートコイン
	VTC CurrencyType = "vtc"
	// ETH イーサリアム
	ETH CurrencyType = "eth"
	// USDT テザー
	USDT CurrencyType = "usdt"
)

var (
	// BtcLtc BTC-LTC
	BtcLtc CurrencyPair = CurrencyPair{Base: BTC, Quote: LTC}
	// BtcPpc BTC-PPC
	BtcPpc CurrencyPair = CurrencyPair{Base: BTC, Quote: PPC}
	// BtcVtc BTC-VTC
	BtcVtc CurrencyPair = CurrencyPair{Base: BTC, Quote: VTC}
)

const (
	// PairSeparator 正規形式の区切り文字
	PairSeparator = "_"
	// MarketSeparator 取引所形式の区切り文字
	MarketSeparator = "-"
)

const (
	// FillTypeFill 全約定
	FillTypeFill = "FILL"
	// FillTypePartial 部分約定
	FillTypePartial = "PARTIAL_FILL"
)
