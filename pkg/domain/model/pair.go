package model

import (
	"fmt"
	"strings"
)

// CurrencyType 通貨種別
type CurrencyType string

// CurrencyPair 通貨ペア
type CurrencyPair struct {
	Base  CurrencyType
	Quote CurrencyType
}

// String 取引所形式（例: btc-ltc）に変換
func (p CurrencyPair) String() string {
	return string(p.Base) + MarketSeparator + string(p.Quote)
}

// Canonical 正規形式（例: btc_ltc）に変換
func (p CurrencyPair) Canonical() string {
	return string(p.Base) + PairSeparator + string(p.Quote)
}

// MarketName APIパラメータ用のマーケット名（例: BTC-LTC）
func (p CurrencyPair) MarketName() string {
	return strings.ToUpper(p.String())
}

// ParseToCurrencyPair 文字列から通貨ペアを生成
//
// 正規形式（btc_ltc）と取引所形式（btc-ltc）のどちらも受け付ける。
func ParseToCurrencyPair(s string) (*CurrencyPair, error) {
	sep := PairSeparator
	if !strings.Contains(s, PairSeparator) {
		sep = MarketSeparator
	}
	splited := strings.Split(strings.ToLower(strings.TrimSpace(s)), sep)
	if len(splited) != 2 || splited[0] == "" || splited[1] == "" {
		return nil, fmt.Errorf("failed to parse currency pair, value: %q", s)
	}
	return &CurrencyPair{
		Base:  CurrencyType(splited[0]),
		Quote: CurrencyType(splited[1]),
	}, nil
}
