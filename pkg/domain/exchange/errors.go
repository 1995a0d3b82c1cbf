package exchange

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat 通貨ペアの書式不正
	ErrInvalidFormat = errors.New("invalid pair format")
	// ErrAuthentication 認証情報なし、または取引所が認証を拒否
	ErrAuthentication = errors.New("authentication failed")
	// ErrInsufficientData 要求された件数のデータが存在しない
	ErrInsufficientData = errors.New("insufficient data")
)

// ExchangeError 取引所がリクエストを拒否した（認証以外）
type ExchangeError struct {
	Endpoint string
	Message  string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("exchange rejected request, endpoint: %s, message: %s", e.Endpoint, e.Message)
}

// TransportError 通信・HTTP層の失敗
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error, endpoint: %s, status: %d; error: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error, endpoint: %s; error: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
