package bittrex

import (
	"bittrex-client/pkg/domain/exchange"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// 認証エラーとして扱うメッセージ
var authMessages = map[string]struct{}{
	"APIKEY_INVALID":       {},
	"APIKEY_NOT_PROVIDED":  {},
	"APISIGN_NOT_PROVIDED": {},
	"INVALID_SIGNATURE":    {},
	"INVALID_PERMISSION":   {},
}

// envelope 全APIで共通のレスポンス
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`

	// StatusCode HTTPステータス
	StatusCode int `json:"-"`
}

// FormatPair 通貨ペアを取引所形式に変換（例: btc_ppc -> btc-ppc）
func FormatPair(pair string) (string, error) {
	if strings.Count(pair, "_") != 1 {
		return "", fmt.Errorf("%w: %q", exchange.ErrInvalidFormat, pair)
	}
	splited := strings.Split(strings.TrimSpace(pair), "_")
	if !isSymbol(splited[0]) || !isSymbol(splited[1]) {
		return "", fmt.Errorf("%w: %q", exchange.ErrInvalidFormat, pair)
	}
	return strings.ToLower(splited[0] + "-" + splited[1]), nil
}

// isSymbol 通貨シンボルとして妥当か（英数字のみ、空でない）
func isSymbol(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// marketName APIパラメータ用のマーケット名（例: BTC-PPC）
func marketName(pair string) (string, error) {
	if strings.Contains(pair, "_") {
		formatted, err := FormatPair(pair)
		if err != nil {
			return "", err
		}
		return strings.ToUpper(formatted), nil
	}

	splited := strings.Split(strings.TrimSpace(pair), "-")
	if len(splited) != 2 || !isSymbol(splited[0]) || !isSymbol(splited[1]) {
		return "", fmt.Errorf("%w: %q", exchange.ErrInvalidFormat, pair)
	}
	return strings.ToUpper(splited[0] + "-" + splited[1]), nil
}

func (c *Client) makeURL(endpoint string, queries map[string]string) (*url.URL, error) {
	u, err := url.Parse(c.origin)
	if err != nil {
		return nil, fmt.Errorf("failed parse origin url; origin: %s, error: %w", c.origin, err)
	}

	u.Path = path.Join(u.Path, endpoint)

	if queries == nil {
		return u, nil
	}

	q := u.Query()
	for k, v := range queries {
		q.Add(k, v)
	}
	u.RawQuery = q.Encode()

	return u, nil
}

// sign 署名付きURLと署名を生成
func (c *Client) sign(u *url.URL) string {
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("nonce", createNonce())
	u.RawQuery = q.Encode()
	return computeHmac512(u.String(), c.apiSecret)
}

// call リクエストを送信しエンベロープを返す
//
// 通信・認証の失敗のみ error になる。success=false の判断は呼び出し側が行う。
func (c *Client) call(ctx context.Context, endpoint string, queries map[string]string, signed bool) (*envelope, error) {
	if signed && !c.hasCredentials() {
		return nil, fmt.Errorf("%w: api key and secret are required, endpoint: %s", exchange.ErrAuthentication, endpoint)
	}

	u, err := c.makeURL(endpoint, queries)
	if err != nil {
		return nil, err
	}

	var signature string
	if signed {
		signature = c.sign(u)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if signed {
		req.Header.Add("apisign", signature)
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("cache-control", "no-cache")

	c.logger.Debug("request GET %s", u.Path)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &exchange.TransportError{Endpoint: endpoint, Err: err}
	}
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, &exchange.TransportError{Endpoint: endpoint, StatusCode: res.StatusCode, Err: err}
	}

	env := envelope{StatusCode: res.StatusCode}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &exchange.TransportError{
			Endpoint:   endpoint,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("failed to parse response body, body: %s; error: %w", truncate(body, 256), err),
		}
	}
	if !env.Success {
		if _, ok := authMessages[env.Message]; ok {
			c.logger.Error("authentication rejected, endpoint: %s, message: %s", endpoint, env.Message)
			return nil, fmt.Errorf("%w: endpoint: %s, message: %s", exchange.ErrAuthentication, endpoint, env.Message)
		}
	}
	if !env.statusOK() {
		if env.Success || env.Message == "" {
			return nil, &exchange.TransportError{
				Endpoint:   endpoint,
				StatusCode: res.StatusCode,
				Err:        fmt.Errorf("unexpected status: %s", res.Status),
			}
		}
	}

	return &env, nil
}

func (e *envelope) statusOK() bool {
	return e.StatusCode >= 200 && e.StatusCode < 300
}

// requestWithValidation リクエストを送信し result を resJSON にデコードする
//
// success=false は ExchangeError になる。
func (c *Client) requestWithValidation(ctx context.Context, endpoint string, queries map[string]string, signed bool, resJSON interface{}) error {
	env, err := c.call(ctx, endpoint, queries, signed)
	if err != nil {
		return err
	}
	if !env.Success {
		c.logger.Error("response is error, endpoint: %s, message: %s", endpoint, env.Message)
		return &exchange.ExchangeError{Endpoint: endpoint, Message: env.Message}
	}
	if len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, resJSON); err != nil {
		return &exchange.TransportError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("failed to parse result, result: %s; error: %w", truncate(env.Result, 256), err),
		}
	}
	return nil
}

// validateEach スライスの各要素を検証
func (c *Client) validateEach(endpoint string, n int, at func(i int) interface{}) error {
	for i := 0; i < n; i++ {
		if err := c.validate.Struct(at(i)); err != nil {
			c.logger.Warn("payload validation failed, endpoint: %s, index: %d; error: %v", endpoint, i, err)
			return &exchange.TransportError{Endpoint: endpoint, Err: fmt.Errorf("invalid payload at %d: %w", i, err)}
		}
	}
	return nil
}

func (c *Client) validateOne(endpoint string, v interface{}) error {
	if err := c.validate.Struct(v); err != nil {
		c.logger.Warn("payload validation failed, endpoint: %s; error: %v", endpoint, err)
		return &exchange.TransportError{Endpoint: endpoint, Err: fmt.Errorf("invalid payload: %w", err)}
	}
	return nil
}

func createNonce() string {
	nonce := time.Now().UnixNano() / (int64(time.Millisecond) / int64(time.Nanosecond))
	return strconv.FormatInt(nonce, 10)
}

func computeHmac512(uri, secret string) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(uri))
	return hex.EncodeToString(h.Sum(nil))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
