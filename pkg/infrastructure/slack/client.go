package slack

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// TextMessage テキストのみのメッセージ
type TextMessage struct {
	Text string `json:"text"`
}

// Client IncomingWebhook用クライアント
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient 生成
func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// PostMessage メッセージ送信
func (c *Client) PostMessage(ctx context.Context, messageObj interface{}) error {
	values, err := json.Marshal(messageObj)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(values))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("slack response %d error: %s", res.StatusCode, body)
	}

	return nil
}

// Notify テキスト通知
func (c *Client) Notify(ctx context.Context, text string) error {
	return c.PostMessage(ctx, &TextMessage{Text: text})
}
