package bittrex

import (
	"bittrex-client/pkg/domain/exchange"
	"bittrex-client/pkg/domain/model"
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetBalances 残高取得
func (c *Client) GetBalances(ctx context.Context) ([]model.Balance, error) {
	const endpoint = "account/getbalances"

	var res []balance
	if err := c.requestWithValidation(ctx, endpoint, nil, true, &res); err != nil {
		return nil, err
	}
	if err := c.validateEach(endpoint, len(res), func(i int) interface{} { return &res[i] }); err != nil {
		return nil, err
	}

	balances := make([]model.Balance, 0, len(res))
	for _, b := range res {
		balances = append(balances, model.Balance{
			Currency:      b.Currency,
			Balance:       b.Balance,
			Available:     b.Available,
			Pending:       b.Pending,
			CryptoAddress: b.CryptoAddress,
		})
	}
	return balances, nil
}

// GetOpenOrders 未約定の注文取得
func (c *Client) GetOpenOrders(ctx context.Context) ([]model.OpenOrder, error) {
	const endpoint = "market/getopenorders"

	var res []openOrder
	if err := c.requestWithValidation(ctx, endpoint, nil, true, &res); err != nil {
		return nil, err
	}
	if err := c.validateEach(endpoint, len(res), func(i int) interface{} { return &res[i] }); err != nil {
		return nil, err
	}

	orders := make([]model.OpenOrder, 0, len(res))
	for _, o := range res {
		var id *uuid.UUID
		if o.UUID != nil {
			parsed := uuid.MustParse(*o.UUID)
			id = &parsed
		}
		orders = append(orders, model.OpenOrder{
			UUID:              id,
			OrderUUID:         uuid.MustParse(o.OrderUUID),
			Exchange:          strings.ToLower(o.Exchange),
			OrderType:         model.OrderType(o.OrderType),
			Quantity:          o.Quantity,
			QuantityRemaining: o.QuantityRemaining,
			Limit:             o.Limit,
			CommissionPaid:    o.CommissionPaid,
			Price:             o.Price,
			PricePerUnit:      o.PricePerUnit,
			Opened:            o.Opened.Time,
			Closed:            o.Closed.ptr(),
			CancelInitiated:   o.CancelInitiated,
			ImmediateOrCancel: o.ImmediateOrCancel,
			IsConditional:     o.IsConditional,
			Condition:         o.Condition,
			ConditionTarget:   o.ConditionTarget,
		})
	}
	return orders, nil
}

// GetDepositAddress 入金アドレス取得
func (c *Client) GetDepositAddress(ctx context.Context, currency string) (string, error) {
	const endpoint = "account/getdepositaddress"

	if strings.TrimSpace(currency) == "" {
		return "", fmt.Errorf("currency is required")
	}

	var res depositAddress
	if err := c.requestWithValidation(ctx, endpoint, map[string]string{
		"currency": strings.ToUpper(currency),
	}, true, &res); err != nil {
		return "", err
	}
	if err := c.validateOne(endpoint, &res); err != nil {
		return "", err
	}
	return res.Address, nil
}

// GetOrderHistory 注文履歴取得
//
// pair が空の場合は全マーケット。
func (c *Client) GetOrderHistory(ctx context.Context, pair string) ([]model.OrderHistoryEntry, error) {
	const endpoint = "account/getorderhistory"

	var queries map[string]string
	if pair != "" {
		name, err := marketName(pair)
		if err != nil {
			return nil, err
		}
		queries = map[string]string{"market": name}
	}

	var res []orderHistory
	if err := c.requestWithValidation(ctx, endpoint, queries, true, &res); err != nil {
		return nil, err
	}
	if err := c.validateEach(endpoint, len(res), func(i int) interface{} { return &res[i] }); err != nil {
		return nil, err
	}

	history := make([]model.OrderHistoryEntry, 0, len(res))
	for _, h := range res {
		history = append(history, model.OrderHistoryEntry{
			OrderUUID:         uuid.MustParse(h.OrderUUID),
			Exchange:          strings.ToLower(h.Exchange),
			TimeStamp:         h.TimeStamp.Time,
			OrderType:         model.OrderType(h.OrderType),
			Limit:             h.Limit,
			Quantity:          h.Quantity,
			QuantityRemaining: h.QuantityRemaining,
			Commission:        h.Commission,
			Price:             h.Price,
			PricePerUnit:      h.PricePerUnit,
		})
	}
	return history, nil
}

// Buy 指値買い
func (c *Client) Buy(ctx context.Context, pair string, quantity, rate decimal.Decimal) (*model.OrderResult, error) {
	return c.placeOrder(ctx, "market/buylimit", pair, quantity, rate)
}

// Sell 指値売り
func (c *Client) Sell(ctx context.Context, pair string, quantity, rate decimal.Decimal) (*model.OrderResult, error) {
	return c.placeOrder(ctx, "market/selllimit", pair, quantity, rate)
}

// CancelOrder 注文キャンセル
func (c *Client) CancelOrder(ctx context.Context, orderUUID string) error {
	const endpoint = "market/cancel"

	if _, err := uuid.Parse(orderUUID); err != nil {
		return fmt.Errorf("invalid order uuid, value: %q; error: %w", orderUUID, err)
	}

	var res interface{}
	return c.requestWithValidation(ctx, endpoint, map[string]string{"uuid": orderUUID}, true, &res)
}

// placeOrder 新規注文
//
// success=false は業務的な拒否として OrderResult で返す。
func (c *Client) placeOrder(ctx context.Context, endpoint, pair string, quantity, rate decimal.Decimal) (*model.OrderResult, error) {
	name, err := marketName(pair)
	if err != nil {
		return nil, err
	}

	env, err := c.call(ctx, endpoint, map[string]string{
		"market":   name,
		"quantity": quantity.String(),
		"rate":     rate.String(),
	}, true)
	if err != nil {
		return nil, err
	}

	if !env.Success && !env.statusOK() {
		c.logger.Error("order failed, endpoint: %s, market: %s, status: %d, message: %s", endpoint, name, env.StatusCode, env.Message)
		return nil, &exchange.TransportError{
			Endpoint:   endpoint,
			StatusCode: env.StatusCode,
			Err:        fmt.Errorf("unexpected status, message: %s", env.Message),
		}
	}
	if !env.Success {
		c.logger.Info("order rejected, endpoint: %s, market: %s, message: %s", endpoint, name, env.Message)
		return &model.OrderResult{Success: false, Message: env.Message}, nil
	}

	var res placedOrder
	if err := json.Unmarshal(env.Result, &res); err != nil {
		return nil, &exchange.TransportError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("failed to parse result, result: %s; error: %w", truncate(env.Result, 256), err),
		}
	}
	if err := c.validateOne(endpoint, &res); err != nil {
		return nil, err
	}

	c.logger.Info("order placed, endpoint: %s, market: %s, uuid: %s", endpoint, name, res.UUID)
	return &model.OrderResult{
		Success: true,
		Message: env.Message,
		Result:  &model.PlacedOrder{UUID: uuid.MustParse(res.UUID)},
	}, nil
}
