package bittrex_test

import (
	"bittrex-client/pkg/domain/exchange"
	"bittrex-client/pkg/domain/model"
	"bittrex-client/pkg/infrastructure/bittrex"
	"bittrex-client/pkg/infrastructure/memory"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey    = "test-key"
	testAPISecret = "test-secret"
)

const marketsJSON = `{"success":true,"message":"","result":[
	{"MarketCurrency":"LTC","BaseCurrency":"BTC","MarketCurrencyLong":"Litecoin","BaseCurrencyLong":"Bitcoin","MinTradeSize":0.01,"MarketName":"BTC-LTC","IsActive":true,"Created":"2014-02-13T00:00:00"},
	{"MarketCurrency":"PPC","BaseCurrency":"BTC","MarketCurrencyLong":"Peercoin","BaseCurrencyLong":"Bitcoin","MinTradeSize":0.1,"MarketName":"BTC-PPC","IsActive":true,"Created":"2014-02-13T00:00:00"},
	{"MarketCurrency":"DOGE","BaseCurrency":"BTC","MarketCurrencyLong":"Dogecoin","BaseCurrencyLong":"Bitcoin","MinTradeSize":100,"MarketName":"BTC-DOGE","IsActive":false,"Created":"2014-02-13T00:00:00"}
]}`

const tickerJSON = `{"success":true,"message":"","result":{"Bid":0.01650001,"Ask":0.01659999,"Last":0.01655,"Volume":12345.6}}`

const historyJSON = `{"success":true,"message":"","result":[
	{"Id":319435,"TimeStamp":"2014-07-09T03:21:20.08","Quantity":0.30802438,"Price":0.012634,"Total":0.00389158,"FillType":"FILL","OrderType":"BUY"},
	{"Id":319434,"TimeStamp":"2014-07-09T03:21:20","Quantity":1.5,"Price":0.0126,"Total":0.0189,"FillType":"PARTIAL_FILL","OrderType":"SELL"},
	{"Id":319433,"TimeStamp":"2014-07-09T03:20:59.1","Quantity":2,"Price":0.0125,"Total":0.025,"FillType":"FILL","OrderType":"SELL"}
]}`

const balancesJSON = `{"success":true,"message":"","result":[
	{"Currency":"DOGE","Balance":4.21549076,"Available":4.21549076,"Pending":0,"CryptoAddress":"DLxcEt3AatMyr2NTatzjsfHNoB9NT62HiF","Requested":false,"Uuid":null},
	{"Currency":"BTC","Balance":0.00001,"Available":0,"Pending":0.00001,"CryptoAddress":null}
]}`

const openOrdersJSON = `{"success":true,"message":"","result":[
	{"Uuid":null,"OrderUuid":"09aa5bb6-8232-41aa-9b78-a5a1093e0211","Exchange":"BTC-LTC","OrderType":"LIMIT_SELL","Quantity":5,"QuantityRemaining":5,"Limit":2,"CommissionPaid":0,"Price":0,"PricePerUnit":null,"Opened":"2014-07-09T03:55:48.77","Closed":null,"CancelInitiated":false,"ImmediateOrCancel":false,"IsConditional":false,"Condition":"NONE","ConditionTarget":null}
]}`

const dustJSON = `{"success":false,"message":"DUST_TRADE_DISALLOWED_MIN_VALUE_50K_SAT","result":null}`

type route struct {
	body   string
	status int
}

// newTestServer パスごとに固定レスポンスを返すサーバー
//
// 署名付きリクエストは署名を検証し、不一致なら INVALID_SIGNATURE を返す。
func newTestServer(t *testing.T, routes map[string]route) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		endpoint := strings.TrimPrefix(r.URL.Path, "/api/v1.1/")

		if strings.HasPrefix(endpoint, "account/") || strings.HasPrefix(endpoint, "market/") {
			if r.URL.Query().Get("apikey") != testAPIKey || r.URL.Query().Get("nonce") == "" {
				fmt.Fprint(w, `{"success":false,"message":"APIKEY_INVALID","result":null}`)
				return
			}
			mac := hmac.New(sha512.New, []byte(testAPISecret))
			mac.Write([]byte(srv.URL + r.URL.RequestURI()))
			if r.Header.Get("apisign") != hex.EncodeToString(mac.Sum(nil)) {
				fmt.Fprint(w, `{"success":false,"message":"INVALID_SIGNATURE","result":null}`)
				return
			}
		}

		rt, ok := routes[endpoint]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "<html>not found</html>")
			return
		}
		if rt.status != 0 {
			w.WriteHeader(rt.status)
		}
		fmt.Fprint(w, rt.body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newPublic(srv *httptest.Server) *bittrex.Client {
	return bittrex.NewPublicClient(memory.NewNopLogger(), bittrex.WithBaseURL(srv.URL+"/api/v1.1/"))
}

func newPrivate(srv *httptest.Server, key, secret string) *bittrex.Client {
	return bittrex.NewClient(memory.NewNopLogger(), key, secret, bittrex.WithBaseURL(srv.URL+"/api/v1.1/"))
}

// bookJSON 価格をずらした n 段の板を生成
func bookJSON(n int) string {
	buy := []string{}
	sell := []string{}
	for i := 0; i < n; i++ {
		buy = append(buy, fmt.Sprintf(`{"Quantity":%d.5,"Rate":0.00%03d}`, i+1, 500-i))
		sell = append(sell, fmt.Sprintf(`{"Quantity":%d.25,"Rate":0.00%03d}`, i+1, 501+i))
	}
	return fmt.Sprintf(`{"success":true,"message":"","result":{"buy":[%s],"sell":[%s]}}`,
		strings.Join(buy, ","), strings.Join(sell, ","))
}

func TestFormatPair(t *testing.T) {
	tests := map[string]struct {
		pair    string
		want    string
		wantErr bool
	}{
		"lowercase pair": {pair: "btc_ppc", want: "btc-ppc"},
		"uppercase pair": {pair: "BTC_LTC", want: "btc-ltc"},
		"no separator":   {pair: "btcppc", wantErr: true},
		"wire form":      {pair: "btc-ppc", wantErr: true},
		"two separators": {pair: "btc_ppc_ltc", wantErr: true},
		"empty base":     {pair: "_ppc", wantErr: true},
		"empty quote":    {pair: "btc_", wantErr: true},
		"empty string":   {pair: "", wantErr: true},
		"hyphen in side": {pair: "btc-ppc_ltc", wantErr: true},
		"symbol in side": {pair: "btc_pp$", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := bittrex.FormatPair(tt.pair)
			if tt.wantErr {
				assert.True(t, errors.Is(err, exchange.ErrInvalidFormat), "FormatPair() error = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GetMarkets(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{"public/getmarkets": {body: marketsJSON}})

	markets, err := newPublic(srv).GetMarkets(context.Background())
	require.NoError(t, err)
	assert.Contains(t, markets, "btc-ltc")
	assert.Contains(t, markets, "btc-ppc")
	assert.NotContains(t, markets, "btc-doge")
}

func TestClient_GetMarketTicker(t *testing.T) {
	var market string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		market = r.URL.Query().Get("market")
		fmt.Fprint(w, tickerJSON)
	}))
	defer srv.Close()

	ticker, err := newPublic(srv).GetMarketTicker(context.Background(), "btc-ltc")
	require.NoError(t, err)

	assert.Equal(t, "BTC-LTC", market)
	assert.Equal(t, 3, reflect.TypeOf(*ticker).NumField())
	assert.True(t, ticker.Bid.Equal(decimal.RequireFromString("0.01650001")), "bid = %s", ticker.Bid)
	assert.True(t, ticker.Ask.Equal(decimal.RequireFromString("0.01659999")), "ask = %s", ticker.Ask)
	assert.True(t, ticker.Last.Equal(decimal.RequireFromString("0.01655")), "last = %s", ticker.Last)
}

func TestClient_GetMarketOrders(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{"public/getorderbook": {body: bookJSON(60)}})
	cli := newPublic(srv)

	for _, depth := range []int{10, 20, 50} {
		t.Run(fmt.Sprintf("depth %d", depth), func(t *testing.T) {
			book, err := cli.GetMarketOrders(context.Background(), "btc-ppc", depth)
			require.NoError(t, err)
			assert.Len(t, book.Buy, depth)
			assert.Len(t, book.Sell, depth)

			for i := 1; i < len(book.Buy); i++ {
				assert.True(t, book.Buy[i-1].Price.GreaterThan(book.Buy[i].Price), "buy side is not descending at %d", i)
			}
			for i := 1; i < len(book.Sell); i++ {
				assert.True(t, book.Sell[i-1].Price.LessThan(book.Sell[i].Price), "sell side is not ascending at %d", i)
			}
		})
	}
}

func TestClient_GetMarketOrders_ThinBook(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{"public/getorderbook": {body: bookJSON(3)}})

	book, err := newPublic(srv).GetMarketOrders(context.Background(), "btc_ppc", 50)
	require.NoError(t, err)
	assert.Len(t, book.Buy, 3)
	assert.Len(t, book.Sell, 3)
}

func TestClient_GetMarketTradeHistory(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{"public/getmarkethistory": {body: historyJSON}})
	cli := newPublic(srv)

	trades, err := cli.GetMarketTradeHistory(context.Background(), "btc-ppc", 2)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, 7, reflect.TypeOf(trades[0]).NumField())

	want := model.Trade{
		ID:        319435,
		TimeStamp: time.Date(2014, 7, 9, 3, 21, 20, 80000000, time.UTC),
		Quantity:  decimal.RequireFromString("0.30802438"),
		Price:     decimal.RequireFromString("0.012634"),
		Total:     decimal.RequireFromString("0.00389158"),
		FillType:  "FILL",
		OrderType: "BUY",
	}
	got := trades[0]
	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.TimeStamp.Equal(got.TimeStamp), "timestamp = %v", got.TimeStamp)
	assert.True(t, want.Quantity.Equal(got.Quantity))
	assert.True(t, want.Price.Equal(got.Price))
	assert.True(t, want.Total.Equal(got.Total))
	assert.Equal(t, want.FillType, got.FillType)
	assert.Equal(t, want.OrderType, got.OrderType)

	// 新しい順
	assert.Greater(t, trades[0].ID, trades[1].ID)

	all, err := cli.GetMarketTradeHistory(context.Background(), "btc-ppc", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = cli.GetLastTrades(context.Background(), "btc-ppc", 10)
	assert.True(t, errors.Is(err, exchange.ErrInsufficientData), "GetLastTrades() error = %v", err)

	last, err := cli.GetLastTrades(context.Background(), "btc-ppc", 3)
	require.NoError(t, err)
	assert.Len(t, last, 3)
}

func TestClient_GetMarketDepth(t *testing.T) {
	tests := map[string]struct {
		body     string
		wantBids string
		wantAsks string
	}{
		"both sides": {
			body:     `{"success":true,"message":"","result":{"buy":[{"Quantity":1.5,"Rate":0.1},{"Quantity":2,"Rate":0.05}],"sell":[{"Quantity":0.3,"Rate":0.2},{"Quantity":3,"Rate":0.1000001}]}}`,
			wantBids: "0.25",
			wantAsks: "0.3600003",
		},
		"empty book": {
			body:     `{"success":true,"message":"","result":{"buy":[],"sell":[]}}`,
			wantBids: "0",
			wantAsks: "0",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, _ := newTestServer(t, map[string]route{"public/getorderbook": {body: tt.body}})

			depth, err := newPublic(srv).GetMarketDepth(context.Background(), "btc-ppc")
			require.NoError(t, err)
			assert.True(t, depth.Bids.Equal(decimal.RequireFromString(tt.wantBids)), "bids = %s, want %s", depth.Bids, tt.wantBids)
			assert.True(t, depth.Asks.Equal(decimal.RequireFromString(tt.wantAsks)), "asks = %s, want %s", depth.Asks, tt.wantAsks)
		})
	}
}

func TestClient_GetMarketSpread(t *testing.T) {
	srv, hits := newTestServer(t, map[string]route{
		"public/getorderbook": {body: `{"success":true,"message":"","result":{"buy":[{"Quantity":1,"Rate":0.00012},{"Quantity":1,"Rate":0.00013}],"sell":[{"Quantity":1,"Rate":0.00015},{"Quantity":1,"Rate":0.000141}]}}`},
	})

	spread, err := newPublic(srv).GetMarketSpread(context.Background(), "btc-vtc")
	require.NoError(t, err)
	assert.True(t, spread.Equal(decimal.RequireFromString("0.000011")), "spread = %s", spread)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestClient_GetMarketSpread_EmptySide(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{
		"public/getorderbook": {body: `{"success":true,"message":"","result":{"buy":[{"Quantity":1,"Rate":0.1}],"sell":[]}}`},
	})

	_, err := newPublic(srv).GetMarketSpread(context.Background(), "btc-vtc")
	assert.True(t, errors.Is(err, exchange.ErrInsufficientData), "GetMarketSpread() error = %v", err)
}

func TestClient_GetMarketSummary(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{
		"public/getmarketsummary": {body: `{"success":true,"message":"","result":[{"MarketName":"BTC-LTC","High":0.0135,"Low":0.012,"Volume":3833.97619253,"Last":0.01349998,"BaseVolume":47.03987026,"TimeStamp":"2014-07-09T07:22:16.72","Bid":0.01271001,"Ask":0.012911,"OpenBuyOrders":45,"OpenSellOrders":45,"PrevDay":0.01229501,"Created":"2014-02-13T00:00:00"}]}`},
	})

	summary, err := newPublic(srv).GetMarketSummary(context.Background(), "btc_ltc")
	require.NoError(t, err)
	assert.Equal(t, "btc-ltc", summary.MarketName)
	assert.Equal(t, 45, summary.OpenBuyOrders)
	assert.True(t, summary.High.Equal(decimal.RequireFromString("0.0135")))
}

func TestClient_PrivateWithoutCredentials(t *testing.T) {
	srv, hits := newTestServer(t, map[string]route{})
	cli := newPublic(srv)
	ctx := context.Background()
	qty, rate := decimal.NewFromFloat(0.0000001), decimal.NewFromFloat(0.0001)

	calls := map[string]func() error{
		"GetBalances":       func() error { _, err := cli.GetBalances(ctx); return err },
		"GetOpenOrders":     func() error { _, err := cli.GetOpenOrders(ctx); return err },
		"GetDepositAddress": func() error { _, err := cli.GetDepositAddress(ctx, "btc"); return err },
		"GetOrderHistory":   func() error { _, err := cli.GetOrderHistory(ctx, ""); return err },
		"Buy":               func() error { _, err := cli.Buy(ctx, "btc_ppc", qty, rate); return err },
		"Sell":              func() error { _, err := cli.Sell(ctx, "btc_ppc", qty, rate); return err },
		"CancelOrder":       func() error { return cli.CancelOrder(ctx, "09aa5bb6-8232-41aa-9b78-a5a1093e0211") },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			assert.True(t, errors.Is(err, exchange.ErrAuthentication), "%s() error = %v", name, err)
		})
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(hits), "no request must be sent without credentials")
}

func TestClient_GetBalances(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{"account/getbalances": {body: balancesJSON}})

	balances, err := newPrivate(srv, testAPIKey, testAPISecret).GetBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, 5, reflect.TypeOf(balances[0]).NumField())
	assert.Equal(t, "DOGE", balances[0].Currency)
	assert.True(t, balances[0].Balance.Equal(decimal.RequireFromString("4.21549076")))
	require.NotNil(t, balances[0].CryptoAddress)
	assert.Equal(t, "DLxcEt3AatMyr2NTatzjsfHNoB9NT62HiF", *balances[0].CryptoAddress)
	assert.Nil(t, balances[1].CryptoAddress)
	assert.True(t, balances[1].Pending.Equal(decimal.RequireFromString("0.00001")))
}

func TestClient_RejectedCredentials(t *testing.T) {
	tests := map[string]struct {
		key    string
		secret string
	}{
		"unknown api key": {key: "other-key", secret: testAPISecret},
		"wrong secret":    {key: testAPIKey, secret: "other-secret"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, _ := newTestServer(t, map[string]route{"account/getbalances": {body: balancesJSON}})

			_, err := newPrivate(srv, tt.key, tt.secret).GetBalances(context.Background())
			assert.True(t, errors.Is(err, exchange.ErrAuthentication), "GetBalances() error = %v", err)
		})
	}
}

func TestClient_GetOpenOrders(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{"market/getopenorders": {body: openOrdersJSON}})

	orders, err := newPrivate(srv, testAPIKey, testAPISecret).GetOpenOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, 17, reflect.TypeOf(o).NumField())
	assert.Nil(t, o.UUID)
	assert.Equal(t, "09aa5bb6-8232-41aa-9b78-a5a1093e0211", o.OrderUUID.String())
	assert.Equal(t, "btc-ltc", o.Exchange)
	assert.Equal(t, model.LimitSell, o.OrderType)
	assert.True(t, o.Limit.Equal(decimal.NewFromInt(2)))
	assert.False(t, o.PricePerUnit.Valid)
	assert.False(t, o.ConditionTarget.Valid)
	assert.Nil(t, o.Closed)
	assert.Equal(t, "NONE", o.Condition)
	assert.True(t, o.Opened.Equal(time.Date(2014, 7, 9, 3, 55, 48, 770000000, time.UTC)))
}

func TestClient_GetDepositAddress(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{
		"account/getdepositaddress": {body: `{"success":true,"message":"","result":{"Currency":"BTC","Address":"1Amar8Ud3Hm3HDJ3gAkYp8eoXWCMHeD3Uu"}}`},
	})

	address, err := newPrivate(srv, testAPIKey, testAPISecret).GetDepositAddress(context.Background(), "btc")
	require.NoError(t, err)
	assert.Equal(t, "1Amar8Ud3Hm3HDJ3gAkYp8eoXWCMHeD3Uu", address)
}

func TestClient_GetDepositAddress_Generating(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{
		"account/getdepositaddress": {body: `{"success":false,"message":"ADDRESS_GENERATING","result":null}`},
	})

	_, err := newPrivate(srv, testAPIKey, testAPISecret).GetDepositAddress(context.Background(), "btc")
	var exErr *exchange.ExchangeError
	require.True(t, errors.As(err, &exErr), "GetDepositAddress() error = %v", err)
	assert.Equal(t, "ADDRESS_GENERATING", exErr.Message)
}

func TestClient_DustOrder(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		queries = append(queries, fmt.Sprintf("%s %s %s %s", r.URL.Path, q.Get("market"), q.Get("quantity"), q.Get("rate")))
		fmt.Fprint(w, dustJSON)
	}))
	defer srv.Close()
	cli := newPrivate(srv, testAPIKey, testAPISecret)

	want := &model.OrderResult{
		Success: false,
		Message: "DUST_TRADE_DISALLOWED_MIN_VALUE_50K_SAT",
		Result:  nil,
	}
	qty, rate := decimal.NewFromFloat(0.0000001), decimal.NewFromFloat(0.0001)

	for i := 0; i < 2; i++ {
		buy, err := cli.Buy(context.Background(), "btc_ppc", qty, rate)
		require.NoError(t, err)
		assert.Equal(t, want, buy)

		sell, err := cli.Sell(context.Background(), "btc_ppc", qty, rate)
		require.NoError(t, err)
		assert.Equal(t, want, sell)
		assert.True(t, sell.Rejected())
	}

	assert.Equal(t, []string{
		"/api/v1.1/market/buylimit BTC-PPC 0.0000001 0.0001",
		"/api/v1.1/market/selllimit BTC-PPC 0.0000001 0.0001",
		"/api/v1.1/market/buylimit BTC-PPC 0.0000001 0.0001",
		"/api/v1.1/market/selllimit BTC-PPC 0.0000001 0.0001",
	}, queries)
}

func TestClient_Buy(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{
		"market/buylimit": {body: `{"success":true,"message":"","result":{"uuid":"e606d53c-8d70-11e3-94b5-425861b86ab6"}}`},
	})

	res, err := newPrivate(srv, testAPIKey, testAPISecret).Buy(context.Background(), "btc-ltc", decimal.NewFromInt(1), decimal.RequireFromString("0.0165"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NotNil(t, res.Result)
	assert.Equal(t, "e606d53c-8d70-11e3-94b5-425861b86ab6", res.Result.UUID.String())
}

func TestClient_PlaceOrder_ServerError(t *testing.T) {
	unavailable := route{
		body:   `{"success":false,"message":"SERVICE_UNAVAILABLE","result":null}`,
		status: http.StatusServiceUnavailable,
	}
	srv, _ := newTestServer(t, map[string]route{
		"market/buylimit":  unavailable,
		"market/selllimit": unavailable,
	})
	cli := newPrivate(srv, testAPIKey, testAPISecret)
	qty, rate := decimal.NewFromInt(1), decimal.RequireFromString("0.0165")

	tests := map[string]func() (*model.OrderResult, error){
		"buy": func() (*model.OrderResult, error) {
			return cli.Buy(context.Background(), "btc-ltc", qty, rate)
		},
		"sell": func() (*model.OrderResult, error) {
			return cli.Sell(context.Background(), "btc-ltc", qty, rate)
		},
	}
	for name, place := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := place()
			assert.Nil(t, res)
			var trErr *exchange.TransportError
			require.True(t, errors.As(err, &trErr), "error = %v", err)
			assert.Equal(t, http.StatusServiceUnavailable, trErr.StatusCode)
			assert.Contains(t, err.Error(), "SERVICE_UNAVAILABLE")
		})
	}
}

func TestClient_CancelOrder(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{
		"market/cancel": {body: `{"success":true,"message":"","result":null}`},
	})
	cli := newPrivate(srv, testAPIKey, testAPISecret)

	assert.NoError(t, cli.CancelOrder(context.Background(), "09aa5bb6-8232-41aa-9b78-a5a1093e0211"))
	assert.Error(t, cli.CancelOrder(context.Background(), "not-a-uuid"))
}

func TestClient_GetOrderHistory(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{
		"account/getorderhistory": {body: `{"success":true,"message":"","result":[{"OrderUuid":"fd97d393-e9b9-4dd1-9dbf-f288fc72a185","Exchange":"BTC-LTC","TimeStamp":"2014-07-09T04:01:00.667","OrderType":"LIMIT_BUY","Limit":0.00000001,"Quantity":100000,"QuantityRemaining":100000,"Commission":0,"Price":0,"PricePerUnit":null,"IsConditional":false,"Condition":null,"ConditionTarget":null,"ImmediateOrCancel":false}]}`},
	})

	history, err := newPrivate(srv, testAPIKey, testAPISecret).GetOrderHistory(context.Background(), "btc-ltc")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.LimitBuy, history[0].OrderType)
	assert.True(t, history[0].Limit.Equal(decimal.RequireFromString("0.00000001")))
}

func TestClient_Errors(t *testing.T) {
	tests := map[string]struct {
		route route
		check func(t *testing.T, err error)
	}{
		"api level rejection": {
			route: route{body: `{"success":false,"message":"INVALID_MARKET","result":null}`},
			check: func(t *testing.T, err error) {
				var exErr *exchange.ExchangeError
				require.True(t, errors.As(err, &exErr), "error = %v", err)
				assert.Equal(t, "INVALID_MARKET", exErr.Message)
				assert.Equal(t, "public/getticker", exErr.Endpoint)
			},
		},
		"non json body": {
			route: route{body: "<html>bad gateway</html>", status: http.StatusBadGateway},
			check: func(t *testing.T, err error) {
				var trErr *exchange.TransportError
				require.True(t, errors.As(err, &trErr), "error = %v", err)
				assert.Equal(t, http.StatusBadGateway, trErr.StatusCode)
			},
		},
		"non success status with success envelope": {
			route: route{body: tickerJSON, status: http.StatusServiceUnavailable},
			check: func(t *testing.T, err error) {
				var trErr *exchange.TransportError
				require.True(t, errors.As(err, &trErr), "error = %v", err)
				assert.Equal(t, http.StatusServiceUnavailable, trErr.StatusCode)
			},
		},
		"malformed result": {
			route: route{body: `{"success":true,"message":"","result":{"Bid":"abc"}}`},
			check: func(t *testing.T, err error) {
				var trErr *exchange.TransportError
				assert.True(t, errors.As(err, &trErr), "error = %v", err)
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, _ := newTestServer(t, map[string]route{"public/getticker": tt.route})

			_, err := newPublic(srv).GetMarketTicker(context.Background(), "btc-ltc")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_InvalidPair(t *testing.T) {
	srv, hits := newTestServer(t, map[string]route{})

	_, err := newPublic(srv).GetMarketTicker(context.Background(), "btcltc")
	assert.True(t, errors.Is(err, exchange.ErrInvalidFormat), "error = %v", err)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{})
	cli := newPublic(srv)
	srv.Close()

	_, err := cli.GetMarkets(context.Background())
	var trErr *exchange.TransportError
	assert.True(t, errors.As(err, &trErr), "error = %v", err)
}

func TestClient_Canceled(t *testing.T) {
	srv, _ := newTestServer(t, map[string]route{"public/getmarkets": {body: marketsJSON}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPublic(srv).GetMarkets(ctx)
	assert.True(t, errors.Is(err, context.Canceled), "error = %v", err)
}
