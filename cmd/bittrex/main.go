package main

import (
	"bittrex-client/pkg/domain/model"
	"bittrex-client/pkg/infrastructure/bittrex"
	"bittrex-client/pkg/infrastructure/memory"
	"bittrex-client/pkg/usecase/log"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const usage = `usage: bittrex [-f config.toml] <command> [args]

public commands:
  format-pair PAIR
  markets
  ticker PAIR
  orders PAIR [DEPTH]
  history PAIR [COUNT]
  depth PAIR
  spread PAIR
  summary PAIR

private commands (BITTREX_EXCHANGE_API_KEY / BITTREX_EXCHANGE_API_SECRET):
  balances
  open-orders
  order-history [PAIR]
  deposit-address CURRENCY
  buy PAIR QUANTITY RATE
  sell PAIR QUANTITY RATE
  cancel ORDER_UUID
`

func main() {
	f := flag.String("f", "", "config file path (toml)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	conf, err := loadConfig(*f)
	if err != nil {
		fmt.Fprintln(os.Stderr, log.Red("failed to load config: %v", err))
		os.Exit(2)
	}

	logger := memory.NewLogger(nil, conf.LogLevel)
	cli := bittrex.NewClient(logger, conf.Exchange.APIKey, conf.Exchange.APISecret,
		bittrex.WithBaseURL(conf.Exchange.BaseURL),
		bittrex.WithTimeout(time.Duration(conf.Exchange.TimeoutSeconds)*time.Second),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cli, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, log.Red("error: %v", err))
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// loadConfig 設定ファイルがあればそれを、なければ環境変数を読む
func loadConfig(path string) (*model.Config, error) {
	var conf model.Config
	if path != "" {
		if _, err := toml.DecodeFile(path, &conf); err != nil {
			return nil, err
		}
		return &conf, nil
	}
	if err := envconfig.Process("BITTREX", &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

var errUsage = errors.New("invalid arguments")

func run(ctx context.Context, cli *bittrex.Client, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	arg := func(i int) (string, error) {
		if len(args) <= i {
			return "", fmt.Errorf("%w: %s needs more arguments", errUsage, cmd)
		}
		return args[i], nil
	}
	optInt := func(i, def int) (int, error) {
		if len(args) <= i {
			return def, nil
		}
		return strconv.Atoi(args[i])
	}

	switch cmd {
	case "format-pair":
		pair, err := arg(0)
		if err != nil {
			return err
		}
		formatted, err := bittrex.FormatPair(pair)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatted)
		return nil

	case "markets":
		return output(w)(cli.GetMarkets(ctx))

	case "ticker":
		pair, err := arg(0)
		if err != nil {
			return err
		}
		return output(w)(cli.GetMarketTicker(ctx, pair))

	case "orders":
		pair, err := arg(0)
		if err != nil {
			return err
		}
		depth, err := optInt(1, 20)
		if err != nil {
			return err
		}
		return output(w)(cli.GetMarketOrders(ctx, pair, depth))

	case "history":
		pair, err := arg(0)
		if err != nil {
			return err
		}
		count, err := optInt(1, 10)
		if err != nil {
			return err
		}
		return output(w)(cli.GetMarketTradeHistory(ctx, pair, count))

	case "depth":
		pair, err := arg(0)
		if err != nil {
			return err
		}
		return output(w)(cli.GetMarketDepth(ctx, pair))

	case "spread":
		pair, err := arg(0)
		if err != nil {
			return err
		}
		return output(w)(cli.GetMarketSpread(ctx, pair))

	case "summary":
		pair, err := arg(0)
		if err != nil {
			return err
		}
		return output(w)(cli.GetMarketSummary(ctx, pair))

	case "balances":
		return output(w)(cli.GetBalances(ctx))

	case "open-orders":
		return output(w)(cli.GetOpenOrders(ctx))

	case "order-history":
		pair := ""
		if len(args) > 0 {
			pair = args[0]
		}
		return output(w)(cli.GetOrderHistory(ctx, pair))

	case "deposit-address":
		currency, err := arg(0)
		if err != nil {
			return err
		}
		return output(w)(cli.GetDepositAddress(ctx, currency))

	case "buy", "sell":
		if len(args) < 3 {
			return fmt.Errorf("%w: %s needs PAIR QUANTITY RATE", errUsage, cmd)
		}
		quantity, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity: %w", err)
		}
		rate, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("invalid rate: %w", err)
		}
		place := cli.Buy
		if cmd == "sell" {
			place = cli.Sell
		}
		res, err := place(ctx, args[0], quantity, rate)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, log.Status(res.Success, "%s %s: success=%v message=%s", cmd, args[0], res.Success, res.Message))
		return output(w)(res, nil)

	case "cancel":
		id, err := arg(0)
		if err != nil {
			return err
		}
		if err := cli.CancelOrder(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(w, log.Green("canceled %s", id))
		return nil
	}

	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

// output 結果をJSONで出力する
func output(w io.Writer) func(v interface{}, err error) error {
	return func(v interface{}, err error) error {
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
}
