package main

import (
	"bittrex-client/pkg/domain"
	"bittrex-client/pkg/domain/model"
	"bittrex-client/pkg/infrastructure/bittrex"
	"bittrex-client/pkg/infrastructure/memory"
	"bittrex-client/pkg/infrastructure/mysql"
	"bittrex-client/pkg/infrastructure/slack"
	"bittrex-client/pkg/usecase"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

func main() {
	config, err := loadConfig()
	if err != nil {
		memory.NewLogger(nil, "info").Error("%v", err)
		return
	}

	logger := memory.NewLogger(nil, config.LogLevel)

	logger.Info("===== START PROGRAM ====================")
	defer logger.Info("===== END PROGRAM ======================")

	pair, err := model.ParseToCurrencyPair(config.TargetPair)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	logger.Info("pair: %s", pair.String())
	logger.Info("interval: %d sec", config.IntervalSeconds)
	logger.Info("======================================")

	bittrexCli := bittrex.NewPublicClient(logger, bittrex.WithBaseURL(config.Exchange.BaseURL))
	mysqlCli, err := mysql.NewClient(config.DB.UserName, config.DB.Password, config.DB.Host, config.DB.Port, config.DB.Name)
	if err != nil {
		logger.Error("%v", err)
		return
	}
	if err := mysqlCli.Migrate(); err != nil {
		logger.Error("%v", err)
		return
	}

	tradeTTL := time.Duration(config.IntervalSeconds) * time.Second * 10
	fetcher := usecase.NewFetcher(bittrexCli, *pair, mysqlCli, memory.NewTradeCache(tradeTTL), logger)

	var notifier usecase.Notifier
	if config.Watch.SlackURL != "" {
		notifier = slack.NewClient(config.Watch.SlackURL)
	}
	watcher := usecase.NewSpreadWatcher(*pair, memory.NewSpreadRepository(config.Watch.HistorySize), notifier, logger, config.Watch.AlertRatio)

	rootCtx, cancel := context.WithCancel(context.Background())
	errGroup, ctx := errgroup.WithContext(rootCtx)

	errGroup.Go(Fetch(ctx, config, fetcher, watcher, logger))
	errGroup.Go(func() error {
		defer cancel()
		return watchSignal(ctx, logger)
	})

	if err := errGroup.Wait(); err != nil {
		logger.Error("error occured, %v", err)
	}
}

func watchSignal(ctx context.Context, logger domain.Logger) error {
	// OSのシグナル監視
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)
	select {
	case <-quit:
		logger.Info("terminating ...")
	case <-ctx.Done():
	}
	return nil
}

type Config struct {
	// 対象コインペア（例: btc-ltc）
	TargetPair string `required:"true" split_words:"true"`
	// 稼働間隔（秒）
	IntervalSeconds int `required:"true" split_words:"true"`
	// ログレベル
	LogLevel string `split_words:"true" default:"info"`
	// 取引所設定
	Exchange model.Exchange
	// DB設定
	DB model.DB `required:"true" split_words:"true"`
	// スプレッド監視設定
	Watch model.Watch
}

// loadConfig 環境変数から設定を読み込む
func loadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	if config.IntervalSeconds <= 0 {
		return nil, fmt.Errorf("INTERVAL_SECONDS must be positive, [%d]", config.IntervalSeconds)
	}
	if config.Watch.HistorySize <= 0 {
		return nil, fmt.Errorf("WATCH_HISTORY_SIZE must be positive, [%d]", config.Watch.HistorySize)
	}
	return &config, nil
}

// Fetch 定期的に市場情報を取得し、スプレッドを監視する
func Fetch(ctx context.Context, config *Config, fetcher *usecase.Fetcher, watcher *usecase.SpreadWatcher, logger domain.Logger) func() error {
	return func() error {
		ticker := time.NewTicker(time.Duration(config.IntervalSeconds) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				snapshot, err := fetcher.Fetch(ctx)
				if err != nil {
					logger.Error("failed to fetch, error: %v", err)
					continue
				}
				if _, err := watcher.Watch(ctx, snapshot.Spread); err != nil {
					logger.Error("failed to watch spread, error: %v", err)
				}
			case <-ctx.Done():
				return nil
			}
		}
	}
}
