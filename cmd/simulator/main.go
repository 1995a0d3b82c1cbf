package main

import (
	"bittrex-client/pkg/domain/model"
	"bittrex-client/pkg/infrastructure/memory"
	"bittrex-client/pkg/usecase"
	"bittrex-client/pkg/usecase/log"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// SimulatorConfig シミュレーター用設定
type SimulatorConfig struct {
	TargetPair string      `toml:"target_pair"`
	DataFile   string      `toml:"data_file"`
	LogLevel   string      `toml:"log_level"`
	Watch      model.Watch `toml:"watch"`
}

func main() {
	f := flag.String("f", "", "config file path")
	flag.Parse()

	var conf SimulatorConfig
	if _, err := toml.DecodeFile(*f, &conf); err != nil {
		fmt.Fprintln(os.Stderr, log.Red("failed to load config: %v", err))
		os.Exit(2)
	}

	if conf.Watch.HistorySize <= 0 {
		conf.Watch.HistorySize = 30
	}
	if conf.Watch.AlertRatio <= 0 {
		conf.Watch.AlertRatio = 2.0
	}

	logger := memory.NewLogger(nil, conf.LogLevel)
	logger.Info("===== START PROGRAM ====================")
	defer logger.Info("===== END PROGRAM ======================")
	logger.Info("config file: %s", *f)

	pair, err := model.ParseToCurrencyPair(conf.TargetPair)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	historical, err := os.Open(conf.DataFile)
	if err != nil {
		logger.Error("%v", err)
		return
	}
	defer historical.Close()

	exCli, err := memory.NewExchangeMock(pair, historical)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	repo := memory.NewMarketRepository()
	fetcher := usecase.NewFetcher(exCli, *pair, repo, memory.NewTradeCache(time.Hour), logger)
	watcher := usecase.NewSpreadWatcher(*pair, memory.NewSpreadRepository(conf.Watch.HistorySize), nil, logger, conf.Watch.AlertRatio)

	result, err := usecase.Simulate(context.Background(), exCli, fetcher, watcher)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	fmt.Println(log.Cyan("steps: %d, alerts: %d, trades: %d", result.Steps, result.Alerts, len(repo.GetTrades(pair))))
}
