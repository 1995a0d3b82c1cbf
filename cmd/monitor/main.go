package main

import (
	"bittrex-client/pkg/domain"
	"bittrex-client/pkg/domain/model"
	"bittrex-client/pkg/infrastructure/bittrex"
	"bittrex-client/pkg/infrastructure/memory"
	"bittrex-client/pkg/infrastructure/mysql"
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

type MonitorConfig struct {
	// 待ち受けアドレス
	Addr string `default:":8080"`
	// ライブ配信の間隔（秒）
	StreamIntervalSeconds int `split_words:"true" default:"5"`
	// ログレベル
	LogLevel string `split_words:"true" default:"info"`
	// 取引所設定
	Exchange model.Exchange
	// DB設定
	DB model.DB `required:"true" split_words:"true"`
}

func main() {
	var config MonitorConfig
	if err := envconfig.Process("", &config); err != nil {
		memory.NewLogger(nil, "info").Error("%v", err)
		return
	}

	logger := memory.NewLogger(nil, config.LogLevel)
	logger.Info("===== START PROGRAM ====================")
	defer logger.Info("===== END PROGRAM ======================")

	mysqlCli, err := mysql.NewClient(config.DB.UserName, config.DB.Password, config.DB.Host, config.DB.Port, config.DB.Name)
	if err != nil {
		logger.Error("%v", err)
		return
	}
	bittrexCli := bittrex.NewPublicClient(logger, bittrex.WithBaseURL(config.Exchange.BaseURL))

	s := newServer(mysqlCli, bittrexCli, logger, time.Duration(config.StreamIntervalSeconds)*time.Second)
	httpServer := &http.Server{Addr: config.Addr, Handler: s.router()}

	rootCtx, cancel := context.WithCancel(context.Background())
	errGroup, ctx := errgroup.WithContext(rootCtx)

	errGroup.Go(func() error {
		logger.Info("listen %s", config.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	errGroup.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	errGroup.Go(func() error {
		defer cancel()
		return watchSignal(ctx, logger)
	})

	if err := errGroup.Wait(); err != nil {
		logger.Error("error occured: %v", err)
	}
}

func watchSignal(ctx context.Context, logger domain.Logger) error {
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
