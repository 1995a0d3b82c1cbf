package usecase

import (
	"bittrex-client/pkg/domain"
	"bittrex-client/pkg/domain/model"
	repo "bittrex-client/pkg/domain/repository"
	"context"
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/shopspring/decimal"
)

// Notifier 通知先
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// SpreadWatcher スプレッド監視者
//
// スプレッドが直近の単純移動平均の ratio 倍を超えたら通知する。
type SpreadWatcher struct {
	pair       model.CurrencyPair
	spreadRepo repo.SpreadRepository
	notifier   Notifier
	logger     domain.Logger
	ratio      float64
}

// NewSpreadWatcher 生成
//
// notifier が nil の場合はログ出力のみ。
func NewSpreadWatcher(pair model.CurrencyPair, spreadRepo repo.SpreadRepository, notifier Notifier, logger domain.Logger, ratio float64) *SpreadWatcher {
	return &SpreadWatcher{
		pair:       pair,
		spreadRepo: spreadRepo,
		notifier:   notifier,
		logger:     logger,
		ratio:      ratio,
	}
}

// Watch スプレッドを記録し、拡大していれば通知する
func (w *SpreadWatcher) Watch(ctx context.Context, spread decimal.Decimal) (bool, error) {
	history := w.spreadRepo.GetSpreadHistory(&w.pair)
	if err := w.spreadRepo.AddSpread(&w.pair, spread); err != nil {
		return false, err
	}

	// 履歴が揃うまでは判定しない
	if len(history) < w.spreadRepo.GetHistorySizeMax() || len(history) < 2 {
		return false, nil
	}

	// talibはfloat64のみ扱うため、比較はdecimalに戻して行う
	avg := decimal.NewFromFloat(SimpleMovingAverage(history))
	threshold := avg.Mul(decimal.NewFromFloat(w.ratio))
	if !avg.IsPositive() || spread.LessThanOrEqual(threshold) {
		return false, nil
	}

	message := fmt.Sprintf("[%s] spread widened: %s (sma %s, ratio %.2f)", w.pair.String(), spread.String(), avg.StringFixed(8), w.ratio)
	w.logger.Info("%s", message)
	if w.notifier == nil {
		return true, nil
	}
	if err := w.notifier.Notify(ctx, message); err != nil {
		return true, err
	}
	return true, nil
}

// SimpleMovingAverage 全件を期間とした単純移動平均
func SimpleMovingAverage(values []decimal.Decimal) float64 {
	if len(values) == 0 {
		return 0
	}
	in := make([]float64, 0, len(values))
	for _, v := range values {
		in = append(in, v.InexactFloat64())
	}
	if len(in) == 1 {
		return in[0]
	}
	sma := talib.Sma(in, len(in))
	return sma[len(sma)-1]
}
