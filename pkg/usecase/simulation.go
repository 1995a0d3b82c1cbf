package usecase

import (
	"context"
)

// Stepper 1ステップずつ進められる取引所
type Stepper interface {
	NextStep() bool
	Err() error
}

// SimulationResult シミュレーション結果
type SimulationResult struct {
	Steps  int
	Alerts int
}

// Simulate データが尽きるまで取得と監視を繰り返す
func Simulate(ctx context.Context, ex Stepper, fetcher *Fetcher, watcher *SpreadWatcher) (*SimulationResult, error) {
	result := &SimulationResult{}
	for {
		snapshot, err := fetcher.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		alerted, err := watcher.Watch(ctx, snapshot.Spread)
		if err != nil {
			return nil, err
		}
		result.Steps++
		if alerted {
			result.Alerts++
		}

		if !ex.NextStep() {
			if err := ex.Err(); err != nil {
				return result, err
			}
			return result, nil
		}
	}
}
