package app

import (
	"context"
	"fmt"

	"github.com/yungbote/viriato-backend/internal/temporalx/syncrun"
	"github.com/yungbote/viriato-backend/internal/temporalx/temporalworker"
)

// RunWorker polls the sync task queue until ctx is canceled and, when
// TEMPORAL_SYNC_CRON is set, keeps the recurring sync workflow running.
func (a *App) RunWorker(ctx context.Context) error {
	tc, tcfg, err := a.wireTemporal()
	if err != nil {
		return err
	}
	runner, err := a.NewRunner(ctx)
	if err != nil {
		return err
	}
	w, err := temporalworker.NewRunner(a.Log, tc, tcfg, runner)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	if err := w.EnsureSchedule(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	a.Log.Info("Worker stopping")
	return nil
}

// TriggerSync enqueues a one-off sync on the worker's task queue.
func (a *App) TriggerSync(ctx context.Context, in syncrun.Input) (string, error) {
	tc, tcfg, err := a.wireTemporal()
	if err != nil {
		return "", err
	}
	return temporalworker.Trigger(ctx, tc, tcfg, in)
}
