package syncrun

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"

	"github.com/yungbote/viriato-backend/internal/modules/parliament/pipeline"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// PipelineRunner is the part of *pipeline.Runner the activity needs.
type PipelineRunner interface {
	Run(ctx context.Context, command string, stages []string) (*pipeline.Report, error)
	SyncStages() []string
}

type Activities struct {
	Log    *logger.Logger
	Runner PipelineRunner
}

func (a *Activities) Run(ctx context.Context, in Input) (Result, error) {
	var res Result
	if a == nil || a.Runner == nil {
		return res, fmt.Errorf("syncrun: activity not configured")
	}
	stages := in.Stages
	if len(stages) == 0 {
		stages = a.Runner.SyncStages()
	}
	for _, s := range stages {
		if !pipeline.IsStage(s) {
			return res, fmt.Errorf("syncrun: unknown stage %q", s)
		}
	}

	stop := startHeartbeat(ctx, 15*time.Second)
	defer stop()

	rep, err := a.Runner.Run(ctx, in.Command, stages)
	if err != nil {
		return res, err
	}
	res.RunID = rep.RunID
	res.Status = rep.Status
	for _, s := range rep.Stages {
		if s.Status == pipeline.StageFailed {
			res.Failed = append(res.Failed, s.Name)
		}
	}
	if a.Log != nil {
		a.Log.Info("Sync activity finished", "run_id", res.RunID, "status", res.Status)
	}
	return res, nil
}

func startHeartbeat(ctx context.Context, every time.Duration) func() {
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-t.C:
				activity.RecordHeartbeat(ctx)
			}
		}
	}()
	return func() { close(done) }
}
