package syncrun

import (
	"fmt"
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

// Workflow runs one pipeline pass as a single activity. The pipeline keeps
// going past failed stages, so the workflow fails only when every stage did.
func Workflow(ctx workflow.Context, in Input) (Result, error) {
	if strings.TrimSpace(in.Command) == "" {
		in.Command = DefaultCommand
	}
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 6 * time.Hour,
		HeartbeatTimeout:    time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    30 * time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    maxStageAttempt,
		},
	})

	var out Result
	if err := workflow.ExecuteActivity(ctx, ActivityRun, in).Get(ctx, &out); err != nil {
		return out, err
	}
	workflow.GetLogger(ctx).Info("Parliament sync finished", "run_id", out.RunID, "status", out.Status, "failed", out.Failed)
	if out.Status == parliament.RunStatusFailed {
		return out, fmt.Errorf("parliament sync failed (run_id=%s stages=%v)", out.RunID, out.Failed)
	}
	return out, nil
}
