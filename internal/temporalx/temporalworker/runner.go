package temporalworker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/activity"
	temporalsdkclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/yungbote/viriato-backend/internal/platform/logger"
	"github.com/yungbote/viriato-backend/internal/temporalx"
	"github.com/yungbote/viriato-backend/internal/temporalx/syncrun"
)

type Runner struct {
	log      *logger.Logger
	tc       temporalsdkclient.Client
	cfg      temporalx.Config
	pipeline syncrun.PipelineRunner
}

func NewRunner(log *logger.Logger, tc temporalsdkclient.Client, cfg temporalx.Config, pipeline syncrun.PipelineRunner) (*Runner, error) {
	if tc == nil {
		return nil, fmt.Errorf("temporal client is not configured")
	}
	if log == nil || pipeline == nil {
		return nil, fmt.Errorf("temporal worker missing deps")
	}
	return &Runner{log: log.With("service", "TemporalWorker"), tc: tc, cfg: cfg, pipeline: pipeline}, nil
}

// Start starts polling, retrying until cfg.DialMaxWait elapses, and stops the
// worker when ctx is done.
func (r *Runner) Start(ctx context.Context) error {
	if r == nil || r.tc == nil {
		return fmt.Errorf("temporal worker not initialized")
	}
	cfg := r.cfg
	r.log.Info("Starting Temporal worker", "address", cfg.Address, "namespace", cfg.Namespace, "task_queue", cfg.TaskQueue)

	deadline := time.Now().Add(cfg.DialMaxWait)
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		w := r.newWorker()
		startErr := w.Start()
		if startErr == nil {
			go func() {
				<-ctx.Done()
				w.Stop()
			}()
			r.log.Info("Temporal worker started", "namespace", cfg.Namespace, "task_queue", cfg.TaskQueue, "attempts", attempt)
			return nil
		}
		w.Stop()

		var nfe *serviceerror.NamespaceNotFound
		missingNS := errors.As(startErr, &nfe)
		if missingNS && cfg.AutoRegisterNamespace {
			if err := temporalx.EnsureNamespace(ctx, r.log, cfg); err != nil {
				r.log.Warn("Temporal namespace ensure failed", "namespace", cfg.Namespace, "error", err)
			}
		}

		if cfg.DialMaxWait <= 0 || time.Now().After(deadline) {
			if missingNS {
				return fmt.Errorf("temporal namespace not found (namespace=%s): %w", cfg.Namespace, startErr)
			}
			return startErr
		}
		r.log.Warn("Temporal worker failed to start; retrying", "namespace", cfg.Namespace, "task_queue", cfg.TaskQueue, "attempt", attempt, "error", startErr)
		time.Sleep(temporalx.ClampBackoff(cfg.DialBackoff, cfg.DialBackoffMax, attempt))
	}
}

func (r *Runner) newWorker() worker.Worker {
	w := worker.New(r.tc, r.cfg.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize:     r.cfg.WorkerConcurrency,
		MaxConcurrentWorkflowTaskExecutionSize: r.cfg.WorkerConcurrency,
	})
	acts := &syncrun.Activities{Log: r.log, Runner: r.pipeline}
	w.RegisterWorkflowWithOptions(syncrun.Workflow, workflow.RegisterOptions{Name: syncrun.WorkflowName})
	w.RegisterActivityWithOptions(acts.Run, activity.RegisterOptions{Name: syncrun.ActivityRun})
	return w
}

// EnsureSchedule starts the recurring sync workflow when cfg.SyncCron is set.
// An already running cron workflow is left alone.
func (r *Runner) EnsureSchedule(ctx context.Context) error {
	if r.cfg.SyncCron == "" {
		return nil
	}
	_, err := r.tc.ExecuteWorkflow(ctx, temporalsdkclient.StartWorkflowOptions{
		ID:           syncrun.CronWorkflowID,
		TaskQueue:    r.cfg.TaskQueue,
		CronSchedule: r.cfg.SyncCron,
	}, syncrun.WorkflowName, syncrun.Input{Command: syncrun.DefaultCommand})
	var started *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &started) {
		r.log.Info("Sync schedule already running", "workflow_id", syncrun.CronWorkflowID, "cron", r.cfg.SyncCron)
		return nil
	}
	if err != nil {
		return fmt.Errorf("start sync schedule: %w", err)
	}
	r.log.Info("Sync schedule started", "workflow_id", syncrun.CronWorkflowID, "cron", r.cfg.SyncCron)
	return nil
}

// Trigger starts a one-off sync workflow and returns its workflow id.
func Trigger(ctx context.Context, tc temporalsdkclient.Client, cfg temporalx.Config, in syncrun.Input) (string, error) {
	if tc == nil {
		return "", fmt.Errorf("temporal client is not configured")
	}
	run, err := tc.ExecuteWorkflow(ctx, temporalsdkclient.StartWorkflowOptions{
		ID:        fmt.Sprintf("parliament-sync-%d", time.Now().UTC().UnixNano()),
		TaskQueue: cfg.TaskQueue,
	}, syncrun.WorkflowName, in)
	if err != nil {
		return "", fmt.Errorf("start sync workflow: %w", err)
	}
	return run.GetID(), nil
}
