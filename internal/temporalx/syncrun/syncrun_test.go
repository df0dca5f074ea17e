package syncrun

import (
	"context"
	"errors"
	"testing"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/pipeline"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type fakeRunner struct {
	status string
	err    error
	got    []string
}

func (f *fakeRunner) SyncStages() []string {
	return []string{pipeline.StageOrgaos, pipeline.StageLink}
}

func (f *fakeRunner) Run(_ context.Context, command string, stages []string) (*pipeline.Report, error) {
	f.got = stages
	if f.err != nil {
		return nil, f.err
	}
	rep := &pipeline.Report{RunID: "run-1", Command: command, Status: f.status}
	for _, s := range stages {
		st := pipeline.StageSucceeded
		if f.status == parliament.RunStatusFailed {
			st = pipeline.StageFailed
		}
		rep.Stages = append(rep.Stages, pipeline.StageResult{Name: s, Status: st})
	}
	return rep, nil
}

func runWorkflow(t *testing.T, r PipelineRunner, in Input) (Result, error) {
	t.Helper()
	var s testsuite.WorkflowTestSuite
	env := s.NewTestWorkflowEnvironment()
	acts := &Activities{Log: logger.Nop(), Runner: r}
	env.RegisterActivityWithOptions(acts.Run, activity.RegisterOptions{Name: ActivityRun})
	env.ExecuteWorkflow(Workflow, in)
	if !env.IsWorkflowCompleted() {
		t.Fatalf("workflow did not complete")
	}
	var out Result
	if err := env.GetWorkflowError(); err != nil {
		return out, err
	}
	if err := env.GetWorkflowResult(&out); err != nil {
		t.Fatalf("result: %v", err)
	}
	return out, nil
}

func TestWorkflowRunsFullSyncByDefault(t *testing.T) {
	r := &fakeRunner{status: parliament.RunStatusSucceeded}
	out, err := runWorkflow(t, r, Input{})
	if err != nil {
		t.Fatalf("workflow: %v", err)
	}
	if out.RunID != "run-1" || out.Status != parliament.RunStatusSucceeded || len(out.Failed) != 0 {
		t.Fatalf("result: got=%+v", out)
	}
	if len(r.got) != 2 || r.got[1] != pipeline.StageLink {
		t.Fatalf("stages: got=%v", r.got)
	}
}

func TestWorkflowFailsWhenEveryStageFailed(t *testing.T) {
	r := &fakeRunner{status: parliament.RunStatusFailed}
	if _, err := runWorkflow(t, r, Input{Stages: []string{pipeline.StageAgenda}}); err == nil {
		t.Fatalf("want workflow error")
	}
}

func TestActivityRejectsUnknownStage(t *testing.T) {
	acts := &Activities{Runner: &fakeRunner{}}
	if _, err := acts.Run(context.Background(), Input{Stages: []string{"bogus"}}); err == nil {
		t.Fatalf("want unknown stage error")
	}
	acts = &Activities{Runner: &fakeRunner{err: errors.New("db down")}}
	if _, err := acts.Run(context.Background(), Input{Stages: []string{pipeline.StageAgenda}}); err == nil {
		t.Fatalf("want runner error")
	}
	if _, err := (&Activities{}).Run(context.Background(), Input{}); err == nil {
		t.Fatalf("want not configured error")
	}
}
