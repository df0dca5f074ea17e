package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/steps"
	"github.com/yungbote/viriato-backend/internal/platform/ctxutil"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

const (
	StageOrgaos         = "orgaos"
	StageDeputados      = "deputados"
	StageIniciativas    = "iniciativas"
	StageCommitteeLinks = "committee-links"
	StageAgenda         = "agenda"
	StageLink           = "link"
	StageValidate       = "validate"
	StageGraph          = "graph"
)

// LoadOrder is the dependency order of the load stages. Committee links need
// initiatives and orgaos committed; linking needs everything before it.
var LoadOrder = []string{StageOrgaos, StageDeputados, StageIniciativas, StageCommitteeLinks, StageAgenda, StageLink}

type StageStatus string

const (
	StageSucceeded StageStatus = "succeeded"
	StagePartial   StageStatus = "partial"
	StageFailed    StageStatus = "failed"
)

type StageResult struct {
	Name        string      `json:"name"`
	Status      StageStatus `json:"status"`
	StartedAt   time.Time   `json:"started_at"`
	FinishedAt  time.Time   `json:"finished_at"`
	DurationMS  int64       `json:"duration_ms"`
	FilesFailed []string    `json:"files_failed,omitempty"`
	Error       string      `json:"error,omitempty"`
	Output      any         `json:"output,omitempty"`
}

type Report struct {
	RunID   string         `json:"run_id"`
	Command string         `json:"command"`
	Status  string         `json:"status"`
	Stages  []StageResult  `json:"stages"`
	Tally   linkage.Report `json:"tally"`
}

type RunnerDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Source source.BlobSource
	Repos  repos.Set
	Config Config
	// Graph is optional; without it the graph stage fails.
	Graph steps.GraphWriter
}

type Runner struct {
	db     *gorm.DB
	log    *logger.Logger
	src    source.BlobSource
	repos  repos.Set
	cfg    Config
	graph  steps.GraphWriter
	tracer trace.Tracer
}

func NewRunner(deps RunnerDeps) (*Runner, error) {
	if deps.DB == nil || deps.Log == nil || deps.Source == nil || deps.Repos.PipelineRun == nil {
		return nil, fmt.Errorf("pipeline: missing deps")
	}
	return &Runner{
		db:     deps.DB,
		log:    deps.Log.With("service", "PipelineRunner"),
		src:    deps.Source,
		repos:  deps.Repos,
		cfg:    deps.Config.WithDefaults(),
		graph:  deps.Graph,
		tracer: otel.Tracer("github.com/yungbote/viriato-backend/internal/modules/parliament/pipeline"),
	}, nil
}

// HasGraph reports whether the graph stage can run.
func (r *Runner) HasGraph() bool { return r.graph != nil }

// SyncStages is the full sync: every load stage, validation, and the graph
// projection when a graph store is configured.
func (r *Runner) SyncStages() []string {
	out := append(append([]string{}, LoadOrder...), StageValidate)
	if r.HasGraph() {
		out = append(out, StageGraph)
	}
	return out
}

// Run executes stages in order under one pipeline_runs row. A failed stage is
// recorded and the run moves on; the returned error covers only run
// bookkeeping failures.
func (r *Runner) Run(ctx context.Context, command string, stages []string) (*Report, error) {
	dbc := dbctx.Context{Ctx: ctx}
	run, err := r.repos.PipelineRun.Create(dbc, &parliament.PipelineRun{Command: command})
	if err != nil {
		return nil, fmt.Errorf("pipeline: create run: %w", err)
	}
	td := &ctxutil.TraceData{RunID: run.ID.String(), Command: command}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		td.TraceID = sc.TraceID().String()
	}
	ctx = ctxutil.WithTraceData(ctx, td)
	log := r.log.With(td.Fields()...)
	log.Info("Pipeline run started", "stages", stages, "source", r.src.Describe())

	tally := linkage.NewTally()
	rep := &Report{RunID: run.ID.String(), Command: command}
	for _, name := range stages {
		if err := ctx.Err(); err != nil {
			rep.Stages = append(rep.Stages, StageResult{Name: name, Status: StageFailed, Error: err.Error()})
			continue
		}
		rep.Stages = append(rep.Stages, r.runStage(ctx, log, name, tally))
	}
	rep.Tally = tally.Report()
	rep.Status = runStatus(rep.Stages)

	var errMsg string
	for _, s := range rep.Stages {
		if s.Error != "" {
			errMsg = s.Name + ": " + s.Error
			break
		}
	}
	body, err := json.Marshal(rep)
	if err != nil {
		return rep, fmt.Errorf("pipeline: encode report: %w", err)
	}
	if err := r.repos.PipelineRun.Finish(dbctx.Context{Ctx: context.WithoutCancel(ctx)}, run.ID, rep.Status, datatypes.JSON(body), errMsg); err != nil {
		return rep, fmt.Errorf("pipeline: finish run: %w", err)
	}

	kv := append([]interface{}{"status", rep.Status}, rep.Tally.KV()...)
	log.Info("Pipeline run finished", kv...)
	return rep, nil
}

func (r *Runner) runStage(ctx context.Context, log *logger.Logger, name string, tally *linkage.Tally) StageResult {
	ctx, span := r.tracer.Start(ctx, "pipeline.stage."+name, trace.WithAttributes(attribute.String("stage", name)))
	defer span.End()

	res := StageResult{Name: name, StartedAt: time.Now().UTC()}
	out, filesFailed, err := r.execute(ctx, name, tally)
	res.FinishedAt = time.Now().UTC()
	res.DurationMS = res.FinishedAt.Sub(res.StartedAt).Milliseconds()
	res.Output = out
	res.FilesFailed = filesFailed

	switch {
	case err != nil:
		res.Status = StageFailed
		res.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("Stage failed", "stage", name, "error", err)
	case len(filesFailed) > 0:
		res.Status = StagePartial
		span.SetAttributes(attribute.StringSlice("files_failed", filesFailed))
		log.Warn("Stage read only part of its sources", "stage", name, "files_failed", filesFailed)
	default:
		res.Status = StageSucceeded
		log.Info("Stage finished", "stage", name, "duration_ms", res.DurationMS)
	}
	return res
}

func runStatus(stages []StageResult) string {
	failed, partial := 0, 0
	for _, s := range stages {
		switch s.Status {
		case StageFailed:
			failed++
		case StagePartial:
			partial++
		}
	}
	switch {
	case len(stages) > 0 && failed == len(stages):
		return parliament.RunStatusFailed
	case failed > 0 || partial > 0:
		return parliament.RunStatusPartial
	default:
		return parliament.RunStatusSucceeded
	}
}
