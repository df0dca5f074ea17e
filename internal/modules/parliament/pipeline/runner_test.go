package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/viriato-backend/internal/data/graph"
	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/data/repos/testutil"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
)

type counts struct {
	iniciativas, events, comissao, conjunta, autores, orgaos, membros, deputados, agenda, links int64
}

func countRows(t *testing.T, r *Runner) counts {
	t.Helper()
	var c counts
	for table, dst := range map[string]*int64{
		"iniciativas":             &c.iniciativas,
		"iniciativa_events":       &c.events,
		"iniciativa_comissao":     &c.comissao,
		"iniciativa_conjunta":     &c.conjunta,
		"iniciativa_autores":      &c.autores,
		"orgaos":                  &c.orgaos,
		"orgao_membros":           &c.membros,
		"deputados":               &c.deputados,
		"agenda_events":           &c.agenda,
		"agenda_initiative_links": &c.links,
	} {
		if err := r.db.Table(table).Count(dst).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
	}
	return c
}

func newRunner(t *testing.T) *Runner {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	r, err := NewRunner(RunnerDeps{
		DB:     tx,
		Log:    log,
		Source: source.NewDirSource("testdata"),
		Repos:  repos.NewSet(tx, log),
		Config: DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func TestRunIsIdempotent(t *testing.T) {
	r := newRunner(t)
	ctx := context.Background()
	stages := append(append([]string(nil), LoadOrder...), StageValidate)

	first, err := r.Run(ctx, "sync", stages)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first.Status != parliament.RunStatusSucceeded {
		t.Fatalf("first run status: want=%q got=%q stages=%+v", parliament.RunStatusSucceeded, first.Status, first.Stages)
	}
	c1 := countRows(t, r)
	if c1.iniciativas != 2 || c1.events != 3 || c1.links != 3 || c1.autores != 3 || c1.orgaos != 2 || c1.deputados != 3 {
		t.Fatalf("first run rows: got=%+v", c1)
	}

	second, err := r.Run(ctx, "sync", stages)
	if err != nil {
		t.Fatalf("Run again: %v", err)
	}
	if second.Status != parliament.RunStatusSucceeded {
		t.Fatalf("second run status: got=%q", second.Status)
	}
	if c2 := countRows(t, r); c2 != c1 {
		t.Fatalf("rerun changed row counts: first=%+v second=%+v", c1, c2)
	}
	if second.Tally.Written["agenda_initiative_links"] != 3 {
		t.Fatalf("second run links written: got=%v", second.Tally.Written)
	}

	latest, err := r.repos.PipelineRun.GetLatest(testutil.Ctx(r.db), "sync")
	if err != nil || latest == nil {
		t.Fatalf("GetLatest: err=%v", err)
	}
	if latest.ID.String() != second.RunID || latest.Status != parliament.RunStatusSucceeded || latest.FinishedAt == nil {
		t.Fatalf("latest run: got=%+v", latest)
	}
	var stored Report
	if err := json.Unmarshal(latest.Report, &stored); err != nil {
		t.Fatalf("stored report: %v", err)
	}
	if len(stored.Stages) != len(stages) || stored.Tally.Malformed["iniciativa_missing_id"] != 1 {
		t.Fatalf("stored report: got=%+v", stored)
	}
}

func TestRunMarksMissingSourcePartial(t *testing.T) {
	r := newRunner(t)
	r.cfg.Iniciativas = append(r.cfg.Iniciativas, r.cfg.Iniciativas[0])
	r.cfg.Iniciativas[1].Name = "IniciativasXVI_json.txt"

	rep, err := r.Run(context.Background(), "load", []string{StageOrgaos, StageIniciativas, "bogus"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Status != parliament.RunStatusPartial {
		t.Fatalf("status: want=%q got=%q", parliament.RunStatusPartial, rep.Status)
	}
	want := []StageStatus{StageSucceeded, StagePartial, StageFailed}
	for i, s := range rep.Stages {
		if s.Status != want[i] {
			t.Fatalf("stage %s: want=%q got=%q", s.Name, want[i], s.Status)
		}
	}
	if got := rep.Stages[1].FilesFailed; len(got) != 1 || got[0] != "IniciativasXVI_json.txt" {
		t.Fatalf("files failed: got=%v", got)
	}
}

type countingGraph struct{ calls, edges int }

func (g *countingGraph) UpsertLinkage(_ context.Context, lg graph.LinkageGraph) (graph.SyncCounts, error) {
	g.calls++
	g.edges = len(lg.AgendaEdges)
	return graph.SyncCounts{Relationships: len(lg.AgendaEdges) + len(lg.CommitteeEdges)}, nil
}

func TestGraphStage(t *testing.T) {
	r := newRunner(t)
	ctx := context.Background()
	if got := r.SyncStages(); got[len(got)-1] != StageValidate {
		t.Fatalf("sync stages without graph: got=%v", got)
	}
	rep, err := r.Run(ctx, "graph-sync", []string{StageGraph})
	if err != nil || rep.Stages[0].Status != StageFailed || rep.Status != parliament.RunStatusFailed {
		t.Fatalf("graph stage without store: err=%v rep=%+v", err, rep)
	}

	g := &countingGraph{}
	r.graph = g
	stages := r.SyncStages()
	if stages[len(stages)-1] != StageGraph {
		t.Fatalf("sync stages with graph: got=%v", stages)
	}
	rep, err = r.Run(ctx, "sync", stages)
	if err != nil || rep.Status != parliament.RunStatusSucceeded {
		t.Fatalf("sync: err=%v rep=%+v", err, rep)
	}
	if g.calls != 1 || g.edges != 3 {
		t.Fatalf("graph writer: calls=%d edges=%d", g.calls, g.edges)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	body := "legislatures: [XVI, XVII]\nlinking:\n  date_tolerance_days: 5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if len(cfg.Iniciativas) != 2 || cfg.Iniciativas[0].Name != "IniciativasXVI_json.txt" || cfg.Iniciativas[1].Legislature != "XVII" {
		t.Fatalf("iniciativas: got=%+v", cfg.Iniciativas)
	}
	if len(cfg.Agenda) != 1 || cfg.Agenda[0].Name != "AgendaParlamentar_json.txt" {
		t.Fatalf("agenda: got=%+v", cfg.Agenda)
	}
	if cfg.Linker.ToleranceDays != 5 || cfg.Linker.MinConfidence != 0.50 || cfg.Linker.MaxConfidence != 0.75 {
		t.Fatalf("linker: got=%+v", cfg.Linker)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("linking:\n  confidence_min: 0.9\n  confidence_max: 0.6\n"), 0o644)
	if _, err := LoadConfigFile(bad); err == nil {
		t.Fatalf("LoadConfigFile: want error for inverted band")
	}
	wide := filepath.Join(t.TempDir(), "wide.yaml")
	_ = os.WriteFile(wide, []byte("linking:\n  date_tolerance_days: 14\n  confidence_min: 0.2\n  confidence_max: 0.95\n"), 0o644)
	cfg, err = LoadConfigFile(wide)
	if err != nil {
		t.Fatalf("LoadConfigFile(wide): %v", err)
	}
	if cfg.Linker != linkage.DefaultLinkerConfig() {
		t.Fatalf("wide linker: want clamped to defaults got=%+v", cfg.Linker)
	}
	if cfg, err := LoadConfigFile(""); err != nil || len(cfg.Orgaos) != 1 {
		t.Fatalf("LoadConfigFile(\"\"): err=%v cfg=%+v", err, cfg)
	}
}
