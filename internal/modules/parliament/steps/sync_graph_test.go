package steps

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/viriato-backend/internal/data/graph"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
)

type recordingGraph struct {
	got graph.LinkageGraph
	err error
}

func (r *recordingGraph) UpsertLinkage(_ context.Context, g graph.LinkageGraph) (graph.SyncCounts, error) {
	r.got = g
	return graph.SyncCounts{Nodes: len(g.Iniciativas) + len(g.Orgaos) + len(g.Events)}, r.err
}

func graphDeps(e env, w GraphWriter) SyncGraphDeps {
	return SyncGraphDeps{
		Log:         e.log,
		Iniciativas: e.set.Iniciativa,
		Orgaos:      e.set.Orgao,
		Agenda:      e.set.AgendaEvent,
		Comissoes:   e.set.IniciativaComissao,
		Links:       e.set.AgendaLink,
		Graph:       w,
	}
}

func TestSyncGraphProjectsLinkage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	loadAll(t, ctx, e, linkage.NewTally())
	if _, err := LinkAgenda(ctx, linkDeps(e), LinkAgendaInput{Config: linkage.DefaultLinkerConfig(), Tally: linkage.NewTally()}); err != nil {
		t.Fatalf("LinkAgenda: %v", err)
	}

	w := &recordingGraph{}
	out, err := SyncGraph(ctx, graphDeps(e, w))
	if err != nil {
		t.Fatalf("SyncGraph: %v", err)
	}
	g := w.got
	if len(g.Iniciativas) != 2 || len(g.Orgaos) != 2 || len(g.Events) != 2 {
		t.Fatalf("nodes: inis=%d orgaos=%d events=%d", len(g.Iniciativas), len(g.Orgaos), len(g.Events))
	}
	if out.Graph.Nodes != 6 || out.Orphan != 0 {
		t.Fatalf("output: got=%+v", out)
	}
	if len(g.CommitteeEdges) != 1 {
		t.Fatalf("committee edges: got=%+v", g.CommitteeEdges)
	}
	ce := g.CommitteeEdges[0]
	if ce.IniID != "315636" || ce.OrgID != 1200 || ce.LinkType != "lead" {
		t.Fatalf("committee edge: got=%+v", ce)
	}
	if len(g.AgendaEdges) != 3 {
		t.Fatalf("agenda edges: want=3 got=%d", len(g.AgendaEdges))
	}
	for _, ev := range g.Events {
		if ev.EventID == 9001 && (ev.StartDate != "2025-07-02" || ev.Committee != "Comissão de Saúde") {
			t.Fatalf("event 9001: got=%+v", ev)
		}
	}
}

func TestSyncGraphPropagatesWriterError(t *testing.T) {
	e := newEnv(t)
	w := &recordingGraph{err: errors.New("neo4j down")}
	if _, err := SyncGraph(context.Background(), graphDeps(e, w)); err == nil {
		t.Fatalf("want error")
	}
	if _, err := SyncGraph(context.Background(), SyncGraphDeps{Log: e.log}); err == nil {
		t.Fatalf("want missing deps error")
	}
}
