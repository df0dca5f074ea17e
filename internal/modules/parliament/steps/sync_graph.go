package steps

import (
	"context"
	"fmt"

	"github.com/yungbote/viriato-backend/internal/data/graph"
	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type GraphWriter interface {
	UpsertLinkage(ctx context.Context, g graph.LinkageGraph) (graph.SyncCounts, error)
}

type SyncGraphDeps struct {
	Log         *logger.Logger
	Iniciativas repos.IniciativaRepo
	Orgaos      repos.OrgaoRepo
	Agenda      repos.AgendaEventRepo
	Comissoes   repos.IniciativaComissaoRepo
	Links       repos.AgendaLinkRepo
	Graph       GraphWriter
}

type SyncGraphOutput struct {
	Graph  graph.SyncCounts `json:"graph"`
	Orphan int              `json:"orphan_edges"`
}

// SyncGraph projects the committed linkage tables into the graph store.
func SyncGraph(ctx context.Context, deps SyncGraphDeps) (SyncGraphOutput, error) {
	var out SyncGraphOutput
	if deps.Log == nil || deps.Iniciativas == nil || deps.Orgaos == nil || deps.Agenda == nil ||
		deps.Comissoes == nil || deps.Links == nil || deps.Graph == nil {
		return out, fmt.Errorf("sync_graph: missing deps")
	}
	log := deps.Log.With("step", "sync_graph")

	g, orphan, err := BuildLinkageGraph(dbctx.Context{Ctx: ctx}, deps)
	if err != nil {
		return out, fmt.Errorf("sync_graph: %w", err)
	}
	out.Orphan = orphan
	counts, err := deps.Graph.UpsertLinkage(ctx, g)
	if err != nil {
		return out, fmt.Errorf("sync_graph: %w", err)
	}
	out.Graph = counts
	log.Info("Graph synced", "nodes", counts.Nodes, "relationships", counts.Relationships, "pruned", counts.Pruned, "orphan_edges", orphan)
	return out, nil
}

// BuildLinkageGraph reads the snapshot SyncGraph writes. Committee links whose
// body never resolved are skipped and counted as orphan.
func BuildLinkageGraph(dbc dbctx.Context, deps SyncGraphDeps) (graph.LinkageGraph, int, error) {
	var g graph.LinkageGraph
	orphan := 0

	inis, err := deps.Iniciativas.ListSummaries(dbc)
	if err != nil {
		return g, 0, fmt.Errorf("list initiatives: %w", err)
	}
	iniByID := make(map[uint]string, len(inis))
	for _, r := range inis {
		iniByID[r.ID] = r.IniID
		g.Iniciativas = append(g.Iniciativas, graph.IniciativaNode{
			IniID:         r.IniID,
			Legislature:   r.Legislature,
			Number:        r.Number,
			Type:          r.TypeDescription,
			Title:         r.Title,
			CurrentStatus: r.CurrentStatus,
			IsCompleted:   r.IsCompleted,
		})
	}

	orgs, err := deps.Orgaos.List(dbc, "")
	if err != nil {
		return g, 0, fmt.Errorf("list orgaos: %w", err)
	}
	orgByID := make(map[uint]int64, len(orgs))
	for _, o := range orgs {
		orgByID[o.ID] = o.OrgID
		g.Orgaos = append(g.Orgaos, graph.OrgaoNode{
			OrgID:       o.OrgID,
			Name:        o.Name,
			Acronym:     o.Acronym,
			OrgType:     o.OrgType,
			Legislature: o.Legislature,
		})
	}

	events, err := deps.Agenda.ListLinkable(dbc)
	if err != nil {
		return g, 0, fmt.Errorf("list agenda: %w", err)
	}
	for _, e := range events {
		n := graph.AgendaNode{EventID: e.EventID, Legislature: e.Legislature, Title: e.Title}
		if e.Committee != nil {
			n.Committee = *e.Committee
		}
		if e.StartDate != nil {
			n.StartDate = e.StartDate.Format("2006-01-02")
		}
		g.Events = append(g.Events, n)
	}

	facts, err := deps.Comissoes.ListLinkFacts(dbc)
	if err != nil {
		return g, 0, fmt.Errorf("list committee links: %w", err)
	}
	for _, f := range facts {
		if f.OrgaoID == nil {
			orphan++
			continue
		}
		orgID, okOrg := orgByID[*f.OrgaoID]
		iniID, okIni := iniByID[f.IniciativaID]
		if !okOrg || !okIni {
			orphan++
			continue
		}
		g.CommitteeEdges = append(g.CommitteeEdges, graph.CommitteeEdge{IniID: iniID, OrgID: orgID, LinkType: f.LinkType})
	}

	links, err := deps.Links.ListEvidence(dbc)
	if err != nil {
		return g, 0, fmt.Errorf("list agenda links: %w", err)
	}
	for _, l := range links {
		g.AgendaEdges = append(g.AgendaEdges, graph.AgendaEdge{
			EventID:    l.EventID,
			IniID:      l.IniID,
			LinkType:   l.LinkType,
			Confidence: l.LinkConfidence,
		})
	}
	return g, orphan, nil
}
