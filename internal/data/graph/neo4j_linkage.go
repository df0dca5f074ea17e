package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/viriato-backend/internal/platform/logger"
	"github.com/yungbote/viriato-backend/internal/platform/neo4jdb"
)

type IniciativaNode struct {
	IniID         string
	Legislature   string
	Number        string
	Type          string
	Title         string
	CurrentStatus string
	IsCompleted   bool
}

type OrgaoNode struct {
	OrgID       int64
	Name        string
	Acronym     string
	OrgType     string
	Legislature string
}

type AgendaNode struct {
	EventID     int64
	Legislature string
	Title       string
	Committee   string
	StartDate   string
}

// CommitteeEdge is (:Iniciativa)-[:REFERRED_TO]->(:Orgao).
type CommitteeEdge struct {
	IniID    string
	OrgID    int64
	LinkType string
}

// AgendaEdge is (:AgendaEvent)-[:DISCUSSES]->(:Iniciativa).
type AgendaEdge struct {
	EventID    int64
	IniID      string
	LinkType   string
	Confidence float64
}

// LinkageGraph is one full projection of the relational linkage tables.
type LinkageGraph struct {
	Iniciativas    []IniciativaNode
	Orgaos         []OrgaoNode
	Events         []AgendaNode
	CommitteeEdges []CommitteeEdge
	AgendaEdges    []AgendaEdge
}

type SyncCounts struct {
	Nodes         int   `json:"nodes"`
	Relationships int   `json:"relationships"`
	Pruned        int64 `json:"pruned"`
}

type LinkageWriter struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewLinkageWriter(client *neo4jdb.Client, log *logger.Logger) *LinkageWriter {
	return &LinkageWriter{client: client, log: log.With("graph", "LinkageWriter")}
}

var linkageSchema = []string{
	`CREATE CONSTRAINT iniciativa_ini_id_unique IF NOT EXISTS FOR (i:Iniciativa) REQUIRE i.ini_id IS UNIQUE`,
	`CREATE CONSTRAINT orgao_org_id_unique IF NOT EXISTS FOR (o:Orgao) REQUIRE o.org_id IS UNIQUE`,
	`CREATE CONSTRAINT agenda_event_id_unique IF NOT EXISTS FOR (e:AgendaEvent) REQUIRE e.event_id IS UNIQUE`,
}

// UpsertLinkage merges every node and relationship in g and then removes
// relationships not touched by this sync. Nodes are never deleted.
func (w *LinkageWriter) UpsertLinkage(ctx context.Context, g LinkageGraph) (SyncCounts, error) {
	var counts SyncCounts
	if w == nil || w.client == nil || w.client.Driver == nil {
		return counts, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	inis := make([]map[string]any, 0, len(g.Iniciativas))
	for _, n := range g.Iniciativas {
		if n.IniID == "" {
			continue
		}
		inis = append(inis, map[string]any{
			"ini_id":         n.IniID,
			"legislature":    n.Legislature,
			"number":         n.Number,
			"type":           n.Type,
			"title":          n.Title,
			"current_status": n.CurrentStatus,
			"is_completed":   n.IsCompleted,
			"synced_at":      now,
		})
	}
	orgaos := make([]map[string]any, 0, len(g.Orgaos))
	for _, n := range g.Orgaos {
		if n.OrgID == 0 {
			continue
		}
		orgaos = append(orgaos, map[string]any{
			"org_id":      n.OrgID,
			"name":        n.Name,
			"acronym":     n.Acronym,
			"org_type":    n.OrgType,
			"legislature": n.Legislature,
			"synced_at":   now,
		})
	}
	events := make([]map[string]any, 0, len(g.Events))
	for _, n := range g.Events {
		if n.EventID == 0 {
			continue
		}
		events = append(events, map[string]any{
			"event_id":    n.EventID,
			"legislature": n.Legislature,
			"title":       n.Title,
			"committee":   n.Committee,
			"start_date":  n.StartDate,
			"synced_at":   now,
		})
	}
	referred := make([]map[string]any, 0, len(g.CommitteeEdges))
	for _, e := range g.CommitteeEdges {
		if e.IniID == "" || e.OrgID == 0 || e.LinkType == "" {
			continue
		}
		referred = append(referred, map[string]any{
			"ini_id":    e.IniID,
			"org_id":    e.OrgID,
			"link_type": e.LinkType,
			"synced_at": now,
		})
	}
	discusses := make([]map[string]any, 0, len(g.AgendaEdges))
	for _, e := range g.AgendaEdges {
		if e.IniID == "" || e.EventID == 0 {
			continue
		}
		discusses = append(discusses, map[string]any{
			"event_id":   e.EventID,
			"ini_id":     e.IniID,
			"link_type":  e.LinkType,
			"confidence": e.Confidence,
			"synced_at":  now,
		})
	}
	counts.Nodes = len(inis) + len(orgaos) + len(events)
	counts.Relationships = len(referred) + len(discusses)

	session := w.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: w.client.Database,
	})
	defer session.Close(ctx)

	// Best-effort; restricted users may not create constraints.
	for _, stmt := range linkageSchema {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			w.log.Warn("neo4j schema init failed (continuing)", "error", err)
			continue
		}
		_, _ = res.Consume(ctx)
	}

	pruned, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		steps := []struct {
			cypher string
			param  []map[string]any
		}{
			{`
UNWIND $rows AS n
MERGE (i:Iniciativa {ini_id: n.ini_id})
SET i += n
`, inis},
			{`
UNWIND $rows AS n
MERGE (o:Orgao {org_id: n.org_id})
SET o += n
`, orgaos},
			{`
UNWIND $rows AS n
MERGE (e:AgendaEvent {event_id: n.event_id})
SET e += n
`, events},
			{`
UNWIND $rows AS r
MATCH (i:Iniciativa {ini_id: r.ini_id})
MATCH (o:Orgao {org_id: r.org_id})
MERGE (i)-[x:REFERRED_TO {link_type: r.link_type}]->(o)
SET x.synced_at = r.synced_at
`, referred},
			{`
UNWIND $rows AS r
MATCH (e:AgendaEvent {event_id: r.event_id})
MATCH (i:Iniciativa {ini_id: r.ini_id})
MERGE (e)-[x:DISCUSSES]->(i)
SET x.link_type = r.link_type,
    x.confidence = r.confidence,
    x.synced_at = r.synced_at
`, discusses},
		}
		for _, s := range steps {
			if len(s.param) == 0 {
				continue
			}
			res, err := tx.Run(ctx, s.cypher, map[string]any{"rows": s.param})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}

		res, err := tx.Run(ctx, `
MATCH ()-[x:REFERRED_TO|DISCUSSES]->()
WHERE x.synced_at <> $now
DELETE x
RETURN count(x) AS pruned
`, map[string]any{"now": now})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _, err := neo4j.GetRecordValue[int64](rec, "pruned")
		return n, err
	})
	if err != nil {
		return counts, fmt.Errorf("neo4j linkage sync: %w", err)
	}
	if n, ok := pruned.(int64); ok {
		counts.Pruned = n
	}
	return counts, nil
}
