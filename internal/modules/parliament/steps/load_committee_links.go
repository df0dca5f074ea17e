package steps

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

const summaryTopN = 10

type LoadCommitteeLinksDeps struct {
	DB          *gorm.DB
	Log         *logger.Logger
	Source      source.BlobSource
	Iniciativas repos.IniciativaRepo
	Orgaos      repos.OrgaoRepo
	Comissoes   repos.IniciativaComissaoRepo
	Conjuntas   repos.IniciativaConjuntaRepo
	Autores     repos.IniciativaAutorRepo
}

type LoadCommitteeLinksInput struct {
	Files []SourceFile
	Tally *linkage.Tally
}

// LoadSummary is the end-of-load breakdown that is logged and kept in the run report.
type LoadSummary struct {
	ByType        []repos.GroupCount `json:"by_type"`
	ByStatus      []repos.GroupCount `json:"by_status"`
	ByLinkType    []repos.GroupCount `json:"by_link_type"`
	TopCommittees []repos.GroupCount `json:"top_committees"`
}

type LoadCommitteeLinksOutput struct {
	FilesRead      int         `json:"files_read"`
	FilesFailed    []string    `json:"files_failed,omitempty"`
	Iniciativas    int         `json:"iniciativas"`
	CommitteeLinks int         `json:"committee_links"`
	JointRows      int         `json:"joint_rows"`
	Authors        int         `json:"authors"`
	AuthorsPruned  int64       `json:"authors_pruned"`
	Summary        LoadSummary `json:"summary"`
}

// LoadCommitteeLinks runs after initiatives and orgaos are committed. It writes
// committee links, joint initiatives and fine-grained authors per initiative.
func LoadCommitteeLinks(ctx context.Context, deps LoadCommitteeLinksDeps, in LoadCommitteeLinksInput) (LoadCommitteeLinksOutput, error) {
	out := LoadCommitteeLinksOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Source == nil || deps.Iniciativas == nil || deps.Orgaos == nil ||
		deps.Comissoes == nil || deps.Conjuntas == nil || deps.Autores == nil {
		return out, fmt.Errorf("load_committee_links: missing deps")
	}
	log := deps.Log.With("step", "load_committee_links")
	tally := in.Tally

	refs, err := LoadRefMaps(dbctx.Context{Ctx: ctx}, deps.Iniciativas, deps.Orgaos)
	if err != nil {
		return out, fmt.Errorf("load_committee_links: %w", err)
	}
	inis, byAPI, byName := refs.Sizes()
	log.Debug("Reference maps ready", "iniciativas", inis, "orgaos_by_api_id", byAPI, "orgaos_by_name", byName, "name_collisions", refs.NameCollisions)

	// Malformed elements were already counted by the initiative stage.
	var items []*source.Iniciativa
	for _, d := range decodeFiles(ctx, deps.Source, in.Files, func(r io.Reader) ([]source.Iniciativa, error) {
		v, _, err := source.DecodeIniciativas(r)
		return v, err
	}) {
		if d.Err != nil {
			out.FilesFailed = append(out.FilesFailed, d.File.Name)
			log.Error("Initiative file unreadable", "file", d.File.Name, "error", d.Err)
			continue
		}
		out.FilesRead++
		for i := range d.Value {
			if d.Value[i].IniID == "" {
				continue
			}
			items = append(items, &d.Value[i])
		}
	}

	err = forEachBatch(ctx, deps.DB, len(items), defaultBatchSize, func(tx *gorm.DB, i int) {
		ini := items[i]
		iniciativaID, ok := refs.Iniciativa(string(ini.IniID))
		if !ok {
			tally.Unresolved("committee_links_iniciativa", 1)
			return
		}
		out.Iniciativas++

		for _, row := range linkage.ExtractCommitteeLinks(ini, iniciativaID, refs, tally) {
			if writeRow(ctx, tx, tally, log, "iniciativa_comissao", func(dbc dbctx.Context) error {
				return deps.Comissoes.Upsert(dbc, row)
			}) {
				out.CommitteeLinks++
				tally.Written("iniciativa_comissao", 1)
			}
		}

		for _, row := range linkage.ExtractJointInitiatives(ini, iniciativaID, refs, tally) {
			if writeRow(ctx, tx, tally, log, "iniciativa_conjunta", func(dbc dbctx.Context) error {
				return deps.Conjuntas.Upsert(dbc, row)
			}) {
				out.JointRows++
				tally.Written("iniciativa_conjunta", 1)
			}
		}

		authors := linkage.ExtractAuthors(ini, iniciativaID, refs, tally)
		keep := make([]uint, 0, len(authors))
		failed := false
		for _, row := range authors {
			var savedID uint
			if writeRow(ctx, tx, tally, log, "iniciativa_autores", func(dbc dbctx.Context) error {
				saved, err := deps.Autores.Upsert(dbc, row)
				if err != nil {
					return err
				}
				savedID = saved.ID
				return nil
			}) {
				keep = append(keep, savedID)
				out.Authors++
				tally.Written("iniciativa_autores", 1)
			} else {
				failed = true
			}
		}
		// A failed author keeps its previous rows until the next clean load.
		if failed {
			return
		}
		writeRow(ctx, tx, tally, log, "iniciativa_autores_prune", func(dbc dbctx.Context) error {
			n, err := deps.Autores.PruneStale(dbc, iniciativaID, keep)
			out.AuthorsPruned += n
			return err
		})
	})
	if err != nil {
		return out, fmt.Errorf("load_committee_links: %w", err)
	}

	out.Summary = summarize(dbctx.Context{Ctx: ctx}, deps, log)
	log.Info("Committee links loaded",
		"iniciativas", out.Iniciativas,
		"committee_links", out.CommitteeLinks,
		"joint_rows", out.JointRows,
		"authors", out.Authors,
		"authors_pruned", out.AuthorsPruned,
	)
	return out, nil
}

// summarize logs the load breakdown. Query failures only drop that section.
func summarize(dbc dbctx.Context, deps LoadCommitteeLinksDeps, log *logger.Logger) LoadSummary {
	var s LoadSummary
	var err error
	if s.ByType, err = deps.Iniciativas.CountByType(dbc); err != nil {
		log.Warn("Summary query failed", "section", "by_type", "error", err)
	}
	if s.ByStatus, err = deps.Iniciativas.CountByStatus(dbc, summaryTopN); err != nil {
		log.Warn("Summary query failed", "section", "by_status", "error", err)
	}
	if s.ByLinkType, err = deps.Comissoes.CountByLinkType(dbc); err != nil {
		log.Warn("Summary query failed", "section", "by_link_type", "error", err)
	}
	if s.TopCommittees, err = deps.Comissoes.TopCommittees(dbc, summaryTopN); err != nil {
		log.Warn("Summary query failed", "section", "top_committees", "error", err)
	}
	for _, g := range s.ByType {
		log.Info("Initiatives by type", "type", g.Label, "n", g.N)
	}
	for _, g := range s.ByStatus {
		log.Info("Initiatives by status", "status", g.Label, "n", g.N)
	}
	for _, g := range s.ByLinkType {
		log.Info("Committee links by type", "link_type", g.Label, "n", g.N)
	}
	for _, g := range s.TopCommittees {
		log.Info("Top committee", "committee", g.Label, "iniciativas", g.N)
	}
	return s
}
