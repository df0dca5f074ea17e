package pipeline

import (
	"context"
	"fmt"

	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/steps"
)

// IsStage reports whether name is a runnable stage.
func IsStage(name string) bool {
	switch name {
	case StageOrgaos, StageDeputados, StageIniciativas, StageCommitteeLinks, StageAgenda, StageLink, StageValidate, StageGraph:
		return true
	}
	return false
}

// execute runs one stage and returns its output and the source files it could not read.
func (r *Runner) execute(ctx context.Context, name string, tally *linkage.Tally) (any, []string, error) {
	rs := r.repos
	switch name {
	case StageOrgaos:
		out, err := steps.LoadOrgaos(ctx, steps.LoadOrgaosDeps{
			DB: r.db, Log: r.log, Source: r.src, Orgaos: rs.Orgao, Membros: rs.OrgaoMembro,
		}, steps.LoadOrgaosInput{Files: r.cfg.Orgaos, Tally: tally})
		return out, out.FilesFailed, err

	case StageDeputados:
		out, err := steps.LoadDeputados(ctx, steps.LoadDeputadosDeps{
			DB: r.db, Log: r.log, Source: r.src, Deputados: rs.Deputado,
		}, steps.LoadDeputadosInput{Files: r.cfg.Deputados, BioFiles: r.cfg.Biografias, Tally: tally})
		return out, out.FilesFailed, err

	case StageIniciativas:
		out, err := steps.LoadIniciativas(ctx, steps.LoadIniciativasDeps{
			DB: r.db, Log: r.log, Source: r.src, Iniciativas: rs.Iniciativa, Events: rs.IniciativaEvent,
		}, steps.LoadIniciativasInput{Files: r.cfg.Iniciativas, Tally: tally})
		return out, out.FilesFailed, err

	case StageCommitteeLinks:
		out, err := steps.LoadCommitteeLinks(ctx, steps.LoadCommitteeLinksDeps{
			DB: r.db, Log: r.log, Source: r.src,
			Iniciativas: rs.Iniciativa, Orgaos: rs.Orgao,
			Comissoes: rs.IniciativaComissao, Conjuntas: rs.IniciativaConjunta, Autores: rs.IniciativaAutor,
		}, steps.LoadCommitteeLinksInput{Files: r.cfg.Iniciativas, Tally: tally})
		return out, out.FilesFailed, err

	case StageAgenda:
		out, err := steps.LoadAgenda(ctx, steps.LoadAgendaDeps{
			DB: r.db, Log: r.log, Source: r.src, Agenda: rs.AgendaEvent,
		}, steps.LoadAgendaInput{Files: r.cfg.Agenda, Tally: tally})
		return out, out.FilesFailed, err

	case StageLink:
		out, err := steps.LinkAgenda(ctx, steps.LinkAgendaDeps{
			DB: r.db, Log: r.log,
			Iniciativas: rs.Iniciativa, Events: rs.IniciativaEvent, Orgaos: rs.Orgao,
			Agenda: rs.AgendaEvent, Links: rs.AgendaLink,
		}, steps.LinkAgendaInput{Config: r.cfg.Linker, Tally: tally})
		return out, nil, err

	case StageValidate:
		rep, err := steps.ValidateLinks(ctx, steps.ValidateLinksDeps{Log: r.log, Links: rs.AgendaLink})
		if err == nil && !rep.OK() {
			tally.Malformed("agenda_link_validation", len(rep.Issues))
		}
		return rep, nil, err

	case StageGraph:
		if r.graph == nil {
			return nil, nil, fmt.Errorf("graph store not configured")
		}
		out, err := steps.SyncGraph(ctx, steps.SyncGraphDeps{
			Log: r.log, Iniciativas: rs.Iniciativa, Orgaos: rs.Orgao, Agenda: rs.AgendaEvent,
			Comissoes: rs.IniciativaComissao, Links: rs.AgendaLink, Graph: r.graph,
		})
		return out, nil, err
	}
	return nil, nil, fmt.Errorf("unknown stage %q", name)
}
