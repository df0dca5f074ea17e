package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type IniciativaRepo = parliament.IniciativaRepo
type IniciativaEventRepo = parliament.IniciativaEventRepo
type IniciativaComissaoRepo = parliament.IniciativaComissaoRepo
type IniciativaConjuntaRepo = parliament.IniciativaConjuntaRepo
type IniciativaAutorRepo = parliament.IniciativaAutorRepo

type OrgaoRepo = parliament.OrgaoRepo
type OrgaoMembroRepo = parliament.OrgaoMembroRepo
type DeputadoRepo = parliament.DeputadoRepo

type AgendaEventRepo = parliament.AgendaEventRepo
type AgendaLinkRepo = parliament.AgendaLinkRepo

type PipelineRunRepo = parliament.PipelineRunRepo

type GroupCount = parliament.GroupCount
type LinkWithIniciativa = parliament.LinkWithIniciativa
type LinkFactRow = parliament.LinkFactRow
type LinkedIniciativa = parliament.LinkedIniciativa
type LinkEvidence = parliament.LinkEvidence

// Set is every repository the pipeline and the read API use.
type Set struct {
	Iniciativa         IniciativaRepo
	IniciativaEvent    IniciativaEventRepo
	IniciativaComissao IniciativaComissaoRepo
	IniciativaConjunta IniciativaConjuntaRepo
	IniciativaAutor    IniciativaAutorRepo
	Orgao              OrgaoRepo
	OrgaoMembro        OrgaoMembroRepo
	Deputado           DeputadoRepo
	AgendaEvent        AgendaEventRepo
	AgendaLink         AgendaLinkRepo
	PipelineRun        PipelineRunRepo
}

func NewSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Iniciativa:         parliament.NewIniciativaRepo(db, log),
		IniciativaEvent:    parliament.NewIniciativaEventRepo(db, log),
		IniciativaComissao: parliament.NewIniciativaComissaoRepo(db, log),
		IniciativaConjunta: parliament.NewIniciativaConjuntaRepo(db, log),
		IniciativaAutor:    parliament.NewIniciativaAutorRepo(db, log),
		Orgao:              parliament.NewOrgaoRepo(db, log),
		OrgaoMembro:        parliament.NewOrgaoMembroRepo(db, log),
		Deputado:           parliament.NewDeputadoRepo(db, log),
		AgendaEvent:        parliament.NewAgendaEventRepo(db, log),
		AgendaLink:         parliament.NewAgendaLinkRepo(db, log),
		PipelineRun:        parliament.NewPipelineRunRepo(db, log),
	}
}
