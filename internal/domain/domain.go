package domain

import "github.com/yungbote/viriato-backend/internal/domain/parliament"

type (
	Iniciativa           = parliament.Iniciativa
	IniciativaEvent      = parliament.IniciativaEvent
	IniciativaConjunta   = parliament.IniciativaConjunta
	IniciativaAutor      = parliament.IniciativaAutor
	IniciativaComissao   = parliament.IniciativaComissao
	Orgao                = parliament.Orgao
	OrgaoMembro          = parliament.OrgaoMembro
	AgendaEvent          = parliament.AgendaEvent
	AgendaInitiativeLink = parliament.AgendaInitiativeLink
	Deputado             = parliament.Deputado
	DeputadoBio          = parliament.DeputadoBio
	PipelineRun          = parliament.PipelineRun
)

const (
	LinkTypeLead          = parliament.LinkTypeLead
	LinkTypeSecondary     = parliament.LinkTypeSecondary
	LinkTypeAuthor        = parliament.LinkTypeAuthor
	LinkTypeBIDDirect     = parliament.LinkTypeBIDDirect
	LinkTypeCommitteeDate = parliament.LinkTypeCommitteeDate
)

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Orgao{},
		&OrgaoMembro{},
		&Deputado{},
		&DeputadoBio{},
		&Iniciativa{},
		&IniciativaEvent{},
		&IniciativaConjunta{},
		&IniciativaAutor{},
		&IniciativaComissao{},
		&AgendaEvent{},
		&AgendaInitiativeLink{},
		&PipelineRun{},
	}
}
