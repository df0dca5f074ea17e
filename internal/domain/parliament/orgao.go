package parliament

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrgTypeComissao               = "comissao"
	OrgTypeGrupoTrabalho          = "grupo_trabalho"
	OrgTypeSubcomissao            = "subcomissao"
	OrgTypeComissaoPermanente     = "comissao_permanente"
	OrgTypeConferenciaLideres     = "conferencia_lideres"
	OrgTypeConferenciaPresidentes = "conferencia_presidentes"
	OrgTypeConselhoAdministracao  = "conselho_administracao"
	OrgTypeMesaAR                 = "mesa_ar"
	OrgTypePlenario               = "plenario"
)

// Orgao is a parliamentary body. OrgID is the stable join key; Name is only a
// fallback key and is known to carry trailing whitespace variants.
type Orgao struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrgID       int64          `gorm:"column:org_id;not null;uniqueIndex:idx_orgao_org_id" json:"org_id"`
	Legislature string         `gorm:"column:legislature;index" json:"legislature"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Acronym     string         `gorm:"column:acronym" json:"acronym"`
	OrgType     string         `gorm:"column:org_type;not null;index" json:"type"`
	Number      *int           `gorm:"column:number" json:"number"`
	RawData     datatypes.JSON `gorm:"column:raw_data" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Orgao) TableName() string { return "orgaos" }

// OrgaoMembro captures the party at membership time, not the deputy's current party.
type OrgaoMembro struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	OrgaoID    uint           `gorm:"column:orgao_id;not null;uniqueIndex:idx_orgao_membro_key,priority:1" json:"orgao_id"`
	DepID      int64          `gorm:"column:dep_id;not null;uniqueIndex:idx_orgao_membro_key,priority:2" json:"dep_id"`
	DepCadID   int64          `gorm:"column:dep_cad_id;index" json:"dep_cad_id"`
	DeputyName string         `gorm:"column:deputy_name" json:"name"`
	Party      string         `gorm:"column:party" json:"party"`
	Role       *string        `gorm:"column:role" json:"role"`
	MemberType string         `gorm:"column:member_type" json:"member_type"`
	StartDate  *time.Time     `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate    *time.Time     `gorm:"column:end_date;type:date" json:"end_date"`
	RawData    datatypes.JSON `gorm:"column:raw_data" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OrgaoMembro) TableName() string { return "orgao_membros" }

const (
	LinkTypeLead      = "lead"
	LinkTypeSecondary = "secondary"
	LinkTypeAuthor    = "author"
)

// IniciativaComissao links an initiative to a committee for one phase.
// Natural key: (iniciativa_id, committee_name, link_type, phase_code). Author links
// carry an empty phase code.
type IniciativaComissao struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	IniciativaID     uint           `gorm:"column:iniciativa_id;not null;uniqueIndex:idx_iniciativa_comissao_key,priority:1" json:"iniciativa_id"`
	CommitteeName    string         `gorm:"column:committee_name;not null;uniqueIndex:idx_iniciativa_comissao_key,priority:2" json:"committee_name"`
	LinkType         string         `gorm:"column:link_type;not null;uniqueIndex:idx_iniciativa_comissao_key,priority:3" json:"link_type"`
	PhaseCode        string         `gorm:"column:phase_code;not null;default:'';uniqueIndex:idx_iniciativa_comissao_key,priority:4" json:"phase_code"`
	OrgaoID          *uint          `gorm:"column:orgao_id;index" json:"orgao_id"`
	CommitteeAPIID   *string        `gorm:"column:committee_api_id" json:"committee_api_id"`
	PhaseName        string         `gorm:"column:phase_name" json:"phase_name"`
	DistributionDate *time.Time     `gorm:"column:distribution_date;type:date" json:"distribution_date"`
	EventDate        *time.Time     `gorm:"column:event_date;type:date" json:"event_date"`
	HasRapporteur    bool           `gorm:"column:has_rapporteur;not null;default:false" json:"has_rapporteur"`
	HasVote          bool           `gorm:"column:has_vote;not null;default:false" json:"has_vote"`
	VoteResult       *string        `gorm:"column:vote_result" json:"vote_result"`
	VoteDate         *time.Time     `gorm:"column:vote_date;type:date" json:"vote_date"`
	HasDocuments     bool           `gorm:"column:has_documents;not null;default:false" json:"has_documents"`
	DocumentCount    int            `gorm:"column:document_count;not null;default:0" json:"document_count"`
	RawData          datatypes.JSON `gorm:"column:raw_data" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IniciativaComissao) TableName() string { return "iniciativa_comissao" }
