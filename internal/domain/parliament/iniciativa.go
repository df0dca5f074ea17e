package parliament

import (
	"time"

	"gorm.io/datatypes"
)

// TerminalPhases is the closed set of phase names that end an initiative's lifecycle.
var TerminalPhases = map[string]struct{}{
	"Lei (Publicação DR)":             {},
	"Resolução da AR (Publicação DR)": {},
	"Rejeitado":                       {},
	"Retirada da iniciativa":          {},
	"Caducado":                        {},
}

// IsTerminalPhase is an exact match against TerminalPhases.
func IsTerminalPhase(status string) bool {
	_, ok := TerminalPhases[status]
	return ok
}

type Iniciativa struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	IniID            string         `gorm:"column:ini_id;not null;uniqueIndex:idx_iniciativa_ini_id" json:"ini_id"`
	Legislature      string         `gorm:"column:legislature;not null;index" json:"legislature"`
	Number           string         `gorm:"column:number" json:"number"`
	Type             string         `gorm:"column:type;index" json:"type"`
	TypeDescription  string         `gorm:"column:type_description" json:"type_description"`
	Title            string         `gorm:"column:title" json:"title"`
	AuthorType       *string        `gorm:"column:author_type" json:"author_type"`
	AuthorName       *string        `gorm:"column:author_name" json:"author_name"`
	StartDate        *time.Time     `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate          *time.Time     `gorm:"column:end_date;type:date" json:"end_date"`
	CurrentStatus    string         `gorm:"column:current_status" json:"current_status"`
	CurrentPhaseCode string         `gorm:"column:current_phase_code" json:"current_phase_code"`
	IsCompleted      bool           `gorm:"column:is_completed;not null;default:false;index" json:"is_completed"`
	TextLink         string         `gorm:"column:text_link" json:"text_link"`
	RawData          datatypes.JSON `gorm:"column:raw_data" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Iniciativa) TableName() string { return "iniciativas" }

// IniciativaEvent is one phase transition. Rows are owned by their initiative and
// rewritten wholesale on reload; OrderIndex is the position in the source array.
type IniciativaEvent struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	IniciativaID uint           `gorm:"column:iniciativa_id;not null;index:idx_iniciativa_event_order,priority:1" json:"iniciativa_id"`
	EvtID        string         `gorm:"column:evt_id" json:"evt_id"`
	OevID        string         `gorm:"column:oev_id" json:"oev_id"`
	PhaseCode    string         `gorm:"column:phase_code" json:"phase_code"`
	PhaseName    string         `gorm:"column:phase_name" json:"phase_name"`
	EventDate    *time.Time     `gorm:"column:event_date;type:date;index" json:"event_date"`
	Committee    *string        `gorm:"column:committee" json:"committee"`
	Observations string         `gorm:"column:observations" json:"observations"`
	OrderIndex   int            `gorm:"column:order_index;not null;index:idx_iniciativa_event_order,priority:2" json:"order_index"`
	RawData      datatypes.JSON `gorm:"column:raw_data" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (IniciativaEvent) TableName() string { return "iniciativa_events" }

// IniciativaConjunta records a sibling initiative declared inside an event.
type IniciativaConjunta struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	IniciativaID        uint       `gorm:"column:iniciativa_id;not null;uniqueIndex:idx_iniciativa_conjunta_key,priority:1" json:"iniciativa_id"`
	RelatedIniID        string     `gorm:"column:related_ini_id;not null;uniqueIndex:idx_iniciativa_conjunta_key,priority:2" json:"related_ini_id"`
	PhaseCode           string     `gorm:"column:phase_code;not null;default:'';uniqueIndex:idx_iniciativa_conjunta_key,priority:3" json:"phase_code"`
	RelatedIniciativaID *uint      `gorm:"column:related_iniciativa_id;index" json:"related_iniciativa_id"`
	RelatedIniNr        string     `gorm:"column:related_ini_nr" json:"related_ini_nr"`
	RelatedIniLeg       string     `gorm:"column:related_ini_leg" json:"related_ini_leg"`
	RelatedIniTipo      string     `gorm:"column:related_ini_tipo" json:"related_ini_tipo"`
	RelatedIniDescTipo  string     `gorm:"column:related_ini_desc_tipo" json:"related_ini_desc_tipo"`
	RelatedIniTitulo    string     `gorm:"column:related_ini_titulo" json:"related_ini_titulo"`
	PhaseName           string     `gorm:"column:phase_name" json:"phase_name"`
	EventDate           *time.Time `gorm:"column:event_date;type:date" json:"event_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IniciativaConjunta) TableName() string { return "iniciativa_conjunta" }

const (
	AuthorTypeDeputy     = "deputy"
	AuthorTypeGroup      = "group"
	AuthorTypeGovernment = "government"
	AuthorTypeCommittee  = "committee"
	AuthorTypeRegional   = "regional"
	AuthorTypeParliament = "parliament"
	AuthorTypeCitizen    = "citizen"
	AuthorTypeOther      = "other"
)

// IniciativaAutor is one fine-grained author row. Exactly one identity column is
// populated per row: DepCadID, Party, OrgaoID or EntityCode (with EntityName).
// The key columns use zero values instead of NULL so the unique index holds.
type IniciativaAutor struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	IniciativaID uint   `gorm:"column:iniciativa_id;not null;uniqueIndex:idx_iniciativa_autor_key,priority:1" json:"iniciativa_id"`
	AuthorType   string `gorm:"column:author_type;not null;uniqueIndex:idx_iniciativa_autor_key,priority:2" json:"author_type"`
	DepCadID     int64  `gorm:"column:dep_cad_id;not null;default:0;uniqueIndex:idx_iniciativa_autor_key,priority:3" json:"dep_cad_id,omitempty"`
	Party        string `gorm:"column:party;not null;default:'';uniqueIndex:idx_iniciativa_autor_key,priority:4" json:"party,omitempty"`
	EntityCode   string `gorm:"column:entity_code;not null;default:'';uniqueIndex:idx_iniciativa_autor_key,priority:5" json:"entity_code,omitempty"`
	OrgaoID      *uint  `gorm:"column:orgao_id;index" json:"orgao_id,omitempty"`
	EntityName   string `gorm:"column:entity_name" json:"entity_name,omitempty"`
	DisplayName  string `gorm:"column:display_name" json:"display_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IniciativaAutor) TableName() string { return "iniciativa_autores" }
