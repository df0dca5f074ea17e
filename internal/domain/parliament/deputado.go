package parliament

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SituationEfetivo           = "Efetivo"
	SituationEfetivoTemporario = "Efetivo Temporário"
	SituationEfetivoDefinitivo = "Efetivo Definitivo"
	SituationSuspensoEleito    = "Suspenso(Eleito)"
)

// IsServing reports whether a situation counts as holding the seat.
func IsServing(situation string) bool {
	switch situation {
	case SituationEfetivo, SituationEfetivoTemporario, SituationEfetivoDefinitivo:
		return true
	default:
		return false
	}
}

// Deputado is one deputy mandate in a legislature. DepCadID is the cross-file key.
type Deputado struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	DepID          int64          `gorm:"column:dep_id;not null;uniqueIndex:idx_deputado_dep_id" json:"dep_id"`
	DepCadID       int64          `gorm:"column:dep_cad_id;not null;index" json:"dep_cad_id"`
	Legislature    string         `gorm:"column:legislature;not null;index" json:"legislature"`
	Name           string         `gorm:"column:name" json:"name"`
	FullName       string         `gorm:"column:full_name" json:"full_name"`
	Party          string         `gorm:"column:party;index" json:"party"`
	CirculoID      *int64         `gorm:"column:circulo_id" json:"circulo_id"`
	Circulo        string         `gorm:"column:circulo" json:"circulo"`
	Situation      string         `gorm:"column:situation;index" json:"situation"`
	SituationStart *time.Time     `gorm:"column:situation_start;type:date" json:"situation_start"`
	SituationEnd   *time.Time     `gorm:"column:situation_end;type:date" json:"situation_end"`
	RawData        datatypes.JSON `gorm:"column:raw_data" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Deputado) TableName() string { return "deputados" }

type DeputadoBio struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CadID          int64          `gorm:"column:cad_id;not null;uniqueIndex:idx_deputado_bio_cad_id" json:"cad_id"`
	FullName       string         `gorm:"column:full_name" json:"full_name"`
	Gender         string         `gorm:"column:gender" json:"gender"`
	BirthDate      *time.Time     `gorm:"column:birth_date;type:date" json:"birth_date"`
	Profession     string         `gorm:"column:profession" json:"profession"`
	Education      string         `gorm:"column:education" json:"education"`
	PublishedWorks string         `gorm:"column:published_works" json:"published_works"`
	Awards         string         `gorm:"column:awards" json:"awards"`
	Titles         string         `gorm:"column:titles" json:"titles"`
	RawData        datatypes.JSON `gorm:"column:raw_data" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DeputadoBio) TableName() string { return "deputados_bio" }
