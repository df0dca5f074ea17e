package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// LinkWithIniciativa is a committee link joined with its initiative.
type LinkWithIniciativa struct {
	parliament.IniciativaComissao `gorm:"embedded"`
	IniID                         string `gorm:"column:ini_id"`
	IniTitle                      string `gorm:"column:ini_title"`
	CurrentStatus                 string `gorm:"column:current_status"`
	IsCompleted                   bool   `gorm:"column:is_completed"`
}

// LinkFactRow carries what the committee aggregates need from one link.
type LinkFactRow struct {
	OrgaoID       *uint  `gorm:"column:orgao_id"`
	CommitteeName string `gorm:"column:committee_name"`
	LinkType      string `gorm:"column:link_type"`
	IniciativaID  uint   `gorm:"column:iniciativa_id"`
	IsCompleted   bool   `gorm:"column:is_completed"`
	CurrentStatus string `gorm:"column:current_status"`
}

type IniciativaComissaoRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.IniciativaComissao) error
	ListByIniciativa(dbc dbctx.Context, iniciativaID uint) ([]LinkWithIniciativa, error)
	ListByOrgao(dbc dbctx.Context, orgaoID uint) ([]LinkWithIniciativa, error)
	ListLinkFacts(dbc dbctx.Context) ([]LinkFactRow, error)
	CountByLinkType(dbc dbctx.Context) ([]GroupCount, error)
	TopCommittees(dbc dbctx.Context, limit int) ([]GroupCount, error)
}

type iniciativaComissaoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIniciativaComissaoRepo(db *gorm.DB, baseLog *logger.Logger) IniciativaComissaoRepo {
	return &iniciativaComissaoRepo{db: db, log: baseLog.With("repo", "IniciativaComissaoRepo")}
}

func (r *iniciativaComissaoRepo) Upsert(dbc dbctx.Context, row *parliament.IniciativaComissao) error {
	row.ID = 0
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "iniciativa_id"}, {Name: "committee_name"}, {Name: "link_type"}, {Name: "phase_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"orgao_id", "committee_api_id", "phase_name", "distribution_date", "event_date",
			"has_rapporteur", "has_vote", "vote_result", "vote_date", "has_documents",
			"document_count", "raw_data", "updated_at",
		}),
	}).Create(row).Error
}

func (r *iniciativaComissaoRepo) joined(dbc dbctx.Context) *gorm.DB {
	return dbc.DB(r.db).
		Table("iniciativa_comissao AS ic").
		Select("ic.*, i.ini_id AS ini_id, i.title AS ini_title, i.current_status AS current_status, i.is_completed AS is_completed").
		Joins("JOIN iniciativas i ON i.id = ic.iniciativa_id")
}

func (r *iniciativaComissaoRepo) ListByIniciativa(dbc dbctx.Context, iniciativaID uint) ([]LinkWithIniciativa, error) {
	var out []LinkWithIniciativa
	if err := r.joined(dbc).Where("ic.iniciativa_id = ?", iniciativaID).Order("ic.id ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *iniciativaComissaoRepo) ListByOrgao(dbc dbctx.Context, orgaoID uint) ([]LinkWithIniciativa, error) {
	var out []LinkWithIniciativa
	if err := r.joined(dbc).Where("ic.orgao_id = ?", orgaoID).Order("ic.id ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *iniciativaComissaoRepo) ListLinkFacts(dbc dbctx.Context) ([]LinkFactRow, error) {
	var out []LinkFactRow
	err := dbc.DB(r.db).
		Table("iniciativa_comissao AS ic").
		Select("ic.orgao_id, ic.committee_name, ic.link_type, ic.iniciativa_id, i.is_completed, i.current_status").
		Joins("JOIN iniciativas i ON i.id = ic.iniciativa_id").
		Scan(&out).Error
	return out, err
}

func (r *iniciativaComissaoRepo) CountByLinkType(dbc dbctx.Context) ([]GroupCount, error) {
	var out []GroupCount
	err := dbc.DB(r.db).Model(&parliament.IniciativaComissao{}).
		Select("link_type AS label, COUNT(*) AS n").
		Group("link_type").
		Order("label ASC").
		Scan(&out).Error
	return out, err
}

func (r *iniciativaComissaoRepo) TopCommittees(dbc dbctx.Context, limit int) ([]GroupCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []GroupCount
	err := dbc.DB(r.db).Model(&parliament.IniciativaComissao{}).
		Select("committee_name AS label, COUNT(DISTINCT iniciativa_id) AS n").
		Group("committee_name").
		Order("n DESC, label ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
