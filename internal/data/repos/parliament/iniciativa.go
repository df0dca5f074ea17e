package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// GroupCount is one row of a GROUP BY summary.
type GroupCount struct {
	Label string `gorm:"column:label" json:"label"`
	N     int64  `gorm:"column:n" json:"count"`
}

type IniciativaRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.Iniciativa) (*parliament.Iniciativa, error)
	GetByIniID(dbc dbctx.Context, iniID string) (*parliament.Iniciativa, error)
	ListRefKeys(dbc dbctx.Context) ([]*parliament.Iniciativa, error)
	ListSummaries(dbc dbctx.Context) ([]*parliament.Iniciativa, error)
	CountByType(dbc dbctx.Context) ([]GroupCount, error)
	CountByStatus(dbc dbctx.Context, limit int) ([]GroupCount, error)
}

type iniciativaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIniciativaRepo(db *gorm.DB, baseLog *logger.Logger) IniciativaRepo {
	return &iniciativaRepo{db: db, log: baseLog.With("repo", "IniciativaRepo")}
}

var iniciativaUpdateColumns = []string{
	"legislature", "number", "type", "type_description", "title",
	"author_type", "author_name", "start_date", "end_date",
	"current_status", "current_phase_code", "is_completed", "text_link",
	"raw_data", "updated_at",
}

// Upsert inserts or refreshes the row keyed by ini_id and returns it with its id.
func (r *iniciativaRepo) Upsert(dbc dbctx.Context, row *parliament.Iniciativa) (*parliament.Iniciativa, error) {
	t := dbc.DB(r.db)
	row.ID = 0
	if err := t.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ini_id"}},
		DoUpdates: clause.AssignmentColumns(iniciativaUpdateColumns),
	}).Create(row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		if err := t.Model(&parliament.Iniciativa{}).Select("id").Where("ini_id = ?", row.IniID).Scan(&row.ID).Error; err != nil {
			return nil, err
		}
	}
	return row, nil
}

func (r *iniciativaRepo) GetByIniID(dbc dbctx.Context, iniID string) (*parliament.Iniciativa, error) {
	var out parliament.Iniciativa
	if err := dbc.DB(r.db).Where("ini_id = ?", iniID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *iniciativaRepo) ListRefKeys(dbc dbctx.Context) ([]*parliament.Iniciativa, error) {
	var out []*parliament.Iniciativa
	if err := dbc.DB(r.db).Select("id", "ini_id").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListSummaries returns every initiative without its raw payload.
func (r *iniciativaRepo) ListSummaries(dbc dbctx.Context) ([]*parliament.Iniciativa, error) {
	var out []*parliament.Iniciativa
	if err := dbc.DB(r.db).
		Select("id", "ini_id", "legislature", "number", "type", "type_description", "title", "current_status", "is_completed").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *iniciativaRepo) CountByType(dbc dbctx.Context) ([]GroupCount, error) {
	var out []GroupCount
	err := dbc.DB(r.db).Model(&parliament.Iniciativa{}).
		Select("type_description AS label, COUNT(*) AS n").
		Group("type_description").
		Order("n DESC, label ASC").
		Scan(&out).Error
	return out, err
}

func (r *iniciativaRepo) CountByStatus(dbc dbctx.Context, limit int) ([]GroupCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []GroupCount
	err := dbc.DB(r.db).Model(&parliament.Iniciativa{}).
		Select("current_status AS label, COUNT(*) AS n").
		Group("current_status").
		Order("n DESC, label ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
