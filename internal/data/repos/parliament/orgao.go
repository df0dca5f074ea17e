package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type OrgaoRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.Orgao) (*parliament.Orgao, error)
	GetByOrgID(dbc dbctx.Context, orgID int64) (*parliament.Orgao, error)
	List(dbc dbctx.Context, orgType string) ([]*parliament.Orgao, error)
	ListRefKeys(dbc dbctx.Context) ([]*parliament.Orgao, error)
}

type orgaoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrgaoRepo(db *gorm.DB, baseLog *logger.Logger) OrgaoRepo {
	return &orgaoRepo{db: db, log: baseLog.With("repo", "OrgaoRepo")}
}

func (r *orgaoRepo) Upsert(dbc dbctx.Context, row *parliament.Orgao) (*parliament.Orgao, error) {
	t := dbc.DB(r.db)
	row.ID = 0
	if err := t.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "org_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"legislature", "name", "acronym", "org_type", "number", "raw_data", "updated_at"}),
	}).Create(row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		if err := t.Model(&parliament.Orgao{}).Select("id").Where("org_id = ?", row.OrgID).Scan(&row.ID).Error; err != nil {
			return nil, err
		}
	}
	return row, nil
}

func (r *orgaoRepo) GetByOrgID(dbc dbctx.Context, orgID int64) (*parliament.Orgao, error) {
	var out parliament.Orgao
	if err := dbc.DB(r.db).Where("org_id = ?", orgID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, nil
	}
	return &out, nil
}

// List returns bodies ordered by type then name; an empty orgType lists all.
func (r *orgaoRepo) List(dbc dbctx.Context, orgType string) ([]*parliament.Orgao, error) {
	q := dbc.DB(r.db)
	if orgType != "" {
		q = q.Where("org_type = ?", orgType)
	}
	var out []*parliament.Orgao
	if err := q.Order("org_type ASC, name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orgaoRepo) ListRefKeys(dbc dbctx.Context) ([]*parliament.Orgao, error) {
	var out []*parliament.Orgao
	if err := dbc.DB(r.db).Select("id", "org_id", "name").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
