package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type DeputadoRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.Deputado) error
	ListByLegislature(dbc dbctx.Context, legislature string) ([]parliament.Deputado, error)
	UpsertBio(dbc dbctx.Context, row *parliament.DeputadoBio) error
	GetBio(dbc dbctx.Context, cadID int64) (*parliament.DeputadoBio, error)
}

type deputadoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeputadoRepo(db *gorm.DB, baseLog *logger.Logger) DeputadoRepo {
	return &deputadoRepo{db: db, log: baseLog.With("repo", "DeputadoRepo")}
}

func (r *deputadoRepo) Upsert(dbc dbctx.Context, row *parliament.Deputado) error {
	row.ID = 0
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "dep_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"dep_cad_id", "legislature", "name", "full_name", "party", "circulo_id", "circulo",
			"situation", "situation_start", "situation_end", "raw_data", "updated_at",
		}),
	}).Create(row).Error
}

// ListByLegislature lists deputies ordered by name; an empty legislature lists all.
func (r *deputadoRepo) ListByLegislature(dbc dbctx.Context, legislature string) ([]parliament.Deputado, error) {
	q := dbc.DB(r.db)
	if legislature != "" {
		q = q.Where("legislature = ?", legislature)
	}
	var out []parliament.Deputado
	if err := q.Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *deputadoRepo) UpsertBio(dbc dbctx.Context, row *parliament.DeputadoBio) error {
	row.ID = 0
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cad_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "gender", "birth_date", "profession", "education",
			"published_works", "awards", "titles", "raw_data", "updated_at",
		}),
	}).Create(row).Error
}

func (r *deputadoRepo) GetBio(dbc dbctx.Context, cadID int64) (*parliament.DeputadoBio, error) {
	var out parliament.DeputadoBio
	if err := dbc.DB(r.db).Where("cad_id = ?", cadID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, nil
	}
	return &out, nil
}
