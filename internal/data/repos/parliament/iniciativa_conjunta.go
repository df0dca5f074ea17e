package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type IniciativaConjuntaRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.IniciativaConjunta) error
	ListByIniciativa(dbc dbctx.Context, iniciativaID uint) ([]*parliament.IniciativaConjunta, error)
}

type iniciativaConjuntaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIniciativaConjuntaRepo(db *gorm.DB, baseLog *logger.Logger) IniciativaConjuntaRepo {
	return &iniciativaConjuntaRepo{db: db, log: baseLog.With("repo", "IniciativaConjuntaRepo")}
}

func (r *iniciativaConjuntaRepo) Upsert(dbc dbctx.Context, row *parliament.IniciativaConjunta) error {
	row.ID = 0
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "iniciativa_id"}, {Name: "related_ini_id"}, {Name: "phase_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"related_iniciativa_id", "related_ini_nr", "related_ini_leg", "related_ini_tipo",
			"related_ini_desc_tipo", "related_ini_titulo", "phase_name", "event_date", "updated_at",
		}),
	}).Create(row).Error
}

func (r *iniciativaConjuntaRepo) ListByIniciativa(dbc dbctx.Context, iniciativaID uint) ([]*parliament.IniciativaConjunta, error) {
	var out []*parliament.IniciativaConjunta
	if err := dbc.DB(r.db).Where("iniciativa_id = ?", iniciativaID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
