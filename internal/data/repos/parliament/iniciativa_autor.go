package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type IniciativaAutorRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.IniciativaAutor) (*parliament.IniciativaAutor, error)
	PruneStale(dbc dbctx.Context, iniciativaID uint, keepIDs []uint) (int64, error)
	ListByIniciativa(dbc dbctx.Context, iniciativaID uint) ([]*parliament.IniciativaAutor, error)
}

type iniciativaAutorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIniciativaAutorRepo(db *gorm.DB, baseLog *logger.Logger) IniciativaAutorRepo {
	return &iniciativaAutorRepo{db: db, log: baseLog.With("repo", "IniciativaAutorRepo")}
}

func (r *iniciativaAutorRepo) Upsert(dbc dbctx.Context, row *parliament.IniciativaAutor) (*parliament.IniciativaAutor, error) {
	t := dbc.DB(r.db)
	row.ID = 0
	if err := t.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "iniciativa_id"}, {Name: "author_type"}, {Name: "dep_cad_id"}, {Name: "party"}, {Name: "entity_code"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"orgao_id", "entity_name", "display_name", "updated_at"}),
	}).Create(row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		if err := t.Model(&parliament.IniciativaAutor{}).
			Select("id").
			Where("iniciativa_id = ? AND author_type = ? AND dep_cad_id = ? AND party = ? AND entity_code = ?",
				row.IniciativaID, row.AuthorType, row.DepCadID, row.Party, row.EntityCode).
			Scan(&row.ID).Error; err != nil {
			return nil, err
		}
	}
	return row, nil
}

// PruneStale deletes the initiative's author rows that the latest load did not emit.
func (r *iniciativaAutorRepo) PruneStale(dbc dbctx.Context, iniciativaID uint, keepIDs []uint) (int64, error) {
	q := dbc.DB(r.db).Where("iniciativa_id = ?", iniciativaID)
	if len(keepIDs) > 0 {
		q = q.Where("id NOT IN ?", keepIDs)
	}
	res := q.Delete(&parliament.IniciativaAutor{})
	return res.RowsAffected, res.Error
}

func (r *iniciativaAutorRepo) ListByIniciativa(dbc dbctx.Context, iniciativaID uint) ([]*parliament.IniciativaAutor, error) {
	var out []*parliament.IniciativaAutor
	if err := dbc.DB(r.db).Where("iniciativa_id = ?", iniciativaID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
