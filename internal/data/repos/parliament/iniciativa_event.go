package parliament

import (
	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type IniciativaEventRepo interface {
	ReplaceForIniciativa(dbc dbctx.Context, iniciativaID uint, rows []*parliament.IniciativaEvent) error
	ListByIniciativa(dbc dbctx.Context, iniciativaID uint) ([]*parliament.IniciativaEvent, error)
	ListLinkable(dbc dbctx.Context) ([]*parliament.IniciativaEvent, error)
}

type iniciativaEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIniciativaEventRepo(db *gorm.DB, baseLog *logger.Logger) IniciativaEventRepo {
	return &iniciativaEventRepo{db: db, log: baseLog.With("repo", "IniciativaEventRepo")}
}

// ReplaceForIniciativa deletes every event of the initiative and inserts rows.
// Events have no stable natural key, so reloads rewrite them wholesale.
func (r *iniciativaEventRepo) ReplaceForIniciativa(dbc dbctx.Context, iniciativaID uint, rows []*parliament.IniciativaEvent) error {
	t := dbc.DB(r.db)
	if err := t.Where("iniciativa_id = ?", iniciativaID).Delete(&parliament.IniciativaEvent{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		row.ID = 0
		row.IniciativaID = iniciativaID
	}
	return t.CreateInBatches(rows, 200).Error
}

func (r *iniciativaEventRepo) ListByIniciativa(dbc dbctx.Context, iniciativaID uint) ([]*parliament.IniciativaEvent, error) {
	var out []*parliament.IniciativaEvent
	if err := dbc.DB(r.db).
		Where("iniciativa_id = ?", iniciativaID).
		Order("order_index ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListLinkable returns the events the committee/date strategy can use.
func (r *iniciativaEventRepo) ListLinkable(dbc dbctx.Context) ([]*parliament.IniciativaEvent, error) {
	var out []*parliament.IniciativaEvent
	if err := dbc.DB(r.db).
		Select("iniciativa_id", "committee", "phase_name", "event_date", "order_index").
		Where("committee IS NOT NULL AND committee <> '' AND event_date IS NOT NULL").
		Order("iniciativa_id ASC, order_index ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
