package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type AgendaEventRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.AgendaEvent) error
	GetByEventID(dbc dbctx.Context, eventID int64) (*parliament.AgendaEvent, error)
	ListLinkable(dbc dbctx.Context) ([]*parliament.AgendaEvent, error)
	ListCommitteeLabels(dbc dbctx.Context) ([]string, error)
	ListByCommittees(dbc dbctx.Context, labels []string, limit int) ([]*parliament.AgendaEvent, error)
}

type agendaEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgendaEventRepo(db *gorm.DB, baseLog *logger.Logger) AgendaEventRepo {
	return &agendaEventRepo{db: db, log: baseLog.With("repo", "AgendaEventRepo")}
}

func (r *agendaEventRepo) Upsert(dbc dbctx.Context, row *parliament.AgendaEvent) error {
	row.ID = 0
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"legislature", "title", "subtitle", "section", "theme", "location",
			"start_date", "start_time", "end_date", "end_time", "is_all_day",
			"description", "committee", "meeting_number", "session_number", "raw_data", "updated_at",
		}),
	}).Create(row).Error
}

func (r *agendaEventRepo) GetByEventID(dbc dbctx.Context, eventID int64) (*parliament.AgendaEvent, error) {
	var out parliament.AgendaEvent
	if err := dbc.DB(r.db).Where("event_id = ?", eventID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, nil
	}
	return &out, nil
}

// ListLinkable returns every agenda event with the columns the linker reads.
func (r *agendaEventRepo) ListLinkable(dbc dbctx.Context) ([]*parliament.AgendaEvent, error) {
	var out []*parliament.AgendaEvent
	if err := dbc.DB(r.db).
		Select("id", "event_id", "legislature", "title", "committee", "start_date", "description").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListCommitteeLabels returns the distinct non-empty committee labels.
func (r *agendaEventRepo) ListCommitteeLabels(dbc dbctx.Context) ([]string, error) {
	var out []string
	if err := dbc.DB(r.db).
		Model(&parliament.AgendaEvent{}).
		Where("committee IS NOT NULL AND committee <> ''").
		Distinct().
		Order("committee ASC").
		Pluck("committee", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCommittees returns the newest events held by any of the labels.
func (r *agendaEventRepo) ListByCommittees(dbc dbctx.Context, labels []string, limit int) ([]*parliament.AgendaEvent, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	q := dbc.DB(r.db).
		Omit("raw_data").
		Where("committee IN ?", labels).
		Order("start_date DESC").
		Order("start_time DESC").
		Order("event_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*parliament.AgendaEvent
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
