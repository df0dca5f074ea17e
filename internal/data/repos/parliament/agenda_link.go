package parliament

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// LinkedIniciativa is an agenda link joined with the initiative it points to.
type LinkedIniciativa struct {
	parliament.AgendaInitiativeLink `gorm:"embedded"`
	IniID                           string `gorm:"column:ini_id" json:"ini_id"`
	IniTitle                        string `gorm:"column:ini_title" json:"ini_title"`
	IniType                         string `gorm:"column:ini_type" json:"ini_type"`
	CurrentStatus                   string `gorm:"column:current_status" json:"current_status"`
}

// LinkEvidence is a stored link joined with the agenda text it was derived from.
type LinkEvidence struct {
	LinkID         uint    `gorm:"column:link_id"`
	EventID        int64   `gorm:"column:event_id"`
	IniID          string  `gorm:"column:ini_id"`
	LinkType       string  `gorm:"column:link_type"`
	LinkConfidence float64 `gorm:"column:link_confidence"`
	ExtractedText  string  `gorm:"column:extracted_text"`
	Description    string  `gorm:"column:description"`
}

type AgendaLinkRepo interface {
	Upsert(dbc dbctx.Context, row *parliament.AgendaInitiativeLink) error
	PruneStale(dbc dbctx.Context, agendaEventID uint, keepIniciativaIDs []uint) (int64, error)
	ListForEvent(dbc dbctx.Context, agendaEventID uint) ([]LinkedIniciativa, error)
	ListEvidence(dbc dbctx.Context) ([]LinkEvidence, error)
	CountByType(dbc dbctx.Context) ([]GroupCount, error)
}

type agendaLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgendaLinkRepo(db *gorm.DB, baseLog *logger.Logger) AgendaLinkRepo {
	return &agendaLinkRepo{db: db, log: baseLog.With("repo", "AgendaLinkRepo")}
}

func (r *agendaLinkRepo) Upsert(dbc dbctx.Context, row *parliament.AgendaInitiativeLink) error {
	row.ID = 0
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "agenda_event_id"}, {Name: "iniciativa_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"link_type", "link_confidence", "extracted_text", "updated_at"}),
	}).Create(row).Error
}

// PruneStale removes links of the event whose initiative is no longer linked.
func (r *agendaLinkRepo) PruneStale(dbc dbctx.Context, agendaEventID uint, keepIniciativaIDs []uint) (int64, error) {
	q := dbc.DB(r.db).Where("agenda_event_id = ?", agendaEventID)
	if len(keepIniciativaIDs) > 0 {
		q = q.Where("iniciativa_id NOT IN ?", keepIniciativaIDs)
	}
	res := q.Delete(&parliament.AgendaInitiativeLink{})
	return res.RowsAffected, res.Error
}

func (r *agendaLinkRepo) ListForEvent(dbc dbctx.Context, agendaEventID uint) ([]LinkedIniciativa, error) {
	var out []LinkedIniciativa
	err := dbc.DB(r.db).
		Table("agenda_initiative_links AS l").
		Select("l.*, i.ini_id AS ini_id, i.title AS ini_title, i.type_description AS ini_type, i.current_status AS current_status").
		Joins("JOIN iniciativas i ON i.id = l.iniciativa_id").
		Where("l.agenda_event_id = ?", agendaEventID).
		Order("l.link_confidence DESC, i.ini_id ASC").
		Scan(&out).Error
	return out, err
}

func (r *agendaLinkRepo) ListEvidence(dbc dbctx.Context) ([]LinkEvidence, error) {
	var out []LinkEvidence
	err := dbc.DB(r.db).
		Table("agenda_initiative_links AS l").
		Select("l.id AS link_id, a.event_id AS event_id, i.ini_id AS ini_id, l.link_type, l.link_confidence, l.extracted_text, a.description AS description").
		Joins("JOIN agenda_events a ON a.id = l.agenda_event_id").
		Joins("JOIN iniciativas i ON i.id = l.iniciativa_id").
		Order("l.id ASC").
		Scan(&out).Error
	return out, err
}

func (r *agendaLinkRepo) CountByType(dbc dbctx.Context) ([]GroupCount, error) {
	var out []GroupCount
	err := dbc.DB(r.db).Model(&parliament.AgendaInitiativeLink{}).
		Select("link_type AS label, COUNT(*) AS n").
		Group("link_type").
		Order("label ASC").
		Scan(&out).Error
	return out, err
}
