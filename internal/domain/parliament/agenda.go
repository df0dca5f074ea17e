package parliament

import (
	"time"

	"gorm.io/datatypes"
)

// AgendaEvent is a calendar entry. Committee is free text, not a foreign key.
type AgendaEvent struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	EventID       int64          `gorm:"column:event_id;not null;uniqueIndex:idx_agenda_event_event_id" json:"event_id"`
	Legislature   string         `gorm:"column:legislature;index" json:"legislature"`
	Title         string         `gorm:"column:title" json:"title"`
	Subtitle      string         `gorm:"column:subtitle" json:"subtitle"`
	Section       string         `gorm:"column:section" json:"section"`
	Theme         string         `gorm:"column:theme" json:"theme"`
	Location      string         `gorm:"column:location" json:"location"`
	StartDate     *time.Time     `gorm:"column:start_date;type:date;index" json:"start_date"`
	StartTime     string         `gorm:"column:start_time" json:"start_time"`
	EndDate       *time.Time     `gorm:"column:end_date;type:date" json:"end_date"`
	EndTime       string         `gorm:"column:end_time" json:"end_time"`
	IsAllDay      bool           `gorm:"column:is_all_day;not null;default:false" json:"is_all_day"`
	Description   string         `gorm:"column:description" json:"description"`
	Committee     *string        `gorm:"column:committee;index" json:"committee"`
	MeetingNumber *int           `gorm:"column:meeting_number" json:"meeting_number"`
	SessionNumber *int           `gorm:"column:session_number" json:"session_number"`
	RawData       datatypes.JSON `gorm:"column:raw_data" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AgendaEvent) TableName() string { return "agenda_events" }

const (
	LinkTypeBIDDirect     = "bid_direct"
	LinkTypeCommitteeDate = "committee_date"
)

// AgendaInitiativeLink is unique per (agenda_event_id, iniciativa_id).
type AgendaInitiativeLink struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	AgendaEventID  uint    `gorm:"column:agenda_event_id;not null;uniqueIndex:idx_agenda_initiative_link_pair,priority:1" json:"agenda_event_id"`
	IniciativaID   uint    `gorm:"column:iniciativa_id;not null;uniqueIndex:idx_agenda_initiative_link_pair,priority:2;index" json:"iniciativa_id"`
	LinkType       string  `gorm:"column:link_type;not null;index" json:"link_type"`
	LinkConfidence float64 `gorm:"column:link_confidence;not null" json:"link_confidence"`
	ExtractedText  string  `gorm:"column:extracted_text" json:"extracted_text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AgendaInitiativeLink) TableName() string { return "agenda_initiative_links" }
