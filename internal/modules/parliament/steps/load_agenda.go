package steps

import (
	"context"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type LoadAgendaDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Source source.BlobSource
	Agenda repos.AgendaEventRepo
}

type LoadAgendaInput struct {
	Files []SourceFile
	Tally *linkage.Tally
}

type LoadAgendaOutput struct {
	FilesRead   int      `json:"files_read"`
	FilesFailed []string `json:"files_failed,omitempty"`
	Events      int      `json:"events"`
	Undated     int      `json:"undated"`
}

// LoadAgenda upserts calendar entries by their export id.
func LoadAgenda(ctx context.Context, deps LoadAgendaDeps, in LoadAgendaInput) (LoadAgendaOutput, error) {
	out := LoadAgendaOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Source == nil || deps.Agenda == nil {
		return out, fmt.Errorf("load_agenda: missing deps")
	}
	log := deps.Log.With("step", "load_agenda")
	tally := in.Tally

	var rows []*parliament.AgendaEvent
	for _, d := range decodeFiles(ctx, deps.Source, in.Files, func(r io.Reader) ([]source.AgendaEvent, error) {
		items, stats, err := source.DecodeAgenda(r)
		tally.Malformed("agenda_record", stats.Malformed)
		return items, err
	}) {
		if d.Err != nil {
			out.FilesFailed = append(out.FilesFailed, d.File.Name)
			log.Error("Agenda file unreadable", "file", d.File.Name, "error", d.Err)
			continue
		}
		out.FilesRead++
		for _, ev := range d.Value {
			row, ok := buildAgendaEvent(ev, d.File.Legislature, tally)
			if !ok {
				continue
			}
			if row.StartDate == nil {
				out.Undated++
			}
			rows = append(rows, row)
		}
	}

	err := forEachBatch(ctx, deps.DB, len(rows), defaultBatchSize, func(tx *gorm.DB, i int) {
		if writeRow(ctx, tx, tally, log, "agenda_events", func(dbc dbctx.Context) error {
			return deps.Agenda.Upsert(dbc, rows[i])
		}) {
			out.Events++
			tally.Written("agenda_events", 1)
		}
	})
	if err != nil {
		return out, fmt.Errorf("load_agenda: %w", err)
	}
	log.Info("Agenda loaded", "events", out.Events, "undated", out.Undated)
	return out, nil
}

func buildAgendaEvent(ev source.AgendaEvent, legislature string, tally *linkage.Tally) (*parliament.AgendaEvent, bool) {
	if ev.ID == 0 {
		tally.Malformed("agenda_missing_id", 1)
		return nil, false
	}
	return &parliament.AgendaEvent{
		EventID:       int64(ev.ID),
		Legislature:   legislatureOr(ev.LegDes, legislature),
		Title:         string(ev.Title),
		Subtitle:      string(ev.Subtitle),
		Section:       string(ev.Section),
		Theme:         string(ev.Theme),
		Location:      string(ev.Local),
		StartDate:     agendaDate(string(ev.EventStartDate)),
		StartTime:     string(ev.EventStartTime),
		EndDate:       agendaDate(string(ev.EventEndDate)),
		EndTime:       string(ev.EventEndTime),
		IsAllDay:      bool(ev.AllDayEvent),
		Description:   string(ev.InternetText),
		Committee:     optString(string(ev.OrgDes)),
		MeetingNumber: optInt(ev.ReuNumero),
		SessionNumber: optInt(ev.SelNumero),
		RawData:       rawJSON(ev.Raw),
	}, true
}

// agendaDate reads DD/MM/YYYY and falls back to ISO for older exports.
func agendaDate(s string) *time.Time {
	if t := source.ParseDMYDate(s); t != nil {
		return t
	}
	return source.ParseISODate(s)
}
