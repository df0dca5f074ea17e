package steps

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type LoadIniciativasDeps struct {
	DB          *gorm.DB
	Log         *logger.Logger
	Source      source.BlobSource
	Iniciativas repos.IniciativaRepo
	Events      repos.IniciativaEventRepo
}

type LoadIniciativasInput struct {
	Files []SourceFile
	Tally *linkage.Tally
}

type LoadIniciativasOutput struct {
	FilesRead   int      `json:"files_read"`
	FilesFailed []string `json:"files_failed,omitempty"`
	Iniciativas int      `json:"iniciativas"`
	Events      int      `json:"events"`
}

// decodeIniciativaFiles decodes initiative exports and counts skipped array
// elements as malformed.
func decodeIniciativaFiles(ctx context.Context, src source.BlobSource, files []SourceFile, tally *linkage.Tally) []decodedFile[[]source.Iniciativa] {
	return decodeFiles(ctx, src, files, func(r io.Reader) ([]source.Iniciativa, error) {
		items, stats, err := source.DecodeIniciativas(r)
		tally.Malformed("iniciativa_record", stats.Malformed)
		return items, err
	})
}

// LoadIniciativas upserts initiatives by IniId and rewrites each one's events.
// The initiative row and its events share one savepoint.
func LoadIniciativas(ctx context.Context, deps LoadIniciativasDeps, in LoadIniciativasInput) (LoadIniciativasOutput, error) {
	out := LoadIniciativasOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Source == nil || deps.Iniciativas == nil || deps.Events == nil {
		return out, fmt.Errorf("load_iniciativas: missing deps")
	}
	log := deps.Log.With("step", "load_iniciativas")
	tally := in.Tally

	var items []*source.Iniciativa
	for _, d := range decodeIniciativaFiles(ctx, deps.Source, in.Files, tally) {
		if d.Err != nil {
			out.FilesFailed = append(out.FilesFailed, d.File.Name)
			log.Error("Initiative file unreadable", "file", d.File.Name, "error", d.Err)
			continue
		}
		out.FilesRead++
		for i := range d.Value {
			items = append(items, &d.Value[i])
		}
	}

	err := forEachBatch(ctx, deps.DB, len(items), defaultBatchSize, func(tx *gorm.DB, i int) {
		ini := items[i]
		row, err := linkage.BuildIniciativa(ini)
		if errors.Is(err, linkage.ErrMissingExternalID) {
			tally.Malformed("iniciativa_missing_id", 1)
			return
		}
		var events int
		if writeRow(ctx, tx, tally, log, "iniciativas", func(dbc dbctx.Context) error {
			saved, err := deps.Iniciativas.Upsert(dbc, row)
			if err != nil {
				return err
			}
			evs := linkage.BuildEvents(ini, saved.ID)
			if err := deps.Events.ReplaceForIniciativa(dbc, saved.ID, evs); err != nil {
				return fmt.Errorf("events: %w", err)
			}
			events = len(evs)
			return nil
		}) {
			out.Iniciativas++
			out.Events += events
			tally.Written("iniciativas", 1)
			tally.Written("iniciativa_events", events)
		}
	})
	if err != nil {
		return out, fmt.Errorf("load_iniciativas: %w", err)
	}
	log.Info("Initiatives loaded", "iniciativas", out.Iniciativas, "events", out.Events)
	return out, nil
}
