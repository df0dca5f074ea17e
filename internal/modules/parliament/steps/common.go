package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/db"
	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// SourceFile is one export file and the legislature it belongs to.
type SourceFile struct {
	Legislature string `yaml:"legislature" json:"legislature"`
	Name        string `yaml:"name" json:"name"`
}

const (
	defaultBatchSize   = 500
	defaultDecodeLimit = 4
)

type decodedFile[T any] struct {
	File  SourceFile
	Value T
	Err   error
}

// decodeFiles decodes every file concurrently and returns results in input
// order. A file that cannot be read or decoded carries its error and does not
// cancel the others.
func decodeFiles[T any](ctx context.Context, src source.BlobSource, files []SourceFile, decode func(io.Reader) (T, error)) []decodedFile[T] {
	out := make([]decodedFile[T], len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultDecodeLimit)
	for i, f := range files {
		i, f := i, f
		out[i].File = f
		g.Go(func() error {
			rc, err := src.Open(gctx, f.Name)
			if err != nil {
				out[i].Err = fmt.Errorf("open %s: %w", f.Name, err)
				return nil
			}
			defer rc.Close()
			v, err := decode(rc)
			if err != nil {
				out[i].Err = fmt.Errorf("decode %s: %w", f.Name, err)
				return nil
			}
			out[i].Value = v
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// forEachBatch walks n items in transactions of size rows. Per-row failures are
// handled inside fn with writeRow, so a batch only fails on commit errors.
func forEachBatch(ctx context.Context, conn *gorm.DB, n, size int, fn func(tx *gorm.DB, i int)) error {
	if size <= 0 {
		size = defaultBatchSize
	}
	for lo := 0; lo < n; lo += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		hi := lo + size
		if hi > n {
			hi = n
		}
		if err := db.Batch(conn.WithContext(ctx), func(tx *gorm.DB) error {
			for i := lo; i < hi; i++ {
				fn(tx, i)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeRow runs fn under a row savepoint and counts a failure as an insert
// error of table. It reports whether the row was written.
func writeRow(ctx context.Context, tx *gorm.DB, tally *linkage.Tally, log *logger.Logger, table string, fn func(dbc dbctx.Context) error) bool {
	kind, err := db.WithRowSavepoint(tx, func(sp *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: sp})
	})
	if err != nil {
		tally.InsertError(table+"."+kind, 1)
		log.Warn("Row write failed", "table", table, "kind", kind, "error", err)
		return false
	}
	return true
}

// LoadRefMaps rebuilds the reference maps from committed rows.
func LoadRefMaps(dbc dbctx.Context, inis repos.IniciativaRepo, orgs repos.OrgaoRepo) (*linkage.RefMaps, error) {
	var iniKeys []linkage.IniciativaKey
	if inis != nil {
		rows, err := inis.ListRefKeys(dbc)
		if err != nil {
			return nil, fmt.Errorf("load initiative keys: %w", err)
		}
		iniKeys = make([]linkage.IniciativaKey, 0, len(rows))
		for _, r := range rows {
			iniKeys = append(iniKeys, linkage.IniciativaKey{ID: r.ID, IniID: r.IniID})
		}
	}
	var orgKeys []linkage.OrgaoKey
	if orgs != nil {
		rows, err := orgs.ListRefKeys(dbc)
		if err != nil {
			return nil, fmt.Errorf("load orgao keys: %w", err)
		}
		orgKeys = make([]linkage.OrgaoKey, 0, len(rows))
		for _, r := range rows {
			orgKeys = append(orgKeys, linkage.OrgaoKey{ID: r.ID, OrgID: r.OrgID, Name: r.Name})
		}
	}
	return linkage.NewRefMaps(iniKeys, orgKeys), nil
}

func rawJSON(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	return datatypes.JSON(raw)
}

func mustJSON(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optInt(n source.Int) *int {
	if n == 0 {
		return nil
	}
	v := int(n)
	return &v
}

func legislatureOr(v source.Text, fallback string) string {
	if s := strings.TrimSpace(string(v)); s != "" {
		return s
	}
	return fallback
}
