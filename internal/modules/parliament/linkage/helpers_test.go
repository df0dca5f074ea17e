package linkage

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/viriato-backend/internal/ingestion/source"
)

func mustIniciativa(tb testing.TB, raw string) *source.Iniciativa {
	tb.Helper()
	inis, stats, err := source.DecodeIniciativas(strings.NewReader("[" + raw + "]"))
	if err != nil {
		tb.Fatalf("decode: %v", err)
	}
	if stats.Malformed != 0 || len(inis) != 1 {
		tb.Fatalf("decode: want 1 record got=%d malformed=%d", len(inis), stats.Malformed)
	}
	return &inis[0]
}

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}
