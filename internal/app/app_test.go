package app

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("RAW_SOURCE", "S3")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.pt ,,https://b.pt")
	t.Setenv("CACHE_TTL_SECONDS", "-5")
	t.Setenv("API_RATE_PER_SECOND", "2.5")
	t.Setenv("DB_DRIVER", "SQLite")

	cfg := LoadConfig(nil)
	if cfg.RawSource != SourceLocal {
		t.Fatalf("raw source: want=%q got=%q", SourceLocal, cfg.RawSource)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.pt" {
		t.Fatalf("cors: got=%v", cfg.CORSOrigins)
	}
	if cfg.CacheTTL != 0 {
		t.Fatalf("cache ttl: want=0 got=%v", cfg.CacheTTL)
	}
	if cfg.RatePerSec != 2.5 || cfg.RateBurst != 20 || cfg.RateIdleTTL != 10*time.Minute {
		t.Fatalf("rate: got=%v/%d/%v", cfg.RatePerSec, cfg.RateBurst, cfg.RateIdleTTL)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Fatalf("db driver: want=sqlite got=%q", cfg.DB.Driver)
	}
}
