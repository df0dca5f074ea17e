package app

import (
	"strings"
	"time"

	"github.com/yungbote/viriato-backend/internal/data/db"
	"github.com/yungbote/viriato-backend/internal/platform/envutil"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

const (
	SourceLocal = "local"
	SourceGCS   = "gcs"
)

type Config struct {
	LogMode string
	Port    string
	DB      db.Config

	// RawSource picks where raw exports are read from: DataDir or the GCS bucket.
	RawSource      string
	DataDir        string
	PipelineConfig string

	CacheTTL    time.Duration
	RatePerSec  float64
	RateBurst   int
	RateIdleTTL time.Duration
	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		LogMode:        envutil.String("LOG_MODE", "development"),
		Port:           envutil.String("PORT", "8080"),
		DB:             db.ConfigFromEnv(),
		RawSource:      strings.ToLower(envutil.String("RAW_SOURCE", SourceLocal)),
		DataDir:        envutil.String("DATA_DIR", "data/raw"),
		PipelineConfig: envutil.String("PIPELINE_CONFIG", ""),
		CacheTTL:       envutil.Seconds("CACHE_TTL_SECONDS", 300),
		RatePerSec:     envutil.Float("API_RATE_PER_SECOND", 10),
		RateBurst:      envutil.Int("API_RATE_BURST", 20),
		RateIdleTTL:    envutil.Seconds("API_RATE_IDLE_SECONDS", 600),
		CORSOrigins:    splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),
	}
	if cfg.RawSource != SourceLocal && cfg.RawSource != SourceGCS {
		if log != nil {
			log.Warn("Unknown RAW_SOURCE; falling back to local", "raw_source", cfg.RawSource)
		}
		cfg.RawSource = SourceLocal
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
