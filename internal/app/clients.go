package app

import (
	"context"
	"fmt"

	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/yungbote/viriato-backend/internal/clients/redis"
	"github.com/yungbote/viriato-backend/internal/data/graph"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/platform/envutil"
	"github.com/yungbote/viriato-backend/internal/platform/gcp"
	"github.com/yungbote/viriato-backend/internal/platform/neo4jdb"
	"github.com/yungbote/viriato-backend/internal/temporalx"
)

// wireSource opens the raw export source selected by RAW_SOURCE.
func (a *App) wireSource(ctx context.Context) (source.BlobSource, error) {
	if a.Cfg.RawSource != SourceGCS {
		a.Log.Info("Reading raw exports from directory", "dir", a.Cfg.DataDir)
		return source.NewDirSource(a.Cfg.DataDir), nil
	}
	bcfg := gcp.BucketConfigFromEnv()
	bucket, err := gcp.NewExportBucket(ctx, a.Log, bcfg)
	if err != nil {
		return nil, fmt.Errorf("init export bucket: %w", err)
	}
	a.onClose(func() error { return bucket.Close() })
	return source.NewBucketSource(bucket, bcfg.Name), nil
}

// wireGraph returns nil when NEO4J_URI is unset.
func (a *App) wireGraph() (*graph.LinkageWriter, error) {
	client, err := neo4jdb.NewFromEnv(a.Log)
	if err != nil {
		return nil, fmt.Errorf("init neo4j: %w", err)
	}
	if client == nil {
		return nil, nil
	}
	a.onClose(func() error { return client.Close(context.Background()) })
	return graph.NewLinkageWriter(client, a.Log), nil
}

// wireCache returns nil when REDIS_ADDR is unset. A configured but
// unreachable Redis is logged and the API runs uncached.
func (a *App) wireCache() redis.ResponseCache {
	if envutil.String("REDIS_ADDR", "") == "" {
		return nil
	}
	c, err := redis.NewResponseCache(a.Log)
	if err != nil {
		a.Log.Warn("Response cache disabled", "error", err)
		return nil
	}
	a.onClose(c.Close)
	return c
}

func (a *App) wireTemporal() (temporalsdkclient.Client, temporalx.Config, error) {
	cfg := temporalx.LoadConfig()
	tc, err := temporalx.NewClient(a.Log, cfg)
	if err != nil {
		return nil, cfg, err
	}
	if tc == nil {
		return nil, cfg, fmt.Errorf("TEMPORAL_ADDRESS is required")
	}
	a.onClose(func() error { tc.Close(); return nil })
	return tc, cfg, nil
}
