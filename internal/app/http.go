package app

import (
	"context"
	"fmt"

	apphttp "github.com/yungbote/viriato-backend/internal/http"
	httpH "github.com/yungbote/viriato-backend/internal/http/handlers"
	httpMW "github.com/yungbote/viriato-backend/internal/http/middleware"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/query"
	"github.com/yungbote/viriato-backend/internal/platform/envutil"
)

func (a *App) NewServer() (*apphttp.Server, error) {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	cfg := apphttp.RouterConfig{
		Log:               a.Log,
		CORSOrigins:       a.Cfg.CORSOrigins,
		RateLimiter:       httpMW.NewRateLimiter(a.Cfg.RatePerSec, a.Cfg.RateBurst, a.Cfg.RateIdleTTL),
		CacheTTL:          a.Cfg.CacheTTL,
		HealthHandler:     httpH.NewHealthHandler(sqlDB),
		ParliamentHandler: httpH.NewParliamentHandler(a.Log, query.NewService(a.Log, a.Repos)),
	}
	if envutil.Bool("OTEL_ENABLED", false) {
		cfg.ServiceName = envutil.String("OTEL_SERVICE_NAME", "viriato") + "-api"
	}
	if cache := a.wireCache(); cache != nil {
		cfg.Cache = cache
	}
	return apphttp.NewServer(cfg), nil
}

// Serve runs the read API until ctx is canceled.
func (a *App) Serve(ctx context.Context) error {
	srv, err := a.NewServer()
	if err != nil {
		return err
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Serving read API", "addr", addr)
	return srv.Run(ctx, addr)
}
