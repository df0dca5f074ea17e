package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/viriato-backend/internal/http/handlers"
	httpMW "github.com/yungbote/viriato-backend/internal/http/middleware"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string

	CORSOrigins []string
	RateLimiter *httpMW.RateLimiter
	Cache       httpMW.ResponseStore
	CacheTTL    time.Duration

	HealthHandler     *httpH.HealthHandler
	ParliamentHandler *httpH.ParliamentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	api.Use(httpMW.RateLimit(cfg.RateLimiter))
	api.Use(httpMW.CacheResponses(cfg.Cache, cfg.CacheTTL, cfg.Log))
	if h := cfg.ParliamentHandler; h != nil {
		api.GET("/agenda/:event_id/initiatives", h.GetAgendaInitiatives)
		api.GET("/iniciativas/:ini_id/comissoes", h.GetIniciativaComissoes)

		api.GET("/orgaos", h.ListOrgaos)
		api.GET("/orgaos/summary", h.GetOrgaoSummary)
		api.GET("/orgaos/:org_id", h.GetOrgao)

		api.GET("/deputados", h.ListDeputados)
		api.GET("/runs/latest", h.GetLatestRun)
	}
	return r
}
