package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/viriato-backend/internal/platform/ctxutil"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// Route parameters and filters worth a field of their own in the access log.
var (
	loggedParams  = []string{"event_id", "ini_id", "org_id"}
	loggedFilters = []string{"type", "legislature", "command"}
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"cache", c.Writer.Header().Get(headerCache),
			"client_ip", c.ClientIP(),
		}
		fields = append(fields, requestFields(c)...)
		fields = append(fields, ctxutil.GetTraceData(c.Request.Context()).Fields()...)
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

func requestFields(c *gin.Context) []interface{} {
	var kv []interface{}
	for _, name := range loggedParams {
		if v := strings.TrimSpace(c.Param(name)); v != "" {
			kv = append(kv, name, v)
		}
	}
	for _, name := range loggedFilters {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			kv = append(kv, name, v)
		}
	}
	return kv
}
