package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

const headerCache = "X-Cache"

// ResponseStore is the byte cache behind cached GET responses.
type ResponseStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheResponses serves GET requests from store keyed by the request URI and
// stores successful JSON responses for ttl. Store failures fall through to
// the handler.
func CacheResponses(store ResponseStore, ttl time.Duration, log *logger.Logger) gin.HandlerFunc {
	if store == nil || ttl <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := "api:" + c.Request.URL.RequestURI()
		ctx := c.Request.Context()
		if body, ok, err := store.Get(ctx, key); err == nil && ok {
			c.Header(headerCache, "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		} else if err != nil && log != nil {
			log.Warn("Response cache read failed", "key", key, "error", err)
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Header(headerCache, "MISS")
		c.Next()

		if w.Status() != http.StatusOK || w.body.Len() == 0 {
			return
		}
		if err := store.Set(ctx, key, w.body.Bytes(), ttl); err != nil && log != nil {
			log.Warn("Response cache write failed", "key", key, "error", err)
		}
	}
}
