package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestRequestLoggerRecordsRouteParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, logs := observedLogger()
	r := gin.New()
	r.Use(AttachTraceContext())
	r.Use(RequestLogger(log))
	r.GET("/api/agenda/:event_id/initiatives", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	r.GET("/api/orgaos/:org_id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/agenda/9001/initiatives", nil)
	req.Header.Set(headerRequestID, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries: want=1 got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_id"] != "9001" {
		t.Fatalf("event_id: want=9001 got=%v", fields["event_id"])
	}
	if fields["route"] != "/api/agenda/:event_id/initiatives" {
		t.Fatalf("route: got=%v", fields["route"])
	}
	if fields["request_id"] != "req-42" {
		t.Fatalf("request_id: want=req-42 got=%v", fields["request_id"])
	}
	if _, ok := fields["ini_id"]; ok {
		t.Fatalf("ini_id: want absent got=%v", fields["ini_id"])
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orgaos/1200?type=comissao", nil))
	entries = logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries: want=2 got=%d", len(entries))
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("level: want=warn got=%v", entries[1].Level)
	}
	fields = entries[1].ContextMap()
	if fields["org_id"] != "1200" || fields["type"] != "comissao" {
		t.Fatalf("orgao fields: got=%v", fields)
	}
}

func TestAttachTraceContextPrefersTraceparent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerTraceParent, "00-4BF92F3577B34DA6A3CE929D0E0E4736-00f067aa0ba902b7-01")
	req.Header.Set(headerTraceID, "ignored")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(headerTraceID); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Fatalf("trace id: want=4bf92f3577b34da6a3ce929d0e0e4736 got=%q", got)
	}

	for _, bad := range []string{"", "00-xyz-00f067aa0ba902b7-01", "00-00000000000000000000000000000000-00f067aa0ba902b7-01"} {
		if got := traceIDFromParent(bad); got != "" {
			t.Fatalf("traceparent %q: want empty got=%q", bad, got)
		}
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerTraceID, "upstream-trace")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(headerTraceID); got != "upstream-trace" {
		t.Fatalf("fallback trace id: want=upstream-trace got=%q", got)
	}
}
