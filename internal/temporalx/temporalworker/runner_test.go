package temporalworker

import (
	"context"
	"testing"

	"github.com/yungbote/viriato-backend/internal/platform/logger"
	"github.com/yungbote/viriato-backend/internal/temporalx"
	"github.com/yungbote/viriato-backend/internal/temporalx/syncrun"
)

func TestNewRunnerRequiresClient(t *testing.T) {
	if _, err := NewRunner(logger.Nop(), nil, temporalx.Config{}, nil); err == nil {
		t.Fatalf("want error without client")
	}
	if _, err := Trigger(context.Background(), nil, temporalx.Config{}, syncrun.Input{}); err == nil {
		t.Fatalf("Trigger: want error without client")
	}
}
