package ctxutil

import "context"

type traceDataKey struct{}

// TraceData correlates log lines of one API request or one pipeline run.
type TraceData struct {
	TraceID   string
	RequestID string
	RunID     string
	Command   string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	val := ctx.Value(traceDataKey{})
	if td, ok := val.(*TraceData); ok {
		return td
	}
	return nil
}

// Fields returns the non-empty identifiers as logger key/value pairs.
func (td *TraceData) Fields() []interface{} {
	if td == nil {
		return nil
	}
	var kv []interface{}
	for _, f := range [...]struct{ key, val string }{
		{"trace_id", td.TraceID},
		{"request_id", td.RequestID},
		{"run_id", td.RunID},
		{"command", td.Command},
	} {
		if f.val != "" {
			kv = append(kv, f.key, f.val)
		}
	}
	return kv
}
