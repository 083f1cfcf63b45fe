package client

import (
	"context"
	"log/slog"
)

// CallEvent records metadata about a single client operation.
type CallEvent struct {
	Operation string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
	// Fallback is set when mock data was returned in place of a failure.
	Fallback bool
}

// Observer receives events about client calls for logging and metrics.
type Observer interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

// LogObserver writes call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"operation", event.Operation,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
		"success", event.Success,
	}
	if !event.Success {
		attrs = append(attrs, "error_code", event.ErrorCode, "fallback", event.Fallback)
		o.logger.WarnContext(ctx, "api_call", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "api_call", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}
