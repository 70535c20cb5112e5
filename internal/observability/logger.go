package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It discards everything until InitLogger
// runs, so packages may log from tests without setup.
var Logger = zap.NewNop()

// InitLogger installs a production JSON logger at the given level
// ("debug", "info", "warn", "error").
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger

	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns Logger enriched with the trace of the active span
// in ctx. See TraceLogger.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	return TraceLogger(ctx, Logger)
}

// TraceLogger returns a child of base carrying trace_id and span_id from the
// active OTel span in ctx, or base itself when ctx has no valid span.
//
// ctx is also attached as zap.Any("context", ctx). The otelzap bridge picks
// up any field whose value implements context.Context and emits the record
// with it, so exported OTLP log records carry the native TraceID/SpanID that
// Loki needs to link a log line to its Tempo trace. The plain string fields
// keep stdout JSON greppable.
func TraceLogger(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = Logger
	}

	span := trace.SpanContextFromContext(ctx)
	if !span.IsValid() {
		return base
	}

	return base.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
