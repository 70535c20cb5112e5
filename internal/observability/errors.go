package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apperrors "go-chi-remote-calc/internal/errors"
	"go-chi-remote-calc/internal/handlers"
)

// RecordError centralises failure handling for calculator handlers: records
// err on the span, increments counter with the operation and kind, logs with
// trace context, and writes the {"error": ...} response with the status of
// err's kind.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName string, err *apperrors.Error, w http.ResponseWriter) {
	kind := string(err.Kind())
	msg := err.Message()

	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attribute.String("error.kind", kind))

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("kind", kind),
	))

	fields := []zap.Field{
		zap.String("operation", opName),
		zap.String("kind", kind),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	}
	if details := err.Details(); details != nil {
		fields = append(fields, zap.Any("details", details))
	}

	if apperrors.MetadataFor(err.Kind()).Remote {
		logger.Error(msg, fields...)
	} else {
		logger.Warn(msg, fields...)
	}

	handlers.WriteError(w, apperrors.MetadataFor(err.Kind()).HTTPStatus, msg)
}
