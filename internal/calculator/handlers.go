package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "go-chi-remote-calc/internal/errors"
	"go-chi-remote-calc/internal/handlers"
	"go-chi-remote-calc/internal/observability"
	"go-chi-remote-calc/internal/remote"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler exposes the calculation service over HTTP.
type Handler struct {
	svc *Service
	// remoteTimeout bounds each remote call; zero leaves it unbounded.
	remoteTimeout time.Duration
}

func NewHandler(svc *Service, remoteTimeout time.Duration) *Handler {
	return &Handler{svc: svc, remoteTimeout: remoteTimeout}
}

// Pricing handles POST /calculator/pricing
func (h *Handler) Pricing(w http.ResponseWriter, r *http.Request) {
	handleRemoteOp(w, r, OpPricing, h.remoteTimeout, h.svc.PriceTicket)
}

// Sum handles POST /calculator/sum
func (h *Handler) Sum(w http.ResponseWriter, r *http.Request) {
	handleRemoteOp(w, r, OpSum, h.remoteTimeout, h.svc.Sum)
}

// handleRemoteOp is the shared implementation for both calculator operations:
// decode raw input, run the validated remote call, record span, metrics and
// logs, and write the {"data"} or {"error"} result.
func handleRemoteOp[In, Out any](w http.ResponseWriter, r *http.Request, opName string, timeout time.Duration, run func(context.Context, In) remote.Result[Out]) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var in In
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		observability.RecordError(ctx, span, logger, inst.failed, opName,
			apperrors.Wrap(apperrors.KindInvalidType, err, "invalid request body"), w)
		return
	}

	// A client that goes away does not abort the remote call; only the
	// configured deadline does.
	callCtx := context.WithoutCancel(ctx)
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, timeout)
		defer cancel()
	}

	start := time.Now()
	result := run(callCtx, in)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	inst.duration.Record(ctx, elapsed, attrs)

	if !result.OK() {
		observability.RecordError(ctx, span, logger, inst.failed, opName, result.Err(), w)
		return
	}

	inst.completed.Add(ctx, 1, attrs)

	span.AddEvent("calculation.complete", trace.WithAttributes(
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, result)
}
