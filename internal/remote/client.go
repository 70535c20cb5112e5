package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apperrors "go-chi-remote-calc/internal/errors"
	"go-chi-remote-calc/internal/observability"
)

const (
	// DefaultUnknownError is reported for a failed envelope without a message.
	DefaultUnknownError = "An unknown error occurred."

	maxResponseBytes int64 = 1 << 20
)

var tracer = otel.Tracer("remote")

// Endpoint is one remote calculation function.
type Endpoint struct {
	// Name labels logs, spans and metrics, and fills the connectivity message.
	Name string
	URL  string

	UnknownError      string
	ConnectivityError string
}

// NewEndpoint returns an endpoint with the default failure messages.
func NewEndpoint(name, url string) Endpoint {
	return Endpoint{
		Name:              name,
		URL:               url,
		UnknownError:      DefaultUnknownError,
		ConnectivityError: fmt.Sprintf("Failed to connect to the %s service. Please try again later.", name),
	}
}

func (e Endpoint) unknownMessage() string {
	if e.UnknownError == "" {
		return DefaultUnknownError
	}
	return e.UnknownError
}

func (e Endpoint) connectivityMessage() string {
	if e.ConnectivityError == "" {
		return apperrors.MetadataFor(apperrors.KindConnectivity).PublicMessage
	}
	return e.ConnectivityError
}

// Client posts validated records to remote calculation functions. It holds
// no per-call state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *Metrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient builds a client. The default HTTP client propagates trace
// context and sets no timeout; callers bound a call through ctx.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// Call sends req to ep and classifies the reply. It never returns a Go error:
// transport failures, remote failures and malformed replies all become a
// failed Result. Nothing is retried.
func Call[Req, Resp any](ctx context.Context, c *Client, ep Endpoint, req Req) Result[Resp] {
	if c == nil {
		return Failure[Resp](apperrors.New(apperrors.KindConnectivity, ep.connectivityMessage()))
	}

	ctx, span := tracer.Start(ctx, "remote."+ep.Name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("remote.endpoint", ep.Name),
			attribute.String("url.full", ep.URL),
		),
	)
	defer span.End()

	logger := observability.TraceLogger(ctx, c.logger)

	start := time.Now()
	var out Resp
	callErr := c.do(ctx, ep, req, &out)
	elapsed := time.Since(start)

	if callErr != nil {
		c.metrics.Observe(ep.Name, string(callErr.Kind()), elapsed)

		span.RecordError(callErr)
		span.SetAttributes(attribute.String("remote.outcome", string(callErr.Kind())))
		span.SetStatus(codes.Error, callErr.Message())

		logger.Warn("remote call failed",
			zap.String("endpoint", ep.Name),
			zap.String("kind", string(callErr.Kind())),
			zap.Error(callErr),
			zap.Any("details", callErr.Details()),
			zap.Duration("duration", elapsed),
		)
		return Failure[Resp](callErr)
	}

	c.metrics.Observe(ep.Name, outcomeSuccess, elapsed)
	span.SetAttributes(attribute.String("remote.outcome", outcomeSuccess))
	span.SetStatus(codes.Ok, "")

	logger.Info("remote call completed",
		zap.String("endpoint", ep.Name),
		zap.Duration("duration", elapsed),
	)
	return Success(out)
}

func (c *Client) do(ctx context.Context, ep Endpoint, req, out any) *apperrors.Error {
	connectivity := func(step string, err error) *apperrors.Error {
		return apperrors.Wrap(apperrors.KindConnectivity, fmt.Errorf("%s: %w", step, err), ep.connectivityMessage())
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return connectivity("encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(payload))
	if err != nil {
		return connectivity("build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	// Inputs differ per call; every call must reach the live function.
	httpReq.Header.Set("Cache-Control", "no-cache, no-store")
	httpReq.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return connectivity("execute request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return connectivity("read response", err)
	}
	if int64(len(raw)) > maxResponseBytes {
		return connectivity("read response", fmt.Errorf("body exceeds %d bytes", maxResponseBytes))
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return connectivity("decode envelope", err)
	}

	if !env.OK() {
		return remoteFailure(ep, env)
	}

	if !env.hasBody() {
		return connectivity("decode body", fmt.Errorf("envelope has no body"))
	}
	if err := json.Unmarshal(env.Body, out); err != nil {
		return connectivity("decode body", err)
	}
	return nil
}

// remoteFailure classifies a non-200 envelope. A body that is not an error
// object counts as carrying no message.
func remoteFailure(ep Endpoint, env Envelope) *apperrors.Error {
	var body ErrorBody
	if env.hasBody() {
		_ = json.Unmarshal(env.Body, &body)
	}

	details := map[string]any{}
	if code, ok := env.Code(); ok {
		details["statusCode"] = code
	} else if present(env.StatusCode) {
		details["statusCode"] = env.StatusCode
	}
	if len(body.Received) > 0 {
		details["received"] = body.Received
	}

	if body.Error != "" {
		return apperrors.New(apperrors.KindRemoteBusiness, body.Error).WithDetails(details)
	}
	return apperrors.New(apperrors.KindRemoteUnknown, ep.unknownMessage()).WithDetails(details)
}
