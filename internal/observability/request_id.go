package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

func NewRequestID() string {
	return uuid.New().String()
}

// requestIDOrNew keeps an inbound id only when it is a well-formed UUID.
func requestIDOrNew(inbound string) string {
	if inbound == "" {
		return NewRequestID()
	}
	parsed, err := uuid.Parse(inbound)
	if err != nil {
		return NewRequestID()
	}
	return parsed.String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
