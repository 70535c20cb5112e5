package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is one request received by a StubFunction.
type RecordedRequest struct {
	Method string
	Header http.Header
	Body   []byte
}

// Decode unmarshals the recorded body into dst.
func (r RecordedRequest) Decode(t testing.TB, dst any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, dst); err != nil {
		t.Fatalf("decoding recorded body %q: %v", r.Body, err)
	}
}

// Responder builds the reply for a request. A []byte or string reply is
// written verbatim; anything else is JSON encoded.
type Responder func(RecordedRequest) any

// Envelope replies with a fixed {statusCode, body} envelope.
func Envelope(statusCode int, body any) Responder {
	return func(RecordedRequest) any {
		return map[string]any{"statusCode": statusCode, "body": body}
	}
}

// Raw replies with a fixed, possibly malformed, body.
func Raw(body string) Responder {
	return func(RecordedRequest) any {
		return body
	}
}

// StubFunction stands in for a remote calculation function. It records
// every request and answers with its Responder.
type StubFunction struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewStubFunction starts a stub that is closed when the test ends.
func NewStubFunction(t testing.TB, respond Responder) *StubFunction {
	t.Helper()

	stub := &StubFunction{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec := RecordedRequest{Method: r.Method, Header: r.Header.Clone(), Body: body}

		stub.mu.Lock()
		stub.requests = append(stub.requests, rec)
		stub.mu.Unlock()

		reply := respond(rec)
		w.Header().Set("Content-Type", "application/json")
		switch v := reply.(type) {
		case []byte:
			_, _ = w.Write(v)
		case string:
			_, _ = io.WriteString(w, v)
		default:
			_ = json.NewEncoder(w).Encode(v)
		}
	}))
	t.Cleanup(stub.Close)

	return stub
}

// Requests returns a copy of the requests received so far.
func (s *StubFunction) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *StubFunction) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// ClosedURL returns the URL of a server that has already been shut down, so
// connections to it are refused.
func ClosedURL(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
