package remote

import (
	"encoding/json"

	apperrors "go-chi-remote-calc/internal/errors"
)

// Result is what a caller receives: exactly one of Data or Error is set.
// Build it with Success or Failure. Any other value, including the zero
// Result, is a connectivity failure and encodes as {"error": ...}.
type Result[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`

	err *apperrors.Error
}

func Success[T any](data T) Result[T] {
	return Result[T]{Data: &data}
}

// Failure turns err into an error result. A nil err still yields a failure.
func Failure[T any](err *apperrors.Error) Result[T] {
	if err == nil {
		err = apperrors.New(apperrors.KindConnectivity, "")
	}
	return Result[T]{Error: err.Message(), err: err}
}

func (r Result[T]) OK() bool {
	return r.Data != nil && r.Error == ""
}

// Err returns the typed failure, or nil for a success.
func (r Result[T]) Err() *apperrors.Error {
	if r.OK() {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return apperrors.New(apperrors.KindConnectivity, r.Error)
}

// Kind returns the failure kind, or "" for a success.
func (r Result[T]) Kind() apperrors.Kind {
	if r.OK() {
		return ""
	}
	return r.Err().Kind()
}

// MarshalJSON writes exactly one of "data" or "error".
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.OK() {
		return json.Marshal(struct {
			Data *T `json:"data"`
		}{Data: r.Data})
	}
	return json.Marshal(struct {
		Error string `json:"error"`
	}{Error: r.Err().Message()})
}
