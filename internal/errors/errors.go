package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure a calculation can end in.
type Kind string

const (
	KindInvalidType    Kind = "INVALID_TYPE"
	KindValidation     Kind = "VALIDATION_ERROR"
	KindRemoteBusiness Kind = "REMOTE_BUSINESS_ERROR"
	KindRemoteUnknown  Kind = "REMOTE_UNKNOWN_ERROR"
	KindConnectivity   Kind = "CONNECTIVITY_ERROR"
)

type Metadata struct {
	HTTPStatus    int
	PublicMessage string
	// Remote is true when the failure was observed after the request left the process.
	Remote bool
}

var metadataByKind = map[Kind]Metadata{
	KindInvalidType: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "Must be a valid number",
	},
	KindValidation: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "validation failed",
	},
	KindRemoteBusiness: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		PublicMessage: "Calculation failed",
		Remote:        true,
	},
	KindRemoteUnknown: {
		HTTPStatus:    http.StatusBadGateway,
		PublicMessage: "An unknown error occurred.",
		Remote:        true,
	},
	KindConnectivity: {
		HTTPStatus:    http.StatusServiceUnavailable,
		PublicMessage: "Failed to connect to the service. Please try again later.",
		Remote:        true,
	},
}

// MetadataFor returns the metadata for kind, falling back to connectivity
// for unknown kinds.
func MetadataFor(kind Kind) Metadata {
	if meta, ok := metadataByKind[kind]; ok {
		return meta
	}
	return metadataByKind[KindConnectivity]
}

type Error struct {
	kind    Kind
	message string
	details any
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	if err == nil {
		return New(kind, message)
	}
	return &Error{kind: kind, message: message, cause: err}
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindConnectivity
	}
	return e.kind
}

// Message is the caller-facing text. It never includes the cause.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	if e.message == "" {
		return MetadataFor(e.kind).PublicMessage
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.Message(), e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.Message())
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// KindOf reports the kind of err, or "" when err carries no *Error.
func KindOf(err error) Kind {
	if typed := As(err); typed != nil {
		return typed.Kind()
	}
	return ""
}
