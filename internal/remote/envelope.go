package remote

import "encoding/json"

// Envelope is the outer {statusCode, body} structure wrapping every remote
// function response. Body is resolved once, at the client boundary, into
// either the success payload or an ErrorBody.
type Envelope struct {
	// StatusCode is kept raw: any JSON number equal to 200 is a success, and
	// a missing or non-numeric value is a failure still classified by body.
	StatusCode json.RawMessage `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// Code returns the numeric status code, or false when it is missing or not
// a JSON number.
func (e Envelope) Code() (float64, bool) {
	if !present(e.StatusCode) {
		return 0, false
	}
	var code float64
	if err := json.Unmarshal(e.StatusCode, &code); err != nil {
		return 0, false
	}
	return code, true
}

// OK reports whether the remote function signalled success.
func (e Envelope) OK() bool {
	code, ok := e.Code()
	return ok && code == 200
}

// hasBody is false for a missing or null body.
func (e Envelope) hasBody() bool {
	return present(e.Body)
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// ErrorBody is the body of a failed envelope. Received is an opaque
// diagnostic blob echoed by the remote function; it is logged, never
// interpreted.
type ErrorBody struct {
	Error    string          `json:"error"`
	Received json.RawMessage `json:"received,omitempty"`
}
