package remote

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeOK(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: `{"statusCode":200}`, want: true},
		{raw: `{"statusCode":200.0}`, want: true},
		{raw: `{"statusCode":2e2}`, want: true},
		{raw: `{"statusCode":"200"}`, want: false},
		{raw: `{"statusCode":null}`, want: false},
		{raw: `{"statusCode":true}`, want: false},
		{raw: `{"statusCode":201}`, want: false},
		{raw: `{}`, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			var env Envelope
			if err := json.Unmarshal([]byte(tc.raw), &env); err != nil {
				t.Fatalf("decoding envelope: %v", err)
			}
			if got := env.OK(); got != tc.want {
				t.Fatalf("expected OK() %t, got %t", tc.want, got)
			}
		})
	}
}
