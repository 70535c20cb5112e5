package calculator

import (
	"context"
	"testing"

	apperrors "go-chi-remote-calc/internal/errors"
	"go-chi-remote-calc/internal/remote"
	"go-chi-remote-calc/internal/testutil"
)

// pricingStub answers like the deployed pricing function for the
// 100 / 1.5 / 15 example.
func pricingStub(t *testing.T) *testutil.StubFunction {
	t.Helper()
	return testutil.NewStubFunction(t, func(req testutil.RecordedRequest) any {
		var in PricingRequest
		req.Decode(t, &in)
		return map[string]any{
			"statusCode": 200,
			"body": PricingResponse{
				BasePrice:        in.BasePrice,
				Demand:           in.Demand,
				DaysUntilEvent:   in.DaysUntilEvent,
				DemandMultiplier: "1.50",
				TimeMultiplier:   "1.00",
				FinalPrice:       "150.00",
				PriceIncrease:    "50.00",
			},
		}
	})
}

func sumStub(t *testing.T) *testutil.StubFunction {
	t.Helper()
	return testutil.NewStubFunction(t, func(req testutil.RecordedRequest) any {
		var in SumRequest
		req.Decode(t, &in)
		return map[string]any{
			"statusCode": 200,
			"body":       SumResponse{Num1: in.Num1, Num2: in.Num2, Sum: in.Num1 + in.Num2, Operation: "addition"},
		}
	})
}

func TestPriceTicketEndToEnd(t *testing.T) {
	stub := pricingStub(t)
	svc := NewService(remote.NewClient(), stub.URL, testutil.ClosedURL(t))

	result := svc.PriceTicket(context.Background(), PricingInput{BasePrice: "100", Demand: "1.5", DaysUntilEvent: "15"})

	if !result.OK() {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.Data.FinalPrice != "150.00" {
		t.Fatalf("expected final price 150.00, got %q", result.Data.FinalPrice)
	}

	var sent map[string]any
	stub.Requests()[0].Decode(t, &sent)
	if sent["basePrice"] != float64(100) || sent["demand"] != 1.5 || sent["daysUntilEvent"] != float64(15) {
		t.Fatalf("expected numeric request fields, got %#v", sent)
	}
}

func TestSumIsIdempotent(t *testing.T) {
	stub := sumStub(t)
	svc := NewService(remote.NewClient(), testutil.ClosedURL(t), stub.URL)

	first := svc.Sum(context.Background(), SumInput{Num1: 2, Num2: 3})
	second := svc.Sum(context.Background(), SumInput{Num1: 2, Num2: 3})

	if !first.OK() || !second.OK() {
		t.Fatalf("expected both calls to succeed, got %q and %q", first.Error, second.Error)
	}
	if *first.Data != *second.Data || first.Data.Sum != 5 {
		t.Fatalf("expected identical sums of 5, got %+v and %+v", *first.Data, *second.Data)
	}
}

func TestServiceRemoteFailures(t *testing.T) {
	tests := []struct {
		name    string
		respond testutil.Responder
		kind    apperrors.Kind
		message string
	}{
		{
			name:    "business error",
			respond: testutil.Envelope(400, map[string]any{"error": "bad input"}),
			kind:    apperrors.KindRemoteBusiness,
			message: "bad input",
		},
		{
			name:    "error without message",
			respond: testutil.Envelope(500, map[string]any{}),
			kind:    apperrors.KindRemoteUnknown,
			message: "An unknown error occurred.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := testutil.NewStubFunction(t, tc.respond)
			svc := NewService(remote.NewClient(), stub.URL, stub.URL)

			result := svc.PriceTicket(context.Background(), PricingInput{BasePrice: 100, Demand: 1.5, DaysUntilEvent: 15})

			if result.OK() {
				t.Fatal("expected failure")
			}
			if result.Error != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, result.Error)
			}
			if result.Kind() != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, result.Kind())
			}
		})
	}
}

func TestPriceTicketConnectionRefused(t *testing.T) {
	svc := NewService(remote.NewClient(), testutil.ClosedURL(t), testutil.ClosedURL(t))

	result := svc.PriceTicket(context.Background(), PricingInput{BasePrice: 100, Demand: 1.5, DaysUntilEvent: 15})

	want := "Failed to connect to the pricing service. Please try again later."
	if result.Error != want {
		t.Fatalf("expected %q, got %q", want, result.Error)
	}
	if result.Kind() != apperrors.KindConnectivity {
		t.Fatalf("expected CONNECTIVITY_ERROR, got %s", result.Kind())
	}
}

func TestValidationFailureSkipsRemoteCall(t *testing.T) {
	stub := pricingStub(t)
	svc := NewService(remote.NewClient(), stub.URL, stub.URL)

	pricing := svc.PriceTicket(context.Background(), PricingInput{BasePrice: 0, Demand: 1, DaysUntilEvent: 1})
	if pricing.OK() || pricing.Error != MsgBasePricePositive {
		t.Fatalf("expected base price error, got %+v", pricing)
	}
	if pricing.Kind() != apperrors.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %s", pricing.Kind())
	}

	sum := svc.Sum(context.Background(), SumInput{Num1: "abc", Num2: 1})
	if sum.OK() || sum.Kind() != apperrors.KindInvalidType {
		t.Fatalf("expected INVALID_TYPE, got %+v", sum)
	}

	if stub.Calls() != 0 {
		t.Fatalf("expected no remote calls, got %d", stub.Calls())
	}
}
