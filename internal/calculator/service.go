package calculator

import (
	"context"

	"go-chi-remote-calc/internal/remote"
)

const (
	OpPricing = "pricing"
	OpSum     = "sum"
)

// Service validates raw input and forwards it to the remote calculation
// functions. It keeps no state between calls.
type Service struct {
	client  *remote.Client
	pricing remote.Endpoint
	sum     remote.Endpoint
}

// NewService targets the pricing and sum functions at the given URLs.
func NewService(client *remote.Client, pricingURL, sumURL string) *Service {
	return &Service{
		client:  client,
		pricing: remote.NewEndpoint(OpPricing, pricingURL),
		sum:     remote.NewEndpoint(OpSum, sumURL),
	}
}

// PriceTicket validates in and, only if it is valid, asks the pricing
// function for a price.
func (s *Service) PriceTicket(ctx context.Context, in PricingInput) remote.Result[PricingResponse] {
	req, err := ValidatePricing(in)
	if err != nil {
		return remote.Failure[PricingResponse](toAppError(err))
	}
	return remote.Call[PricingRequest, PricingResponse](ctx, s.client, s.pricing, req)
}

// Sum validates in and, only if it is valid, asks the sum function to add
// the two numbers.
func (s *Service) Sum(ctx context.Context, in SumInput) remote.Result[SumResponse] {
	req, err := ValidateSum(in)
	if err != nil {
		return remote.Failure[SumResponse](toAppError(err))
	}
	return remote.Call[SumRequest, SumResponse](ctx, s.client, s.sum, req)
}
