package calculator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PricingInput is raw ticket-pricing input, straight from user-editable
// fields. Each value may be a number or a numeric string.
type PricingInput struct {
	BasePrice      any `json:"basePrice"`
	Demand         any `json:"demand"`
	DaysUntilEvent any `json:"daysUntilEvent"`
}

// PricingRequest is validated pricing input as sent to the pricing function.
type PricingRequest struct {
	BasePrice      float64 `json:"basePrice" validate:"gt=0"`
	Demand         float64 `json:"demand" validate:"gte=0"`
	DaysUntilEvent int     `json:"daysUntilEvent" validate:"gte=0"`
}

// PricingResponse is the pricing function's success payload. The request
// fields are echoed; the derived figures arrive preformatted.
type PricingResponse struct {
	BasePrice        float64 `json:"basePrice"`
	Demand           float64 `json:"demand"`
	DaysUntilEvent   int     `json:"daysUntilEvent"`
	DemandMultiplier string  `json:"demandMultiplier"`
	TimeMultiplier   string  `json:"timeMultiplier"`
	FinalPrice       string  `json:"finalPrice"`
	PriceIncrease    string  `json:"priceIncrease"` // may carry a leading "-"
}

// FinalPriceAmount parses FinalPrice.
func (p PricingResponse) FinalPriceAmount() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(p.FinalPrice))
}

// PriceIncreaseAmount parses PriceIncrease, accepting an explicit "+".
func (p PricingResponse) PriceIncreaseAmount() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(p.PriceIncrease), "+"))
}

// SignedPriceIncrease renders PriceIncrease with a leading "+" unless it is
// already negative or signed.
func (p PricingResponse) SignedPriceIncrease() string {
	v := strings.TrimSpace(p.PriceIncrease)
	if strings.HasPrefix(v, "-") || strings.HasPrefix(v, "+") {
		return v
	}
	return "+" + v
}

// SumInput is raw sum input.
type SumInput struct {
	Num1 any `json:"num1"`
	Num2 any `json:"num2"`
}

// SumRequest is validated sum input.
type SumRequest struct {
	Num1 float64 `json:"num1"`
	Num2 float64 `json:"num2"`
}

// SumResponse is the sum function's success payload.
type SumResponse struct {
	Num1      float64 `json:"num1"`
	Num2      float64 `json:"num2"`
	Sum       float64 `json:"sum"`
	Operation string  `json:"operation"`
}
