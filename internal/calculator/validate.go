package calculator

import (
	"errors"

	apperrors "go-chi-remote-calc/internal/errors"
	"go-chi-remote-calc/internal/validation"
)

const (
	MsgBasePricePositive  = "Base price must be greater than zero."
	MsgDemandNonNegative  = "Demand cannot be negative."
	MsgDaysNonNegativeInt = "Days must be a non-negative integer."
)

var pricingMessages = validation.Messages{
	"basePrice":      {"": MsgBasePricePositive},
	"demand":         {"": MsgDemandNonNegative},
	"daysUntilEvent": {"": MsgDaysNonNegativeInt},
}

// ValidatePricing coerces and checks raw pricing input. On failure the
// error is a validation.Errors listing every failing field.
func ValidatePricing(in PricingInput) (PricingRequest, error) {
	c := validation.NewCollector("basePrice", "demand", "daysUntilEvent")

	var req PricingRequest
	var err error

	if req.BasePrice, err = validation.Number(in.BasePrice); err != nil {
		c.AddErr("basePrice", err)
	}
	if req.Demand, err = validation.Number(in.Demand); err != nil {
		c.AddErr("demand", err)
	}
	if req.DaysUntilEvent, err = validation.Integer(in.DaysUntilEvent); err != nil {
		if errors.Is(err, validation.ErrNotInteger) {
			c.Add("daysUntilEvent", apperrors.KindValidation, MsgDaysNonNegativeInt)
		} else {
			c.AddErr("daysUntilEvent", err)
		}
	}

	c.Check(req, pricingMessages)

	if err := c.Err(); err != nil {
		return PricingRequest{}, err
	}
	return req, nil
}

// ValidateSum coerces raw sum input. Any finite number is accepted.
func ValidateSum(in SumInput) (SumRequest, error) {
	c := validation.NewCollector("num1", "num2")

	var req SumRequest
	var err error

	if req.Num1, err = validation.Number(in.Num1); err != nil {
		c.AddErr("num1", err)
	}
	if req.Num2, err = validation.Number(in.Num2); err != nil {
		c.AddErr("num2", err)
	}

	if err := c.Err(); err != nil {
		return SumRequest{}, err
	}
	return req, nil
}

// toAppError converts a validation failure into the caller-facing error.
func toAppError(err error) *apperrors.Error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs.AppError()
	}
	if typed := apperrors.As(err); typed != nil {
		return typed
	}
	return apperrors.Wrap(apperrors.KindValidation, err, err.Error())
}
