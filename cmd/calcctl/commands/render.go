package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"go-chi-remote-calc/internal/calculator"
)

func renderPricing(w io.Writer, p calculator.PricingResponse) error {
	_, err := fmt.Fprintf(w,
		"Base Price:         $%s\n"+
			"Demand Multiplier:  %s\n"+
			"Time Multiplier:    %s\n"+
			"Price Change:       %s\n"+
			"Final Price:        $%s\n",
		decimal.NewFromFloat(p.BasePrice).StringFixed(2),
		p.DemandMultiplier,
		p.TimeMultiplier,
		p.SignedPriceIncrease(),
		p.FinalPrice,
	)
	return err
}

func renderSum(w io.Writer, s calculator.SumResponse) error {
	_, err := fmt.Fprintf(w, "%s\nSum: %s\n", s.Operation, strconv.FormatFloat(s.Sum, 'f', -1, 64))
	return err
}

func renderRaw(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}
