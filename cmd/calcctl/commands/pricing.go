package commands

import (
	"github.com/spf13/cobra"

	"go-chi-remote-calc/internal/calculator"
)

// pricing: ask the pricing function for a dynamic ticket price.
func pricingCmd(c *cli) *cobra.Command {
	var basePrice, demand, days string

	cmd := &cobra.Command{
		Use:   "pricing",
		Short: "Calculate a dynamic ticket price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.callContext(cmd.Context())
			defer cancel()

			result := c.svc.PriceTicket(ctx, calculator.PricingInput{
				BasePrice:      basePrice,
				Demand:         demand,
				DaysUntilEvent: days,
			})
			return report(c, cmd.OutOrStdout(), result, renderPricing)
		},
	}
	cmd.Flags().StringVar(&basePrice, "base-price", "100", "base ticket price in $")
	cmd.Flags().StringVar(&demand, "demand", "1.5", "demand multiplier")
	cmd.Flags().StringVar(&days, "days", "15", "days until the event")
	return cmd
}
