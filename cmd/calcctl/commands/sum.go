package commands

import (
	"github.com/spf13/cobra"

	"go-chi-remote-calc/internal/calculator"
)

// sum: add two numbers with the sum function.
func sumCmd(c *cli) *cobra.Command {
	var num1, num2 string

	cmd := &cobra.Command{
		Use:   "sum",
		Short: "Add two numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.callContext(cmd.Context())
			defer cancel()

			result := c.svc.Sum(ctx, calculator.SumInput{Num1: num1, Num2: num2})
			return report(c, cmd.OutOrStdout(), result, renderSum)
		},
	}
	cmd.Flags().StringVar(&num1, "num1", "25", "first number")
	cmd.Flags().StringVar(&num2, "num2", "75", "second number")
	return cmd
}
