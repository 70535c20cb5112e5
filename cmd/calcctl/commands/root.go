package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"go-chi-remote-calc/internal/calculator"
	"go-chi-remote-calc/internal/config"
	"go-chi-remote-calc/internal/observability"
	"go-chi-remote-calc/internal/remote"
)

// cli is the state shared by one calcctl invocation.
type cli struct {
	pricingURL string
	sumURL     string
	rawOutput  bool
	logLevel   string

	timeout time.Duration
	svc     *calculator.Service
}

// failure is a calculation that completed with an error result.
type failure struct {
	msg string
}

func (f failure) Error() string { return f.msg }

func Execute() error {
	return execute(newRootCmd())
}

// execute runs root and reports any error on its stderr.
func execute(root *cobra.Command) error {
	err := root.Execute()
	if err == nil {
		return nil
	}

	var f failure
	if errors.As(err, &f) {
		fmt.Fprintf(root.ErrOrStderr(), "Calculation Failed: %s\n", f.msg)
	} else {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "calcctl",
		Short:         "Call the remote pricing and sum functions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.SyncLogger()
		},
	}

	root.PersistentFlags().StringVar(&c.pricingURL, "pricing-url", "", "pricing function URL (default $"+config.EnvPricingURL+")")
	root.PersistentFlags().StringVar(&c.sumURL, "sum-url", "", "sum function URL (default $"+config.EnvSumURL+")")
	root.PersistentFlags().BoolVar(&c.rawOutput, "raw", false, "print the raw result JSON instead of a summary")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "error", "log level written to stderr")

	root.AddCommand(pricingCmd(c), sumCmd(c))
	return root
}

// setup loads configuration and builds the service. Flag values win over
// the configured endpoints.
func (c *cli) setup() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := observability.InitLogger(c.logLevel); err != nil {
		return err
	}

	pricingURL := cfg.Remote.PricingURL
	if c.pricingURL != "" {
		pricingURL = c.pricingURL
	}
	sumURL := cfg.Remote.SumURL
	if c.sumURL != "" {
		sumURL = c.sumURL
	}

	client := remote.NewClient(remote.WithLogger(observability.Logger))
	c.svc = calculator.NewService(client, pricingURL, sumURL)
	c.timeout = cfg.Remote.Timeout
	return nil
}

// callContext bounds a call by the configured remote timeout, if any.
func (c *cli) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if c.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.timeout)
}

// report prints a finished result to out, turning a failure into an error.
func report[T any](c *cli, out io.Writer, result remote.Result[T], summary func(io.Writer, T) error) error {
	if !result.OK() {
		return failure{msg: result.Err().Message()}
	}
	if c.rawOutput {
		return renderRaw(out, *result.Data)
	}
	return summary(out, *result.Data)
}
