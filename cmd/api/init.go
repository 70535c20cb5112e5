package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"go-chi-remote-calc/internal/calculator"
	"go-chi-remote-calc/internal/config"
	"go-chi-remote-calc/internal/observability"
	"go-chi-remote-calc/internal/remote"
)

// initTelemetry installs the OTel providers and binds the calculator's
// instruments to them.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	shutdown, err := observability.Setup(ctx, cfg.App.OTLPLogsEnabled)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}

// newCalculatorHandler builds the remote client and calculation service
// from cfg. Remote call metrics go to reg.
func newCalculatorHandler(cfg *config.Config, reg prometheus.Registerer) *calculator.Handler {
	client := remote.NewClient(
		remote.WithLogger(observability.Logger),
		remote.WithMetrics(remote.NewMetrics(reg)),
	)
	svc := calculator.NewService(client, cfg.Remote.PricingURL, cfg.Remote.SumURL)
	return calculator.NewHandler(svc, cfg.Remote.Timeout)
}
