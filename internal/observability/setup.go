package observability

import (
	"context"

	"go.uber.org/multierr"
)

// Setup installs the OTel trace and metric providers, plus log export when
// exportLogs is set. The returned func shuts every installed provider down
// in reverse order and reports all of their errors.
func Setup(ctx context.Context, exportLogs bool) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, shutdowns[i](ctx))
		}
		return errs
	}

	inits := []func(context.Context) (func(context.Context) error, error){InitTracing, InitMetrics}
	if exportLogs {
		inits = append(inits, InitLogging)
	}

	for _, initFn := range inits {
		stop, err := initFn(ctx)
		if err != nil {
			return nil, multierr.Append(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, stop)
	}

	return shutdown, nil
}
