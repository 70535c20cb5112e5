package calculator

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/multierr"
)

// instruments are the calculator's OTel instruments. Until InitMetrics runs
// they are no-ops.
type instruments struct {
	completed metric.Int64Counter
	duration  metric.Float64Histogram
	failed    metric.Int64Counter
}

var inst = mustInstruments(noop.NewMeterProvider().Meter("calculator"))

// InitMetrics binds the instruments to the global meter provider. Call it
// after observability.InitMetrics.
func InitMetrics() error {
	i, err := newInstruments(otel.Meter("calculator"))
	if err != nil {
		return err
	}
	inst = i
	return nil
}

func newInstruments(meter metric.Meter) (instruments, error) {
	var i instruments
	var err, errs error

	i.completed, err = meter.Int64Counter("calculator.requests.completed",
		metric.WithDescription("Calculator requests answered with a remote result"),
		metric.WithUnit("{request}"),
	)
	errs = multierr.Append(errs, err)

	i.duration, err = meter.Float64Histogram("calculator.request.duration",
		metric.WithDescription("Time spent validating and calling the remote function, in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)
	errs = multierr.Append(errs, err)

	i.failed, err = meter.Int64Counter("calculator.requests.failed",
		metric.WithDescription("Calculator requests answered with an error, by kind"),
		metric.WithUnit("{request}"),
	)
	errs = multierr.Append(errs, err)

	return i, errs
}

func mustInstruments(meter metric.Meter) instruments {
	i, err := newInstruments(meter)
	if err != nil {
		panic(err)
	}
	return i
}
