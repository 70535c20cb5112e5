package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogging also ships Logger's records over OTLP/HTTP, at the level
// InitLogger chose. The returned func flushes and stops the exporter.
func InitLogging(ctx context.Context) (func(context.Context) error, error) {

	exporter, err := otlploghttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)

	if err := teeOTLP(otelzap.NewCore(ServiceName(), otelzap.WithLoggerProvider(provider))); err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	return provider.Shutdown, nil
}

// teeOTLP replaces Logger with one that writes to both its current core and
// export, dropping export records below Logger's level.
func teeOTLP(export zapcore.Core) error {
	leveled, err := zapcore.NewIncreaseLevelCore(export, Logger.Level())
	if err != nil {
		return fmt.Errorf("otlp log core: %w", err)
	}
	Logger = zap.New(zapcore.NewTee(Logger.Core(), leveled))
	return nil
}
