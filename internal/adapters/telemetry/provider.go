package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/rsym/internal/core/ports"
)

// Setup installs a global TracerProvider that reports spans through logger.
// Tracers created with NewOTelTracer before Setup pick it up as well.
// The returned function flushes the provider.
func Setup(logger ports.Logger) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
