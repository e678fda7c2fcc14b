package gate

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option defines optional settings for a Gate.
//
// WithLogger injects a custom logger.
// WithTracer injects an otel tracer for spans around checks.
type Option func(*options)

type options struct {
	logger *slog.Logger
	tracer trace.Tracer
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}
