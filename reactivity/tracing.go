package reactivity

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/delaneyj/proxyparty/reactivity"

// defaultTracer resolves through the global provider, so it is a no-op
// until the host installs one.
func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// WithTracer records a span around every flush.
func WithTracer(t trace.Tracer) Option {
	return func(rs *System) {
		if t != nil {
			rs.tracer = t
		}
	}
}
