package middleware

import (
	"context"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chrisneven/qstate/pkg/qstate"
)

// Default tracer name for qstate applications.
const defaultTracerName = "qstate"

// OTelConfig configures the OpenTelemetry hook.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "qstate").
	TracerName string

	// IncludeQuery includes the committed query string in spans.
	// Query parameters may contain sensitive data - disabled by
	// default.
	IncludeQuery bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry hook.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeQuery enables recording the committed query string.
func WithIncludeQuery(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeQuery = include
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// otelHook implements qstate.Hook by emitting one span per commit.
type otelHook struct {
	config OTelConfig
}

// OTel creates a qstate.Hook that traces every commit.
//
// The hook uses the global OpenTelemetry tracer provider. Configure it
// in your main() before creating the engine:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//
//	eng, err := qstate.New(hist,
//	    qstate.WithHooks(middleware.OTel(
//	        middleware.WithTracerName("my-app"),
//	    )),
//	)
func OTel(opts ...OTelOption) qstate.Hook {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &otelHook{config: config}
}

func (h *otelHook) CommitObserved(u *url.URL, elapsed time.Duration, err error) {
	// The commit already happened; reconstruct the span over its
	// measured window.
	end := time.Now()
	start := end.Add(-elapsed)

	attrs := []attribute.KeyValue{
		attribute.String("qstate.path", u.Path),
	}
	if h.config.IncludeQuery {
		attrs = append(attrs, attribute.String("qstate.query", u.RawQuery))
	}

	_, span := h.config.tracer.Start(context.Background(), "qstate.commit",
		trace.WithTimestamp(start),
		trace.WithAttributes(attrs...),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))
}

func (h *otelHook) BroadcastObserved(subscribers int) {
	// Broadcast dispatch is synchronous and unmeasured; nothing worth
	// a span here.
}
