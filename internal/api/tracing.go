package api

import (
	"context"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/inaturalist/inaturalist-go"

func newTracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(tracerName)
}

// startSpan opens a client span for one dispatch and injects the trace
// context into the outgoing headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request, kind callKind) (context.Context, trace.Span) {
	ctx, span := c.tracer.Start(ctx, "inaturalist "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", spanURL(req.URL)),
			attribute.String("inaturalist.call_kind", string(kind)),
		),
	)
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))
	return ctx, span
}

// spanURL drops the query, which may carry params such as a CSRF token,
// and redacts any password.
func spanURL(u *url.URL) string {
	stripped := *u
	stripped.RawQuery = ""
	stripped.ForceQuery = false
	stripped.Fragment = ""
	stripped.RawFragment = ""
	return stripped.Redacted()
}

func endSpan(span trace.Span, statusCode int, err error) {
	if statusCode > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", statusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
