// Package observability logs and traces each request.
package observability

import (
	"log"
	"net/http"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/sinhaparth5/portfolio/internal/services/web/platform/httpx"
)

const tracerName = "portfolio/web"

type options struct {
	tracer trace.TracerProvider
	skip   []string
}

// Option tunes RequestLogger.
type Option func(*options)

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracer = tp }
}

// SkipPaths serves paths without a log line or span, for health checks.
func SkipPaths(paths ...string) Option {
	return func(o *options) { o.skip = append(o.skip, paths...) }
}

// RequestLogger opens a server span per request and logs one key=value line
// after the response completes. The line carries the trace id when the span
// is sampled.
func RequestLogger(logger *log.Logger, opts ...Option) httpx.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(o.skip, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			tp := o.tracer
			if tp == nil {
				tp = otel.GetTracerProvider()
			}
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tp.Tracer(tracerName).Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
					attribute.String("http.request.id", httpx.RequestIDFrom(r)),
				))
			defer span.End()

			started := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r.WithContext(ctx))

			status := recorder.statusCode()
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			traceID := "-"
			if sc := span.SpanContext(); sc.IsValid() {
				traceID = sc.TraceID().String()
			}
			logger.Printf("http request method=%s path=%s status=%d bytes=%d latency=%s request_id=%s trace_id=%s",
				r.Method, r.URL.Path, status, recorder.bytes,
				time.Since(started).Round(time.Microsecond), httpx.RequestIDFrom(r), traceID)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) statusCode() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
