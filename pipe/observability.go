package pipe

import (
	"context"
	"time"

	"github.com/lyteflow/lyteflow/logger"
	"github.com/lyteflow/lyteflow/observability"
)

// WithTracing wraps an Element with OpenTelemetry span creation.
// Each execution creates a span named "{prefix}.{elementName}".
func WithTracing(elem Element, prefix string) Element {
	return &tracingElement{inner: elem, prefix: prefix}
}

type tracingElement struct {
	inner  Element
	prefix string
}

func (e *tracingElement) Name() string { return e.inner.Name() }

func (e *tracingElement) Transform(ctx context.Context, in *Input) (*Output, error) {
	ctx, span := observability.StartElementSpan(ctx, e.prefix, e.inner.Name())
	defer span.End()

	observability.SetSpanSystem(ctx, e.prefix)

	out, err := e.inner.Transform(ctx, in)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return out, err
}

// WithMetrics wraps an Element with metric recording.
// Records operation count, duration, and errors.
func WithMetrics(elem Element, metrics *observability.Metrics) Element {
	return &metricsElement{inner: elem, metrics: metrics}
}

type metricsElement struct {
	inner   Element
	metrics *observability.Metrics
}

func (e *metricsElement) Name() string { return e.inner.Name() }

func (e *metricsElement) Transform(ctx context.Context, in *Input) (*Output, error) {
	start := time.Now()
	out, err := e.inner.Transform(ctx, in)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		e.metrics.RecordError(ctx, "transform", e.inner.Name())
	}
	e.metrics.RecordOperation(ctx, e.inner.Name(), "pipe.transform", status, duration)

	return out, err
}

// WithLogging wraps an Element with execution logging.
// Logs element name, duration and success/error status.
func WithLogging(elem Element, log *logger.Logger) Element {
	return &loggingElement{inner: elem, log: log.WithComponent("element")}
}

type loggingElement struct {
	inner Element
	log   *logger.Logger
}

func (e *loggingElement) Name() string { return e.inner.Name() }

func (e *loggingElement) Transform(ctx context.Context, in *Input) (*Output, error) {
	start := time.Now()
	out, err := e.inner.Transform(ctx, in)
	duration := time.Since(start)

	if err != nil {
		e.log.Error("transform failed", logger.ErrorFields(e.inner.Name(), err))
		return out, err
	}
	e.log.Debug("transform done", logger.Fields(
		logger.FieldElement, e.inner.Name(),
		logger.FieldDuration, duration.Milliseconds(),
	))
	return out, err
}
