package blockpack

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"

	"github.com/go-faster/blockpack/otelbp"
)

// runMetrics hold run counters, created only when OpenTelemetry
// instrumentation is enabled.
type runMetrics struct {
	chunks        metric.Int64Counter
	rawChunks     metric.Int64Counter
	originalBytes metric.Int64Counter
	storedBytes   metric.Int64Counter
}

func newRunMetrics(p metric.MeterProvider) (*runMetrics, error) {
	meter := p.Meter(otelbp.Name,
		metric.WithInstrumentationVersion(otelbp.Version()),
	)
	var (
		m   runMetrics
		err error
	)
	if m.chunks, err = meter.Int64Counter("blockpack.chunks",
		metric.WithDescription("Chunks processed"),
	); err != nil {
		return nil, errors.Wrap(err, "chunks")
	}
	if m.rawChunks, err = meter.Int64Counter("blockpack.chunks.raw",
		metric.WithDescription("Chunks stored raw after compression fallback"),
	); err != nil {
		return nil, errors.Wrap(err, "raw chunks")
	}
	if m.originalBytes, err = meter.Int64Counter("blockpack.bytes.original",
		metric.WithDescription("Original bytes processed"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, errors.Wrap(err, "original bytes")
	}
	if m.storedBytes, err = meter.Int64Counter("blockpack.bytes.stored",
		metric.WithDescription("Bytes written to containers"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, errors.Wrap(err, "stored bytes")
	}
	return &m, nil
}

func (m *runMetrics) observe(ctx context.Context, res CompressResult) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(otelbp.Method(res.Method.String()))
	m.chunks.Add(ctx, int64(res.Chunks), attrs)
	m.rawChunks.Add(ctx, int64(res.RawChunks), attrs)
	m.originalBytes.Add(ctx, res.OriginalBytes, attrs)
	m.storedBytes.Add(ctx, res.StoredBytes, attrs)
}
