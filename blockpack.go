// Package blockpack implements parallel chunked file compression.
//
// A source file is split into independent byte-range chunks that a
// fixed worker pool compresses and fingerprints concurrently. Once all
// workers have joined, the results are serialized in chunk id order
// into a self-describing binary container plus an advisory text
// ledger. Decompression reverses the container into the original byte
// stream, optionally verifying ledger digests.
package blockpack

import (
	"runtime"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/go-faster/blockpack/codec"
	"github.com/go-faster/blockpack/integrity"
)

// Archiver runs compression and decompression over a fixed worker pool.
type Archiver struct {
	lg      *zap.Logger
	workers int
	sizing  SizePolicy
	method  codec.Method
	level   codec.Level
	backend integrity.Backend
	strict  bool
	otel    bool
	metrics *runMetrics
}

// Options for Archiver.
type Options struct {
	Logger  *zap.Logger
	Workers int             // worker pool size, default GOMAXPROCS
	Sizing  SizePolicy      // chunk sizing policy, default TieredSize{}
	Method  codec.Method    // compression codec, default LZ4
	Level   codec.Level     // compression level, zero is method default
	Digest  integrity.Class // digest family, default checksum
	Strict  bool            // ledger digest mismatches abort decompression

	// OpenTelemetry enables span attributes and run counters.
	OpenTelemetry bool
	// MeterProvider to use, otel.GetMeterProvider() if nil.
	MeterProvider metric.MeterProvider
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Sizing == nil {
		o.Sizing = TieredSize{}
	}
	if o.MeterProvider == nil {
		o.MeterProvider = otel.GetMeterProvider()
	}
}

// New validates options and probes the integrity backend for the run.
func New(opt Options) (*Archiver, error) {
	opt.setDefaults()
	if opt.Workers < 1 {
		return nil, errors.Wrapf(ErrInvalidInput, "worker count %d", opt.Workers)
	}
	if !opt.Method.IsAMethod() {
		return nil, errors.Wrapf(ErrInvalidInput, "compression method %d", opt.Method)
	}
	if !opt.Digest.IsAClass() {
		return nil, errors.Wrapf(ErrInvalidInput, "digest class %d", opt.Digest)
	}
	if opt.Level < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "compression level %d", opt.Level)
	}
	a := &Archiver{
		lg:      opt.Logger,
		workers: opt.Workers,
		sizing:  opt.Sizing,
		method:  opt.Method,
		level:   opt.Level,
		backend: integrity.Select(opt.Digest),
		strict:  opt.Strict,
		otel:    opt.OpenTelemetry,
	}
	if opt.OpenTelemetry {
		m, err := newRunMetrics(opt.MeterProvider)
		if err != nil {
			return nil, errors.Wrap(err, "metrics")
		}
		a.metrics = m
	}
	if ce := a.lg.Check(zap.DebugLevel, "Archiver"); ce != nil {
		ce.Write(
			zap.Int("workers", a.workers),
			zap.Stringer("method", a.method),
			zap.Stringer("digest", a.backend.Kind()),
		)
	}
	return a, nil
}
