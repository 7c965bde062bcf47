package blockpack

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/go-faster/blockpack/codec"
	"github.com/go-faster/blockpack/container"
	"github.com/go-faster/blockpack/integrity"
	"github.com/go-faster/blockpack/otelbp"
)

// DecompressResult reports a finished restore run.
type DecompressResult struct {
	OutputPath    string
	Chunks        int
	OriginalBytes int64
	Verified      bool
	Mismatches    int
	Elapsed       time.Duration
}

// Decompress reconstructs the original file from containerPath into
// outDir. When ledgerPath is non-empty, chunk digests are recomputed
// and compared against the ledger: a mismatch is logged in default
// mode and aborts the run in strict mode. The ledger never influences
// framing; record lengths come from the container alone. The operation
// succeeds or fails as a unit: on error no output file remains.
func (a *Archiver) Decompress(ctx context.Context, containerPath, ledgerPath, outDir string) (DecompressResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	lg := a.lg.With(zap.String("run_id", runID))

	fc, err := os.Open(containerPath)
	if err != nil {
		return DecompressResult{}, errors.Wrap(err, "open container")
	}
	defer func() { _ = fc.Close() }()

	r := container.NewReader(fc)
	var hdr container.Header
	if err := hdr.Decode(r); err != nil {
		return DecompressResult{}, errors.Wrap(err, "header")
	}

	method := codec.Method(hdr.Codec)
	if !method.IsAMethod() {
		return DecompressResult{}, errors.Wrapf(ErrCorruptContainer, "codec 0x%02x", hdr.Codec)
	}
	kind := integrity.Kind(hdr.Digest)
	if !kind.IsAKind() {
		return DecompressResult{}, errors.Wrapf(ErrCorruptContainer, "digest kind 0x%02x", hdr.Digest)
	}
	dec, err := codec.NewDecompressor(method)
	if err != nil {
		return DecompressResult{}, errors.Wrap(err, "codec")
	}

	var (
		entries []ledgerEntry
		backend integrity.Backend
	)
	if ledgerPath != "" {
		entries, err = readLedger(ledgerPath, int(hdr.Chunks))
		if err != nil {
			if a.strict {
				return DecompressResult{}, errors.Wrapf(ErrIntegrityMismatch, "ledger: %v", err)
			}
			lg.Warn("Ignoring unusable ledger", zap.String("ledger", ledgerPath), zap.Error(err))
			entries = nil
		}
	}
	if entries != nil {
		if backend, err = integrity.FromKind(kind); err != nil {
			return DecompressResult{}, errors.Wrap(err, "digest backend")
		}
	}

	if ce := lg.Check(zap.DebugLevel, "Decompress"); ce != nil {
		ce.Write(
			zap.String("container", containerPath),
			zap.Uint64("total", hdr.Total),
			zap.Uint32("chunks", hdr.Chunks),
			zap.Stringer("method", method),
			zap.Stringer("digest", kind),
			zap.Bool("verify", entries != nil),
			zap.Bool("strict", a.strict),
		)
	}

	outPath := filepath.Join(outDir, restoredName(containerPath))
	// A container without the suffix restores under its own name, so the
	// output must never resolve to the container being read.
	if filepath.Clean(outPath) == filepath.Clean(containerPath) {
		return DecompressResult{}, errors.Wrapf(ErrInvalidInput, "output %s is the container itself", outPath)
	}
	fo, err := os.Create(outPath)
	if err != nil {
		return DecompressResult{}, errors.Wrap(err, "create output")
	}

	res := DecompressResult{
		OutputPath: outPath,
		Chunks:     int(hdr.Chunks),
		Verified:   entries != nil,
	}
	rerr := a.restore(ctx, lg, r, dec, backend, entries, hdr, fo, &res)
	rerr = multierr.Append(rerr, fo.Close())
	if rerr != nil {
		_ = os.Remove(outPath)
		return DecompressResult{}, rerr
	}
	res.Elapsed = time.Since(start)

	lg.Info("Decompressed",
		zap.String("output", outPath),
		zap.Int64("bytes", res.OriginalBytes),
		zap.Int("chunks", res.Chunks),
		zap.Int("mismatches", res.Mismatches),
		zap.Duration("elapsed", res.Elapsed),
	)
	if a.otel {
		trace.SpanFromContext(ctx).SetAttributes(
			otelbp.RunID(runID),
			otelbp.ChunkCount(res.Chunks),
			otelbp.OriginalBytes(res.OriginalBytes),
		)
	}
	return res, nil
}

// restoredName strips the container suffix to recover the original
// base name.
func restoredName(containerPath string) string {
	return strings.TrimSuffix(filepath.Base(containerPath), ".cmp")
}

func (a *Archiver) restore(
	ctx context.Context,
	lg *zap.Logger,
	r *container.Reader,
	dec *codec.Decompressor,
	backend integrity.Backend,
	entries []ledgerEntry,
	hdr container.Header,
	w io.Writer,
	res *DecompressResult,
) error {
	bw := bufio.NewWriterSize(w, writeBufferSize)
	var total uint64
	for id := 0; id < int(hdr.Chunks); id++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "context")
		}
		var rec container.Record
		if err := rec.DecodeHeader(r, hdr); err != nil {
			return errors.Wrapf(err, "record %d", id)
		}
		payload := make([]byte, rec.Stored)
		if err := r.ReadFull(payload); err != nil {
			return errors.Wrapf(err, "payload %d", id)
		}
		out := payload
		if rec.Mode == container.ModeCompressed {
			decoded, err := dec.Decompress(make([]byte, rec.Original), payload)
			if err != nil {
				return errors.Wrapf(err, "decompress chunk %d", id)
			}
			if uint64(len(decoded)) != rec.Original {
				return errors.Wrapf(ErrCorruptContainer, "chunk %d decoded to %d bytes, record says %d", id, len(decoded), rec.Original)
			}
			out = decoded
		}
		if entries != nil {
			if err := a.verifyChunk(lg, backend, entries[id], id, out, res); err != nil {
				return err
			}
		}
		if _, err := bw.Write(out); err != nil {
			return errors.Wrapf(err, "write chunk %d", id)
		}
		total += rec.Original
	}
	if total != hdr.Total {
		return errors.Wrapf(ErrCorruptContainer, "records sum to %d bytes, header says %d", total, hdr.Total)
	}
	extra, err := r.Tail()
	if err != nil {
		return errors.Wrap(err, "tail")
	}
	if extra {
		return errors.Wrap(ErrCorruptContainer, "trailing bytes after last record")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush")
	}
	res.OriginalBytes = int64(total)
	return nil
}

func (a *Archiver) verifyChunk(
	lg *zap.Logger,
	backend integrity.Backend,
	e ledgerEntry,
	id int,
	out []byte,
	res *DecompressResult,
) error {
	d, err := backend.Sum(out)
	if err != nil {
		return errors.Wrapf(err, "digest chunk %d", id)
	}
	if d.String() == e.digest {
		return nil
	}
	res.Mismatches++
	if a.strict {
		return errors.Wrapf(ErrIntegrityMismatch, "chunk %d: ledger has %s, computed %s", id, e.digest, d)
	}
	lg.Warn("Ledger digest mismatch",
		zap.Int("chunk", id),
		zap.String("ledger", e.digest),
		zap.Stringer("computed", d),
	)
	return nil
}
