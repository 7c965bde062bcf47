package blockpack

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/go-faster/blockpack/codec"
	"github.com/go-faster/blockpack/container"
	"github.com/go-faster/blockpack/integrity"
	"github.com/go-faster/blockpack/otelbp"
)

const writeBufferSize = 1 << 20

// result is a completed chunk, held in its id slot until the write
// phase. Written exactly once by the worker owning the chunk, read
// only after all workers have joined.
type result struct {
	mode     container.Mode
	original int64
	payload  []byte
	digest   integrity.Digest
}

// CompressResult reports a finished compression run.
type CompressResult struct {
	ContainerPath string
	LedgerPath    string
	Method        codec.Method
	Digest        integrity.Kind
	Chunks        int
	RawChunks     int
	OriginalBytes int64
	StoredBytes   int64
	Elapsed       time.Duration
}

// Compress splits the input file into chunks, compresses and
// fingerprints them in parallel, and writes the <base>.cmp container
// plus the <base>.meta ledger into outDir. The operation succeeds or
// fails as a unit: on error no output files remain.
func (a *Archiver) Compress(ctx context.Context, inputPath, outDir string) (CompressResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	lg := a.lg.With(zap.String("run_id", runID))

	f, err := os.Open(inputPath)
	if err != nil {
		return CompressResult{}, errors.Wrap(err, "open input")
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return CompressResult{}, errors.Wrap(err, "stat input")
	}
	if st.Size() < 1 {
		return CompressResult{}, errors.Wrapf(ErrInvalidInput, "%s is empty", inputPath)
	}

	chunks, err := Plan(st.Size(), a.sizing)
	if err != nil {
		return CompressResult{}, errors.Wrap(err, "plan")
	}
	nominal := a.sizing.ChunkSize(st.Size())

	if ce := lg.Check(zap.DebugLevel, "Compress"); ce != nil {
		ce.Write(
			zap.String("input", inputPath),
			zap.Int64("total", st.Size()),
			zap.Int64("chunk_size", nominal),
			zap.Int("chunks", len(chunks)),
			zap.Int("workers", a.workers),
			zap.Stringer("method", a.method),
			zap.Stringer("digest", a.backend.Kind()),
		)
	}
	if a.otel {
		trace.SpanFromContext(ctx).SetAttributes(
			otelbp.RunID(runID),
			otelbp.Method(a.method.String()),
			otelbp.DigestKind(a.backend.Kind().String()),
			otelbp.ChunkCount(len(chunks)),
		)
	}

	slots := make([]result, len(chunks))
	queue := newJobQueue(chunks)

	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < a.workers; w++ {
		g.Go(func() error {
			return a.worker(gCtx, f, queue, slots)
		})
	}
	// Full barrier: no record is written while any worker may still run.
	if err := g.Wait(); err != nil {
		return CompressResult{}, errors.Wrap(err, "compress chunks")
	}

	res := CompressResult{
		ContainerPath: filepath.Join(outDir, filepath.Base(inputPath)+".cmp"),
		LedgerPath:    filepath.Join(outDir, filepath.Base(inputPath)+".meta"),
		Method:        a.method,
		Digest:        a.backend.Kind(),
		Chunks:        len(chunks),
	}
	hdr := container.Header{
		Codec:  byte(a.method),
		Digest: byte(a.backend.Kind()),
		Total:  uint64(st.Size()),
		Chunk:  uint64(nominal),
		Chunks: uint32(len(chunks)),
	}
	if err := writeOutputs(res.ContainerPath, res.LedgerPath, hdr, slots); err != nil {
		return CompressResult{}, err
	}
	for i := range slots {
		res.OriginalBytes += slots[i].original
		res.StoredBytes += int64(len(slots[i].payload))
		if slots[i].mode == container.ModeRaw {
			res.RawChunks++
		}
	}
	res.Elapsed = time.Since(start)

	lg.Info("Compressed",
		zap.String("container", res.ContainerPath),
		zap.Int64("original_bytes", res.OriginalBytes),
		zap.Int64("stored_bytes", res.StoredBytes),
		zap.Int("chunks", res.Chunks),
		zap.Int("raw_chunks", res.RawChunks),
		zap.Duration("elapsed", res.Elapsed),
	)
	if a.otel {
		trace.SpanFromContext(ctx).SetAttributes(
			otelbp.OriginalBytes(res.OriginalBytes),
			otelbp.StoredBytes(res.StoredBytes),
		)
		a.metrics.observe(ctx, res)
	}
	return res, nil
}

// worker claims chunks until the queue is exhausted. Each worker owns
// its codec state; the only shared write is the claim cursor.
func (a *Archiver) worker(ctx context.Context, src io.ReaderAt, q *jobQueue, slots []result) error {
	comp, err := codec.NewCompressor(a.method, a.level)
	if err != nil {
		return errors.Wrap(err, "codec")
	}
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "context")
		}
		c, ok := q.Next()
		if !ok {
			return nil
		}
		if err := a.processChunk(src, c, comp, slots); err != nil {
			return errors.Wrapf(err, "chunk %d", c.ID)
		}
	}
}

func (a *Archiver) processChunk(src io.ReaderAt, c Chunk, comp *codec.Compressor, slots []result) error {
	buf := make([]byte, c.Length)
	switch n, err := src.ReadAt(buf, c.Offset); {
	case err == nil:
	case errors.Is(err, io.EOF) && n == len(buf):
	default:
		return errors.Wrap(err, "read")
	}

	digest, err := a.backend.Sum(buf)
	if err != nil {
		return errors.Wrap(err, "digest")
	}

	res := result{original: c.Length, digest: digest}
	// A stored compressed payload must be strictly smaller than the
	// chunk; anything else is stored raw so that incompressible input
	// still round-trips.
	if err := comp.Compress(buf); err != nil {
		a.lg.Warn("Compression failed, storing raw",
			zap.Int("chunk", c.ID),
			zap.Error(err),
		)
		res.mode = container.ModeRaw
		res.payload = buf
	} else if len(comp.Data) == 0 || len(comp.Data) >= len(buf) {
		res.mode = container.ModeRaw
		res.payload = buf
	} else {
		res.mode = container.ModeCompressed
		res.payload = make([]byte, len(comp.Data))
		copy(res.payload, comp.Data)
	}
	slots[c.ID] = res
	return nil
}

// writeOutputs emits the container and the ledger, strictly in chunk
// id order. Runs only after the worker barrier.
func writeOutputs(containerPath, ledgerPath string, hdr container.Header, slots []result) error {
	fc, err := os.Create(containerPath)
	if err != nil {
		return errors.Wrap(err, "create container")
	}
	fm, err := os.Create(ledgerPath)
	if err != nil {
		err = multierr.Append(errors.Wrap(err, "create ledger"), fc.Close())
		_ = os.Remove(containerPath)
		return err
	}

	werr := writeRecords(fc, fm, hdr, slots)
	werr = multierr.Append(werr, fc.Close())
	werr = multierr.Append(werr, fm.Close())
	if werr != nil {
		_ = os.Remove(containerPath)
		_ = os.Remove(ledgerPath)
		return werr
	}
	return nil
}

func writeRecords(fc, fm io.Writer, hdr container.Header, slots []result) error {
	var (
		bw = bufio.NewWriterSize(fc, writeBufferSize)
		lw = bufio.NewWriterSize(fm, 64*1024)
		b  container.Buffer
	)
	hdr.Encode(&b)
	if _, err := bw.Write(b.Buf); err != nil {
		return errors.Wrap(err, "header")
	}
	for id := range slots {
		s := &slots[id]
		b.Reset()
		container.Record{
			Mode:     s.mode,
			Original: uint64(s.original),
			Stored:   uint64(len(s.payload)),
		}.EncodeHeader(&b)
		if _, err := bw.Write(b.Buf); err != nil {
			return errors.Wrapf(err, "record %d", id)
		}
		if _, err := bw.Write(s.payload); err != nil {
			return errors.Wrapf(err, "payload %d", id)
		}
		if _, err := fmt.Fprintf(lw, "%d %d %d %s\n", id, s.original, len(s.payload), s.digest); err != nil {
			return errors.Wrapf(err, "ledger %d", id)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush container")
	}
	if err := lw.Flush(); err != nil {
		return errors.Wrap(err, "flush ledger")
	}
	return nil
}
