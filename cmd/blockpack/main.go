// Command blockpack compresses a single file into a chunked container
// and restores it back.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/go-faster/blockpack"
	"github.com/go-faster/blockpack/codec"
	"github.com/go-faster/blockpack/integrity"
	"github.com/go-faster/blockpack/internal/app"
	"github.com/go-faster/blockpack/internal/version"
)

func run(ctx context.Context, lg *zap.Logger) error {
	if len(os.Args) < 2 {
		return usage()
	}
	switch os.Args[1] {
	case "compress":
		return runCompress(ctx, lg, os.Args[2:])
	case "decompress":
		return runDecompress(ctx, lg, os.Args[2:])
	case "version":
		fmt.Println("blockpack", version.Get().Raw)
		return nil
	default:
		return usage()
	}
}

func usage() error {
	return errors.New("usage: blockpack {compress|decompress|version} [flags]")
}

func runCompress(ctx context.Context, lg *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	var arg struct {
		Input  string
		Out    string
		Jobs   int
		Method string
		Level  int
		Chunk  string
		Digest string
	}
	fs.StringVar(&arg.Input, "i", "", "input file")
	fs.StringVar(&arg.Out, "o", ".", "output directory")
	fs.IntVar(&arg.Jobs, "j", runtime.GOMAXPROCS(0), "worker count")
	fs.StringVar(&arg.Method, "m", "lz4", "compression method (lz4, lz4hc, zstd, snappy)")
	fs.IntVar(&arg.Level, "level", 0, "compression level, 0 for method default")
	fs.StringVar(&arg.Chunk, "chunk", "", "fixed chunk size (e.g. 64MB), size-tiered when empty")
	fs.StringVar(&arg.Digest, "digest", "checksum", "digest class (checksum, crypto)")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "flags")
	}
	if arg.Input == "" {
		return errors.New("-i is required")
	}

	method, err := codec.MethodString(arg.Method)
	if err != nil {
		return errors.Wrap(err, "method")
	}
	class, err := integrity.ClassString(arg.Digest)
	if err != nil {
		return errors.Wrap(err, "digest")
	}
	opt := blockpack.Options{
		Logger:  lg,
		Workers: arg.Jobs,
		Method:  method,
		Level:   codec.Level(arg.Level),
		Digest:  class,
	}
	if arg.Chunk != "" {
		n, err := humanize.ParseBytes(arg.Chunk)
		if err != nil {
			return errors.Wrap(err, "chunk size")
		}
		opt.Sizing = blockpack.FixedSize(n)
	}

	if err := os.MkdirAll(arg.Out, 0o755); err != nil {
		return errors.Wrap(err, "output directory")
	}
	a, err := blockpack.New(opt)
	if err != nil {
		return errors.Wrap(err, "init")
	}
	res, err := a.Compress(ctx, arg.Input, arg.Out)
	if err != nil {
		return errors.Wrap(err, "compress")
	}
	fmt.Printf("%s -> %s\n  %s -> %s, %d chunks (%d raw), %s\n",
		arg.Input, res.ContainerPath,
		humanize.Bytes(uint64(res.OriginalBytes)),
		humanize.Bytes(uint64(res.StoredBytes)),
		res.Chunks, res.RawChunks,
		res.Elapsed.Round(time.Millisecond),
	)
	return nil
}

func runDecompress(ctx context.Context, lg *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	var arg struct {
		Container string
		Ledger    string
		Out       string
		Strict    bool
	}
	fs.StringVar(&arg.Container, "c", "", "container file (<base>.cmp)")
	fs.StringVar(&arg.Ledger, "l", "", "ledger file (<base>.meta), digests verified when set")
	fs.StringVar(&arg.Out, "o", ".", "output directory")
	fs.BoolVar(&arg.Strict, "strict", false, "abort on ledger digest mismatch")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "flags")
	}
	if arg.Container == "" {
		return errors.New("-c is required")
	}

	a, err := blockpack.New(blockpack.Options{
		Logger: lg,
		Strict: arg.Strict,
	})
	if err != nil {
		return errors.Wrap(err, "init")
	}
	if err := os.MkdirAll(arg.Out, 0o755); err != nil {
		return errors.Wrap(err, "output directory")
	}
	res, err := a.Decompress(ctx, arg.Container, arg.Ledger, arg.Out)
	if err != nil {
		return errors.Wrap(err, "decompress")
	}
	fmt.Printf("%s -> %s\n  %s, %d chunks, %d digest mismatches, %s\n",
		arg.Container, res.OutputPath,
		humanize.Bytes(uint64(res.OriginalBytes)),
		res.Chunks, res.Mismatches,
		res.Elapsed.Round(time.Millisecond),
	)
	return nil
}

func main() {
	app.Run(run)
}
