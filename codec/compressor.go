package codec

import (
	"github.com/go-faster/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor encodes chunk payloads. Not safe for concurrent use: each
// worker owns its own instance.
type Compressor struct {
	// Data contains the result of the last Compress call and is reused
	// between calls.
	Data []byte

	method Method
	lz4    *lz4.Compressor
	lz4hc  *lz4.CompressorHC
	zstd   *zstd.Encoder
}

// Bound returns the worst-case compressed size for n input bytes.
func (c *Compressor) Bound(n int) int {
	switch c.method {
	case MethodZSTD:
		return n + (n >> 8) + 64
	case MethodSnappy:
		return snappy.MaxEncodedLen(n)
	default:
		return lz4.CompressBlockBound(n)
	}
}

// Compress encodes buf into Data. Zero-length Data reports an
// incompressible input; the caller is expected to store such chunks
// raw. Data may also come out no smaller than buf, which the caller
// must treat the same way.
func (c *Compressor) Compress(buf []byte) error {
	c.Data = append(c.Data[:0], make([]byte, c.Bound(len(buf)))...)

	switch c.method {
	case MethodLZ4:
		n, err := c.lz4.CompressBlock(buf, c.Data)
		if err != nil {
			return errors.Wrap(err, "block")
		}
		c.Data = c.Data[:n]
	case MethodLZ4HC:
		n, err := c.lz4hc.CompressBlock(buf, c.Data)
		if err != nil {
			return errors.Wrap(err, "block")
		}
		c.Data = c.Data[:n]
	case MethodZSTD:
		c.Data = c.zstd.EncodeAll(buf, c.Data[:0])
	case MethodSnappy:
		c.Data = snappy.Encode(c.Data, buf)
	}

	return nil
}

// NewCompressor creates a Compressor for the method at the given level.
func NewCompressor(m Method, l Level) (*Compressor, error) {
	c := &Compressor{method: m}
	switch m {
	case MethodLZ4:
		c.lz4 = &lz4.Compressor{}
	case MethodLZ4HC:
		level := l
		if level == 0 {
			level = LevelLZ4HCDefault
		}
		if level > LevelLZ4HCMax {
			level = LevelLZ4HCMax
		}
		c.lz4hc = &lz4.CompressorHC{Level: lz4.CompressionLevel(1 << (8 + level))}
	case MethodZSTD:
		opt := zstd.SpeedDefault
		if l != 0 {
			opt = zstd.EncoderLevelFromZstd(int(l))
		}
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(opt),
			zstd.WithEncoderConcurrency(1),
			zstd.WithLowerEncoderMem(true),
		)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		c.zstd = enc
	case MethodSnappy:
		// Stateless.
	default:
		return nil, errors.Errorf("unsupported compression method: %v", m)
	}
	return c, nil
}
