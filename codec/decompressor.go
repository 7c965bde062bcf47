package codec

import (
	"github.com/go-faster/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Decompressor decodes chunk payloads. Not safe for concurrent use.
type Decompressor struct {
	method Method
	zstd   *zstd.Decoder
}

// Decompress decodes src into dst, whose length is the exact expected
// decoded size. The decoded bytes are returned; a decoded size other
// than len(dst) is for the caller to reject.
func (d *Decompressor) Decompress(dst, src []byte) ([]byte, error) {
	switch d.method {
	case MethodLZ4, MethodLZ4HC:
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, errors.Wrap(err, "lz4")
		}
		return dst[:n], nil
	case MethodZSTD:
		out, err := d.zstd.DecodeAll(src, dst[:0])
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		return out, nil
	case MethodSnappy:
		n, err := snappy.DecodedLen(src)
		if err != nil {
			return nil, errors.Wrap(err, "snappy")
		}
		if n > len(dst) {
			return nil, errors.Errorf("snappy: decoded size %d exceeds %d", n, len(dst))
		}
		out, err := snappy.Decode(dst, src)
		if err != nil {
			return nil, errors.Wrap(err, "snappy")
		}
		return out, nil
	default:
		return nil, errors.Errorf("unsupported compression method: %v", d.method)
	}
}

// NewDecompressor creates a Decompressor for the method.
func NewDecompressor(m Method) (*Decompressor, error) {
	d := &Decompressor{method: m}
	switch m {
	case MethodLZ4, MethodLZ4HC, MethodSnappy:
		// Stateless.
	case MethodZSTD:
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(maxDecodedSize),
		)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		d.zstd = dec
	default:
		return nil, errors.Errorf("unsupported compression method: %v", m)
	}
	return d, nil
}
