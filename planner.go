package blockpack

import (
	"github.com/go-faster/errors"

	"github.com/go-faster/blockpack/container"
)

// Chunk describes one contiguous byte range of the source file. Ids
// are contiguous from zero and ranges cover the file with no gaps or
// overlaps; only the last chunk may be shorter than the nominal size.
type Chunk struct {
	ID     int
	Offset int64
	Length int64
}

// SizePolicy decides the nominal chunk size for a file.
type SizePolicy interface {
	ChunkSize(total int64) int64
}

// FixedSize is a constant nominal chunk size.
type FixedSize int64

// ChunkSize implements SizePolicy.
func (s FixedSize) ChunkSize(int64) int64 { return int64(s) }

// TieredSize scales the chunk size with the file size: the smallest
// power of two that keeps the chunk count near chunkTierDivisor,
// clamped to [Small, Large]. Zero fields select the defaults.
type TieredSize struct {
	Small int64
	Large int64
}

const (
	defaultSmallChunk = 1 << 20
	defaultLargeChunk = 64 << 20

	chunkTierDivisor = 128
)

// ChunkSize implements SizePolicy.
func (s TieredSize) ChunkSize(total int64) int64 {
	small, large := s.Small, s.Large
	if small <= 0 {
		small = defaultSmallChunk
	}
	if large <= 0 {
		large = defaultLargeChunk
	}
	if large < small {
		large = small
	}
	c := small
	for c < large && c*chunkTierDivisor < total {
		c <<= 1
	}
	return c
}

// Plan splits [0, total) into contiguous chunks. Pure and
// deterministic: same input, same descriptors.
func Plan(total int64, p SizePolicy) ([]Chunk, error) {
	if total < 1 {
		return nil, errors.Wrap(ErrInvalidInput, "empty source")
	}
	size := p.ChunkSize(total)
	if size < 1 || size > container.MaxChunkSize {
		return nil, errors.Wrapf(ErrInvalidInput, "chunk size %d", size)
	}
	// The plan must stay writable: a count past the format bound would
	// produce a container the reader is required to reject.
	count := (total + size - 1) / size
	if count > container.MaxChunks {
		return nil, errors.Wrapf(ErrInvalidInput, "%d chunks of %d bytes exceed %d", count, size, container.MaxChunks)
	}
	chunks := make([]Chunk, 0, count)
	for off := int64(0); off < total; off += size {
		length := size
		if rest := total - off; rest < length {
			length = rest
		}
		chunks = append(chunks, Chunk{ID: len(chunks), Offset: off, Length: length})
	}
	return chunks, nil
}
