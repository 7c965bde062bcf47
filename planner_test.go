package blockpack

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/go-faster/blockpack/container"
)

func TestPlan(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		chunks, err := Plan(10, FixedSize(4))
		require.NoError(t, err)
		require.Equal(t, []Chunk{
			{ID: 0, Offset: 0, Length: 4},
			{ID: 1, Offset: 4, Length: 4},
			{ID: 2, Offset: 8, Length: 2},
		}, chunks)
	})
	t.Run("SingleShortChunk", func(t *testing.T) {
		chunks, err := Plan(3, FixedSize(1024))
		require.NoError(t, err)
		require.Equal(t, []Chunk{{ID: 0, Offset: 0, Length: 3}}, chunks)
	})
	t.Run("Empty", func(t *testing.T) {
		_, err := Plan(0, FixedSize(4))
		require.ErrorIs(t, err, ErrInvalidInput)
	})
	t.Run("BadChunkSize", func(t *testing.T) {
		_, err := Plan(10, FixedSize(0))
		require.ErrorIs(t, err, ErrInvalidInput)
	})
	t.Run("TooManyChunks", func(t *testing.T) {
		// A plan past the container's chunk count bound would write a
		// container that cannot be read back.
		_, err := Plan(container.MaxChunks+1, FixedSize(1))
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = Plan(int64(container.MaxChunks)*(16<<10)+1, FixedSize(16<<10))
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPlanCoverage(t *testing.T) {
	for _, total := range []int64{1, 2, 3, 4, 5, 7, 8, 9, 100, 1023, 1024, 1025, 4096} {
		for _, size := range []int64{1, 2, 3, 4, 7, 16, 1024} {
			chunks, err := Plan(total, FixedSize(size))
			require.NoError(t, err)

			want := int((total + size - 1) / size)
			require.Len(t, chunks, want, "total=%d size=%d", total, size)

			var (
				sum   int64
				off   int64
				short int
			)
			for i, c := range chunks {
				require.Equal(t, i, c.ID)
				require.Equal(t, off, c.Offset)
				require.Positive(t, c.Length)
				if c.Length < size {
					short++
					require.Equal(t, len(chunks)-1, i, "only the last chunk may be short")
				}
				sum += c.Length
				off += c.Length
			}
			require.Equal(t, total, sum)
			require.LessOrEqual(t, short, 1)
		}
	}
}

func TestTieredSize(t *testing.T) {
	p := TieredSize{}
	require.Equal(t, int64(defaultSmallChunk), p.ChunkSize(1))
	require.Equal(t, int64(defaultSmallChunk), p.ChunkSize(defaultSmallChunk*chunkTierDivisor))

	// Chunk size never shrinks as the file grows.
	prev := int64(0)
	for total := int64(1); total < 1<<40; total *= 7 {
		c := p.ChunkSize(total)
		require.GreaterOrEqual(t, c, prev, "total=%d", total)
		require.GreaterOrEqual(t, c, int64(defaultSmallChunk))
		require.LessOrEqual(t, c, int64(defaultLargeChunk))
		prev = c
	}
	require.Equal(t, int64(defaultLargeChunk), p.ChunkSize(1<<40))

	fixed := TieredSize{Small: 1 << 10, Large: 1 << 10}
	require.Equal(t, int64(1<<10), fixed.ChunkSize(1<<30))
}

func FuzzPlan(f *testing.F) {
	f.Add(int64(10), int64(4))
	f.Add(int64(1), int64(1))
	f.Add(int64(1<<20+3), int64(4096))
	f.Fuzz(func(t *testing.T, total, size int64) {
		chunks, err := Plan(total, FixedSize(size))
		if err != nil {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("unexpected error: %v", err)
			}
			return
		}
		var sum, off int64
		for i, c := range chunks {
			if c.ID != i || c.Offset != off {
				t.Fatalf("chunk %d not contiguous: %+v", i, c)
			}
			if c.Length < 1 || c.Length > size {
				t.Fatalf("chunk %d length %d out of (0, %d]", i, c.Length, size)
			}
			sum += c.Length
			off += c.Length
		}
		if sum != total {
			t.Fatalf("chunks sum to %d, want %d", sum, total)
		}
	})
}
