package blockpack

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-faster/blockpack/container"
)

// compressFixture produces a small valid container plus ledger for
// corruption tests.
func compressFixture(t *testing.T, opt Options) CompressResult {
	t.Helper()
	a := newTestArchiver(t, opt)
	data := bytes.Repeat([]byte("corrupt me if you can "), 2048)
	input := writeInput(t, data)
	res, err := a.Compress(context.Background(), input, t.TempDir())
	require.NoError(t, err)
	return res
}

// requireNoOutput asserts unit failure: the restore directory stays
// empty after a failed decompression.
func requireNoOutput(t *testing.T, dir string) {
	t.Helper()
	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, ents)
}

func TestDecompressTruncated(t *testing.T) {
	// Negative size cuts from the end of the container.
	for name, size := range map[string]int64{
		"AfterHeader":    int64(container.HeaderSize),
		"MidRecord":      int64(container.HeaderSize + 3),
		"MidPayload":     int64(container.HeaderSize + container.RecordHeaderSize + 1),
		"BeforeLastByte": -1,
	} {
		t.Run(name, func(t *testing.T) {
			cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
			st, err := os.Stat(cres.ContainerPath)
			require.NoError(t, err)
			if size < 0 {
				size = st.Size() - 1
			}
			require.NoError(t, os.Truncate(cres.ContainerPath, size))

			a := newTestArchiver(t, Options{Workers: 2})
			outDir := t.TempDir()
			_, err = a.Decompress(context.Background(), cres.ContainerPath, "", outDir)
			require.ErrorIs(t, err, ErrCorruptContainer)
			requireNoOutput(t, outDir)
		})
	}
}

func TestDecompressBadMagic(t *testing.T) {
	cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
	raw, err := os.ReadFile(cres.ContainerPath)
	require.NoError(t, err)
	raw[0] ^= 0xFF
	require.NoError(t, os.WriteFile(cres.ContainerPath, raw, 0o644))

	a := newTestArchiver(t, Options{Workers: 2})
	_, err = a.Decompress(context.Background(), cres.ContainerPath, "", t.TempDir())
	require.ErrorIs(t, err, ErrCorruptContainer)
}

func TestDecompressBadHeaderBytes(t *testing.T) {
	// Offsets past the magic: version, codec, digest kind.
	for name, off := range map[string]int{
		"Version": 4,
		"Codec":   5,
		"Digest":  6,
	} {
		t.Run(name, func(t *testing.T) {
			cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
			raw, err := os.ReadFile(cres.ContainerPath)
			require.NoError(t, err)
			raw[off] = 0xEE
			require.NoError(t, os.WriteFile(cres.ContainerPath, raw, 0o644))

			a := newTestArchiver(t, Options{Workers: 2})
			_, err = a.Decompress(context.Background(), cres.ContainerPath, "", t.TempDir())
			require.ErrorIs(t, err, ErrCorruptContainer)
		})
	}
}

func TestDecompressTrailingBytes(t *testing.T) {
	cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
	f, err := os.OpenFile(cres.ContainerPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte{0x00})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	a := newTestArchiver(t, Options{Workers: 2})
	outDir := t.TempDir()
	_, err = a.Decompress(context.Background(), cres.ContainerPath, "", outDir)
	require.ErrorIs(t, err, ErrCorruptContainer)
	requireNoOutput(t, outDir)
}

func TestDecompressCorruptPayload(t *testing.T) {
	// Flipping payload bytes keeps the framing intact, so the damage
	// must surface through ledger verification.
	cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
	raw, err := os.ReadFile(cres.ContainerPath)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(cres.ContainerPath, raw, 0o644))

	t.Run("Strict", func(t *testing.T) {
		a := newTestArchiver(t, Options{Workers: 2, Strict: true})
		outDir := t.TempDir()
		_, err := a.Decompress(context.Background(), cres.ContainerPath, cres.LedgerPath, outDir)
		if err == nil {
			t.Skip("flipped byte still decodes to the original chunk")
		}
		requireNoOutput(t, outDir)
	})
}

func TestDecompressLedgerMismatch(t *testing.T) {
	tamper := func(t *testing.T, cres CompressResult) {
		t.Helper()
		raw, err := os.ReadFile(cres.LedgerPath)
		require.NoError(t, err)
		lines := strings.Split(string(raw), "\n")
		fields := strings.Fields(lines[0])
		require.Len(t, fields, 4)
		d := []byte(fields[3])
		if d[0] == '0' {
			d[0] = 'f'
		} else {
			d[0] = '0'
		}
		fields[3] = string(d)
		lines[0] = strings.Join(fields, " ")
		require.NoError(t, os.WriteFile(cres.LedgerPath, []byte(strings.Join(lines, "\n")), 0o644))
	}

	t.Run("Default", func(t *testing.T) {
		cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
		tamper(t, cres)

		a := newTestArchiver(t, Options{Workers: 2})
		res, err := a.Decompress(context.Background(), cres.ContainerPath, cres.LedgerPath, t.TempDir())
		require.NoError(t, err, "default mode reports mismatches without aborting")
		require.True(t, res.Verified)
		require.Equal(t, 1, res.Mismatches)
	})
	t.Run("Strict", func(t *testing.T) {
		cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
		tamper(t, cres)

		a := newTestArchiver(t, Options{Workers: 2, Strict: true})
		outDir := t.TempDir()
		_, err := a.Decompress(context.Background(), cres.ContainerPath, cres.LedgerPath, outDir)
		require.ErrorIs(t, err, ErrIntegrityMismatch)
		requireNoOutput(t, outDir)
	})
}

func TestDecompressUnusableLedger(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
		require.NoError(t, os.WriteFile(cres.LedgerPath, []byte("not a ledger\n"), 0o644))

		a := newTestArchiver(t, Options{Workers: 2})
		res, err := a.Decompress(context.Background(), cres.ContainerPath, cres.LedgerPath, t.TempDir())
		require.NoError(t, err, "an unusable ledger downgrades to unverified restore")
		require.False(t, res.Verified)
		require.Zero(t, res.Mismatches)
	})
	t.Run("Strict", func(t *testing.T) {
		cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
		require.NoError(t, os.WriteFile(cres.LedgerPath, []byte("not a ledger\n"), 0o644))

		a := newTestArchiver(t, Options{Workers: 2, Strict: true})
		_, err := a.Decompress(context.Background(), cres.ContainerPath, cres.LedgerPath, t.TempDir())
		require.ErrorIs(t, err, ErrIntegrityMismatch)
	})
}

func TestDecompressWithoutLedger(t *testing.T) {
	cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})

	a := newTestArchiver(t, Options{Workers: 2})
	res, err := a.Decompress(context.Background(), cres.ContainerPath, "", t.TempDir())
	require.NoError(t, err)
	require.False(t, res.Verified)
}

func TestDecompressOutputCollision(t *testing.T) {
	// A container that lacks the .cmp suffix restores under its own
	// name: writing into its directory must be refused, not truncate
	// and delete the container mid-read.
	cres := compressFixture(t, Options{Workers: 2, Sizing: FixedSize(8 << 10)})
	plain := strings.TrimSuffix(cres.ContainerPath, ".cmp")
	require.NoError(t, os.Rename(cres.ContainerPath, plain))
	before, err := os.ReadFile(plain)
	require.NoError(t, err)

	a := newTestArchiver(t, Options{Workers: 2})
	_, err = a.Decompress(context.Background(), plain, "", filepath.Dir(plain))
	require.ErrorIs(t, err, ErrInvalidInput)

	after, err := os.ReadFile(plain)
	require.NoError(t, err)
	require.True(t, bytes.Equal(before, after), "container must survive the refused restore")

	// The same container restores fine into another directory.
	res, err := a.Decompress(context.Background(), plain, "", t.TempDir())
	require.NoError(t, err)
	require.Equal(t, cres.OriginalBytes, res.OriginalBytes)
}

func TestDecompressMissingContainer(t *testing.T) {
	a := newTestArchiver(t, Options{Workers: 2})
	_, err := a.Decompress(context.Background(), filepath.Join(t.TempDir(), "nope.cmp"), "", t.TempDir())
	require.Error(t, err)
}

func TestRestoredName(t *testing.T) {
	require.Equal(t, "input.bin", restoredName("/tmp/out/input.bin.cmp"))
	require.Equal(t, "plain", restoredName("plain"))
}
