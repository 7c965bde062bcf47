package integrity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackends(t *testing.T) {
	for _, k := range KindValues() {
		t.Run(k.String(), func(t *testing.T) {
			b, err := FromKind(k)
			require.NoError(t, err)
			require.Equal(t, k, b.Kind())

			a1, err := b.Sum([]byte("alpha"))
			require.NoError(t, err)
			a2, err := b.Sum([]byte("alpha"))
			require.NoError(t, err)
			require.Equal(t, a1, a2, "digest must be deterministic")
			require.Len(t, a1, k.Size())
			require.Len(t, a1.String(), 2*k.Size())

			other, err := b.Sum([]byte("beta"))
			require.NoError(t, err)
			require.NotEqual(t, a1, other)

			empty, err := b.Sum(nil)
			require.NoError(t, err)
			require.Len(t, empty, k.Size())
		})
	}
}

func TestFromKindUnknown(t *testing.T) {
	_, err := FromKind(Kind(0xFF))
	require.Error(t, err)
}

func TestSoftware(t *testing.T) {
	require.Equal(t, KindFNV128, Software(ClassChecksum).Kind())
	require.Equal(t, KindSHA256, Software(ClassCrypto).Kind())
}

func TestSelect(t *testing.T) {
	// Whatever the probe decides, the selected backend must stay inside
	// its class and be reconstructible from the recorded kind.
	for _, tc := range []struct {
		class Class
		kinds []Kind
	}{
		{ClassChecksum, []Kind{KindCity128, KindFNV128}},
		{ClassCrypto, []Kind{KindBLAKE3, KindSHA256}},
	} {
		t.Run(tc.class.String(), func(t *testing.T) {
			b := Select(tc.class)
			require.Contains(t, tc.kinds, b.Kind())

			v, err := FromKind(b.Kind())
			require.NoError(t, err)
			d1, err := b.Sum(probeVector)
			require.NoError(t, err)
			d2, err := v.Sum(probeVector)
			require.NoError(t, err)
			require.Equal(t, d1, d2)
		})
	}
}

func TestAccelerated(t *testing.T) {
	for _, c := range ClassValues() {
		b, err := Accelerated(c)
		if err != nil {
			t.Logf("%s: accelerated backend unavailable: %v", c, err)
			continue
		}
		d, err := b.Sum(probeVector)
		require.NoError(t, err)
		require.Len(t, d, b.Kind().Size())
	}
	_, err := Accelerated(Class(0xFF))
	require.Error(t, err)
}

func TestKindSize(t *testing.T) {
	require.Equal(t, 16, KindCity128.Size())
	require.Equal(t, 16, KindFNV128.Size())
	require.Equal(t, 32, KindBLAKE3.Size())
	require.Equal(t, 32, KindSHA256.Size())
}

func TestKindsAreDistinct(t *testing.T) {
	// Two algorithms agreeing on a digest would make the recorded kind
	// meaningless.
	input := []byte("blockpack")
	seen := map[string]Kind{}
	for _, k := range KindValues() {
		b, err := FromKind(k)
		require.NoError(t, err)
		d, err := b.Sum(input)
		require.NoError(t, err)
		prev, ok := seen[d.String()]
		require.False(t, ok, "%s and %s collide", prev, k)
		seen[d.String()] = k
	}
}
