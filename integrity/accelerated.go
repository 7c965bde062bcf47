package integrity

import (
	"github.com/go-faster/city"
	"github.com/zeebo/blake3"
)

// city128 is the accelerated checksum backend.
type city128 struct{}

func (city128) Kind() Kind { return KindCity128 }

func (city128) Sum(p []byte) (Digest, error) {
	h := city.CH128(p)
	d := make(Digest, 16)
	bin.PutUint64(d[0:8], h.Low)
	bin.PutUint64(d[8:16], h.High)
	return d, nil
}

// blake3Backend is the accelerated cryptographic backend.
type blake3Backend struct{}

func (blake3Backend) Kind() Kind { return KindBLAKE3 }

func (blake3Backend) Sum(p []byte) (Digest, error) {
	sum := blake3.Sum256(p)
	return Digest(sum[:]), nil
}
