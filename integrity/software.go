package integrity

import (
	"crypto/sha256"
	"hash/fnv"

	"github.com/go-faster/errors"
)

// fnv128 is the software checksum backend.
type fnv128 struct{}

func (fnv128) Kind() Kind { return KindFNV128 }

func (fnv128) Sum(p []byte) (Digest, error) {
	h := fnv.New128a()
	if _, err := h.Write(p); err != nil {
		return nil, errors.Wrap(err, "write")
	}
	return Digest(h.Sum(nil)), nil
}

// sha256Backend is the software cryptographic backend.
type sha256Backend struct{}

func (sha256Backend) Kind() Kind { return KindSHA256 }

func (sha256Backend) Sum(p []byte) (Digest, error) {
	sum := sha256.Sum256(p)
	return Digest(sum[:]), nil
}
