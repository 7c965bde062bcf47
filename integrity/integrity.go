// Package integrity implements chunk digest backends.
//
// A run picks a digest Class once: checksum for cheap corruption
// detection, crypto when the fingerprint is authoritative for trust.
// Each class has an accelerated backend that is only selected when the
// CPU has the SIMD features it is tuned for, and a software backend
// that always works. The concrete Kind actually used is recorded in
// the container header, so verification recomputes the same algorithm
// regardless of the verifying machine.
package integrity

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/go-faster/errors"
	"github.com/segmentio/asm/cpu"
	"github.com/segmentio/asm/cpu/x86"
)

//go:generate go run github.com/dmarkham/enumer -transform snake_upper -type Kind -trimprefix Kind -output kind_enum.go
//go:generate go run github.com/dmarkham/enumer -transform snake_upper -type Class -trimprefix Class -output class_enum.go

// Kind is a concrete digest algorithm.
type Kind byte

const (
	KindCity128 Kind = iota
	KindFNV128
	KindBLAKE3
	KindSHA256
)

// Size reports digest width in bytes.
func (k Kind) Size() int {
	switch k {
	case KindCity128, KindFNV128:
		return 16
	default:
		return 32
	}
}

// Class selects the digest family for a run.
type Class byte

const (
	// ClassChecksum detects corruption. Fast, not tamper-proof.
	ClassChecksum Class = iota
	// ClassCrypto is authoritative for trust decisions.
	ClassCrypto
)

// Digest is a chunk fingerprint.
type Digest []byte

// String returns the hexadecimal form used by the ledger.
func (d Digest) String() string { return hex.EncodeToString(d) }

// Backend computes chunk digests. Implementations are stateless and
// safe for concurrent use.
type Backend interface {
	Kind() Kind
	Sum(p []byte) (Digest, error)
}

var bin = binary.LittleEndian

var probeVector = []byte("blockpack integrity probe")

// Accelerated returns the accelerated backend for class, or an error
// when the CPU features it is tuned for are missing or the self test
// fails. An unavailable accelerated backend signals failure here
// instead of crashing at digest time.
func Accelerated(c Class) (Backend, error) {
	var b Backend
	switch c {
	case ClassChecksum:
		if !cpu.X86.Has(x86.SSE42) {
			return nil, errors.New("city128: SSE4.2 not available")
		}
		b = city128{}
	case ClassCrypto:
		if !cpu.X86.Has(x86.AVX2) && !cpu.X86.Has(x86.SSE41) {
			return nil, errors.New("blake3: AVX2 or SSE4.1 not available")
		}
		b = blake3Backend{}
	default:
		return nil, errors.Errorf("unknown digest class: %v", c)
	}
	if _, err := b.Sum(probeVector); err != nil {
		return nil, errors.Wrap(err, "self test")
	}
	return b, nil
}

// Software returns the always-available backend for class.
func Software(c Class) Backend {
	if c == ClassCrypto {
		return sha256Backend{}
	}
	return fnv128{}
}

// Select probes the accelerated backend for class and falls back to
// the software one. The choice holds for the whole run: backends are
// never mixed per chunk.
func Select(c Class) Backend {
	if b, err := Accelerated(c); err == nil {
		return b
	}
	return Software(c)
}

// FromKind returns the backend computing exactly the recorded
// algorithm. Every kind is constructible on every machine: the
// acceleration probe governs selection for new runs, not verification.
func FromKind(k Kind) (Backend, error) {
	switch k {
	case KindCity128:
		return city128{}, nil
	case KindFNV128:
		return fnv128{}, nil
	case KindBLAKE3:
		return blake3Backend{}, nil
	case KindSHA256:
		return sha256Backend{}, nil
	default:
		return nil, errors.Errorf("unknown digest kind: %v", k)
	}
}
