package blockpack

import (
	"github.com/go-faster/errors"

	"github.com/go-faster/blockpack/container"
)

var (
	// ErrInvalidInput reports an empty source or malformed parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptContainer reports a container that cannot be trusted:
	// bad magic, inconsistent lengths, truncation or a decoded size
	// that disagrees with the record.
	ErrCorruptContainer = container.ErrCorrupt

	// ErrIntegrityMismatch reports a ledger digest disagreeing with the
	// recomputed one in strict mode.
	ErrIntegrityMismatch = errors.New("integrity mismatch")
)
