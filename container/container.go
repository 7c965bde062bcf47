// Package container implements the blockpack binary container format.
//
// A container is a header followed by one record per chunk, in ascending
// chunk id order. All integer fields are little-endian and fixed width.
package container

import (
	"encoding/binary"

	"github.com/go-faster/errors"
)

//go:generate go run github.com/dmarkham/enumer -transform snake_upper -type Mode -trimprefix Mode -output mode_enum.go

// Mode is per-chunk payload storage mode.
type Mode byte

const (
	// ModeCompressed marks a payload encoded by the run's codec.
	ModeCompressed Mode = 0
	// ModeRaw marks a verbatim payload, used when compression failed or
	// did not shrink the chunk.
	ModeRaw Mode = 1
)

// Magic identifies blockpack containers.
var Magic = [4]byte{'B', 'P', 'A', 'K'}

// Version is the current container format version.
const Version = 1

const (
	// HeaderSize is the encoded header length in bytes.
	HeaderSize = len(Magic) + 3 + 8 + 8 + 4
	// RecordHeaderSize is the encoded record header length in bytes.
	RecordHeaderSize = 1 + 8 + 8

	// MaxChunkSize bounds the nominal chunk size a header may declare.
	// Anything larger is treated as hostile before any allocation.
	MaxChunkSize = 1 << 30
	// MaxChunks bounds the record count a header may declare.
	MaxChunks = 1 << 24
)

// ErrCorrupt reports a container that cannot be trusted: bad magic,
// inconsistent length fields or truncation.
var ErrCorrupt = errors.New("corrupt container")

var bin = binary.LittleEndian
