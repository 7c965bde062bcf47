package container

import (
	"bufio"
	"io"

	"github.com/go-faster/errors"
)

// Reader implements strict container format decoding from buffered
// reader. Truncation surfaces as ErrCorrupt: a container that ends
// early cannot be distinguished from one that was never finished.
type Reader struct {
	s *bufio.Reader
	b [8]byte
}

// ReadFull reads len(p) bytes.
func (r *Reader) ReadFull(p []byte) error {
	if _, err := io.ReadFull(r.s, p); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return errors.Wrap(ErrCorrupt, "truncated")
		}
		return errors.Wrap(err, "read")
	}
	return nil
}

// Byte decodes uint8 value.
func (r *Reader) Byte() (byte, error) {
	if err := r.ReadFull(r.b[:1]); err != nil {
		return 0, err
	}
	return r.b[0], nil
}

// UInt32 decodes uint32 value.
func (r *Reader) UInt32() (uint32, error) {
	if err := r.ReadFull(r.b[:4]); err != nil {
		return 0, err
	}
	return bin.Uint32(r.b[:4]), nil
}

// UInt64 decodes uint64 value.
func (r *Reader) UInt64() (uint64, error) {
	if err := r.ReadFull(r.b[:8]); err != nil {
		return 0, err
	}
	return bin.Uint64(r.b[:8]), nil
}

// Tail reports whether any bytes remain past the last record.
func (r *Reader) Tail() (bool, error) {
	if _, err := r.s.ReadByte(); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, errors.Wrap(err, "read")
	}
	return true, nil
}

const defaultReaderSize = 1 << 20

// NewReader initializes new Reader from provided io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		s: bufio.NewReaderSize(r, defaultReaderSize),
	}
}
