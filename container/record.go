package container

import "github.com/go-faster/errors"

// Record frames one chunk payload. The payload itself follows the
// record header and is exactly Stored bytes long.
type Record struct {
	Mode     Mode
	Original uint64
	Stored   uint64
}

// EncodeHeader writes the record header to b.
func (rec Record) EncodeHeader(b *Buffer) {
	b.PutByte(byte(rec.Mode))
	b.PutUInt64(rec.Original)
	b.PutUInt64(rec.Stored)
}

// DecodeHeader reads one record header from r and validates it against
// h before the caller allocates the payload buffer.
//
// Raw payloads are stored verbatim, so Stored must equal Original.
// Compressed payloads must be strictly smaller than Original: the
// writer falls back to raw storage whenever compression does not
// shrink a chunk.
func (rec *Record) DecodeHeader(r *Reader, h Header) error {
	m, err := r.Byte()
	if err != nil {
		return errors.Wrap(err, "mode")
	}
	rec.Mode = Mode(m)
	if !rec.Mode.IsAMode() {
		return errors.Wrapf(ErrCorrupt, "storage mode 0x%02x", m)
	}
	if rec.Original, err = r.UInt64(); err != nil {
		return errors.Wrap(err, "original length")
	}
	if rec.Stored, err = r.UInt64(); err != nil {
		return errors.Wrap(err, "stored length")
	}
	if rec.Original == 0 || rec.Original > h.Chunk {
		return errors.Wrapf(ErrCorrupt, "original length %d out of (0, %d]", rec.Original, h.Chunk)
	}
	switch rec.Mode {
	case ModeRaw:
		if rec.Stored != rec.Original {
			return errors.Wrapf(ErrCorrupt, "raw record stores %d bytes, original is %d", rec.Stored, rec.Original)
		}
	case ModeCompressed:
		if rec.Stored == 0 || rec.Stored >= rec.Original {
			return errors.Wrapf(ErrCorrupt, "compressed record stores %d bytes, original is %d", rec.Stored, rec.Original)
		}
	}
	return nil
}
