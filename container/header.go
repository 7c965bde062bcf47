package container

import "github.com/go-faster/errors"

// Header is the container preamble.
//
// Codec and Digest record the codec method and digest algorithm chosen
// for the run, so the container stays self-describing and a verifier
// always recomputes with the algorithm that produced the ledger.
type Header struct {
	Codec  byte
	Digest byte
	Total  uint64 // original file size
	Chunk  uint64 // nominal chunk size
	Chunks uint32 // record count
}

// Encode writes header to b.
func (h Header) Encode(b *Buffer) {
	b.PutRaw(Magic[:])
	b.PutByte(Version)
	b.PutByte(h.Codec)
	b.PutByte(h.Digest)
	b.PutUInt64(h.Total)
	b.PutUInt64(h.Chunk)
	b.PutUInt32(h.Chunks)
}

// Decode reads and validates header from r.
func (h *Header) Decode(r *Reader) error {
	var magic [4]byte
	if err := r.ReadFull(magic[:]); err != nil {
		return errors.Wrap(err, "magic")
	}
	if magic != Magic {
		return errors.Wrapf(ErrCorrupt, "magic %q", magic[:])
	}
	v, err := r.Byte()
	if err != nil {
		return errors.Wrap(err, "version")
	}
	if v != Version {
		return errors.Wrapf(ErrCorrupt, "version %d", v)
	}
	if h.Codec, err = r.Byte(); err != nil {
		return errors.Wrap(err, "codec")
	}
	if h.Digest, err = r.Byte(); err != nil {
		return errors.Wrap(err, "digest")
	}
	if h.Total, err = r.UInt64(); err != nil {
		return errors.Wrap(err, "total size")
	}
	if h.Chunk, err = r.UInt64(); err != nil {
		return errors.Wrap(err, "chunk size")
	}
	if h.Chunks, err = r.UInt32(); err != nil {
		return errors.Wrap(err, "chunk count")
	}
	return h.Validate()
}

// Validate checks header fields against format bounds before any
// record-sized allocation happens.
func (h Header) Validate() error {
	if h.Total == 0 {
		return errors.Wrap(ErrCorrupt, "zero total size")
	}
	if h.Chunk == 0 || h.Chunk > MaxChunkSize {
		return errors.Wrapf(ErrCorrupt, "chunk size %d", h.Chunk)
	}
	if h.Chunks == 0 || h.Chunks > MaxChunks {
		return errors.Wrapf(ErrCorrupt, "chunk count %d", h.Chunks)
	}
	if want := (h.Total + h.Chunk - 1) / h.Chunk; uint64(h.Chunks) != want {
		return errors.Wrapf(ErrCorrupt, "chunk count %d does not cover %d bytes of %d-byte chunks", h.Chunks, h.Total, h.Chunk)
	}
	return nil
}
