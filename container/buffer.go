package container

// Buffer implements container format encoding.
type Buffer struct {
	Buf []byte
}

// Reset buffer to zero length.
func (b *Buffer) Reset() {
	b.Buf = b.Buf[:0]
}

// PutRaw writes v as raw bytes to buffer.
func (b *Buffer) PutRaw(v []byte) {
	b.Buf = append(b.Buf, v...)
}

// PutByte encodes byte as uint8.
func (b *Buffer) PutByte(x byte) {
	b.Buf = append(b.Buf, x)
}

// PutUInt32 encodes x as fixed-width little-endian.
func (b *Buffer) PutUInt32(x uint32) {
	buf := make([]byte, 32/8)
	bin.PutUint32(buf, x)
	b.Buf = append(b.Buf, buf...)
}

// PutUInt64 encodes x as fixed-width little-endian.
func (b *Buffer) PutUInt64(x uint64) {
	buf := make([]byte, 64/8)
	bin.PutUint64(buf, x)
	b.Buf = append(b.Buf, buf...)
}
