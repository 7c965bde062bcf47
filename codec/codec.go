// Package codec implements per-chunk block compression.
package codec

//go:generate go run github.com/dmarkham/enumer -transform snake_upper -type Method -trimprefix Method -output method_enum.go

// Method is compression codec.
type Method byte

const (
	MethodLZ4 Method = iota
	MethodLZ4HC
	MethodZSTD
	MethodSnappy
)

// Level is compression level. Zero selects the method default.
type Level int

const (
	LevelLZ4HCDefault Level = 9
	LevelLZ4HCMax     Level = 12
)

// maxDecodedSize caps the memory a single hostile block may claim
// during decoding.
const maxDecodedSize = 1 << 30
