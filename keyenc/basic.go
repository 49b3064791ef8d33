package keyenc

import "encoding/binary"

// String encodes a string key as its UTF-8 bytes. The zero value is ready to use.
type String struct{}

var _ Encoder[string] = String{}

func (String) Encode(k string) ([]byte, error) { return []byte(k), nil }

// Uint64 encodes an integer key as 8 big-endian bytes. Fixed width keeps the
// encoding injective and preserves numeric order in the byte form.
type Uint64 struct{}

var _ Encoder[uint64] = Uint64{}

func (Uint64) Encode(k uint64) ([]byte, error) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], k)
	return b[:], nil
}
