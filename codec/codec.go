// Package codec (de)serializes bin values V <-> []byte for storage.
package codec

// Codec encodes/decodes values V to the byte form stored in a bin.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
