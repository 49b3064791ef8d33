// Package keyenc maps user key types to their stored byte form.
//
// An Encoder must be deterministic and injective within one (namespace, set):
// two distinct user keys must never encode to the same bytes, since record
// addressing and batch re-keying both hang off the encoded form. The encoders
// here all satisfy that; bring your own only if it does too.
package keyenc

// Encoder encodes a user key K to bytes.
type Encoder[K any] interface {
	Encode(K) ([]byte, error)
}
