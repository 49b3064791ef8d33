package keyenc

import "github.com/fxamacker/cbor/v2"

// CBORDet encodes composite keys (structs, tuples) using RFC 8949 Core
// Deterministic CBOR, so equal keys always produce identical bytes. The zero
// value is NOT ready to use; construct with NewCBORDet or MustCBORDet.
//
// Injectivity holds as long as K's CBOR form round-trips, which is the case
// for the usual key shapes (strings, integers, flat structs of those).
type CBORDet[K any] struct {
	enc cbor.EncMode
}

var _ Encoder[struct{}] = CBORDet[struct{}]{}

func NewCBORDet[K any]() (CBORDet[K], error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBORDet[K]{}, err
	}
	return CBORDet[K]{enc: em}, nil
}

// MustCBORDet is like NewCBORDet but panics on error. Handy for package-level
// variables in tests and examples.
func MustCBORDet[K any]() CBORDet[K] {
	e, err := NewCBORDet[K]()
	if err != nil {
		panic(err)
	}
	return e
}

func (e CBORDet[K]) Encode(k K) ([]byte, error) { return e.enc.Marshal(k) }
