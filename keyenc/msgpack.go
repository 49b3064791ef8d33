package keyenc

import "github.com/vmihailenco/msgpack/v5"

// Msgpack encodes keys with vmihailenco/msgpack/v5. More compact than CBOR for
// small composite keys; prefer CBORDet when you need a standardized canonical
// form. The zero value is ready to use.
type Msgpack[K any] struct{}

func (Msgpack[K]) Encode(k K) ([]byte, error) {
	return msgpack.Marshal(k)
}
