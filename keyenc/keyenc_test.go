package keyenc

import (
	"bytes"
	"testing"
)

func TestUint64FixedWidth(t *testing.T) {
	enc := Uint64{}
	seen := make(map[string]uint64)
	for _, k := range []uint64{0, 1, 255, 256, 1 << 32, ^uint64(0)} {
		b, err := enc.Encode(k)
		if err != nil {
			t.Fatalf("Encode(%d): %v", k, err)
		}
		if len(b) != 8 {
			t.Fatalf("Encode(%d) width = %d, want 8", k, len(b))
		}
		if prev, ok := seen[string(b)]; ok {
			t.Fatalf("collision: %d and %d encode identically", prev, k)
		}
		seen[string(b)] = k
	}
}

func TestUint64PreservesOrder(t *testing.T) {
	enc := Uint64{}
	a, _ := enc.Encode(41)
	b, _ := enc.Encode(42)
	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("byte order does not follow numeric order")
	}
}

type compositeKey struct {
	Tenant string `cbor:"t"`
	ID     uint64 `cbor:"i"`
}

func TestCBORDetDeterministic(t *testing.T) {
	enc := MustCBORDet[compositeKey]()
	k := compositeKey{Tenant: "acme", ID: 42}

	a, err := enc.Encode(k)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := enc.Encode(k)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("equal keys encoded differently: %x vs %x", a, b)
	}

	c, _ := enc.Encode(compositeKey{Tenant: "acme", ID: 43})
	if bytes.Equal(a, c) {
		t.Fatalf("distinct keys encoded identically")
	}
}

func TestMsgpackDistinctKeys(t *testing.T) {
	enc := Msgpack[compositeKey]{}
	a, err := enc.Encode(compositeKey{Tenant: "a", ID: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := enc.Encode(compositeKey{Tenant: "a", ID: 2})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("distinct keys encoded identically")
	}
}
