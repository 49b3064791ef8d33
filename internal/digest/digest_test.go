package digest

import "testing"

func TestKeyDeterministic(t *testing.T) {
	a := Key("users", []byte("u:1"))
	b := Key("users", []byte("u:1"))
	if a != b {
		t.Fatalf("same input produced different digests")
	}
}

func TestKeySeparatorPreventsBoundaryCollisions(t *testing.T) {
	// Without a separator, ("ab","c") and ("a","bc") would concatenate equally.
	if Key("ab", []byte("c")) == Key("a", []byte("bc")) {
		t.Fatalf("set/key boundary collision")
	}
}

func TestKeyVariesPerSetAndKey(t *testing.T) {
	base := Key("users", []byte("k"))
	if base == Key("orders", []byte("k")) {
		t.Fatalf("digest should depend on set")
	}
	if base == Key("users", []byte("k2")) {
		t.Fatalf("digest should depend on key bytes")
	}
}
