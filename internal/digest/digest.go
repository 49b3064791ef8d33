// Package digest computes the native record digest a store addresses records by.
//
// The digest is derived from (set, encoded user key) only; the namespace is kept
// out on purpose so a record keeps its digest when a deployment renames the
// namespace it lives in. Callers that need namespace isolation scope the full
// storage key with the namespace separately.
package digest

import "crypto/sha256"

// Size is the digest width in bytes.
const Size = 20

// Key returns the record digest for an encoded user key within a set.
// A zero byte separates set and key so ("ab","c") and ("a","bc") cannot collide.
func Key(set string, encoded []byte) [Size]byte {
	h := sha256.New()
	h.Write([]byte(set))
	h.Write([]byte{0})
	h.Write(encoded)
	var d [Size]byte
	copy(d[:], h.Sum(nil))
	return d
}
