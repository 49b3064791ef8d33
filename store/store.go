// Package store defines the client boundary binset drives: record keys, records,
// per-call policies, and the callback-style Client interface a concrete store
// adapter implements (e.g. store/redis for a real cluster, store/local for
// in-process use).
//
// Adapters MUST invoke every handler exactly once, from their own goroutine(s),
// after the operation has completed or failed. Value slices passed to Put are
// read-only for the duration of the call and must not be retained once the
// handler has fired; adapters that keep data around must copy it first, since
// callers may hand in windows over pooled or reused buffers.
package store

import (
	"context"
	"encoding/hex"

	"github.com/keystrata/binset/internal/digest"
)

// DefaultBin is the name of the record's single unnamed value.
const DefaultBin = ""

// Key addresses one record: a logical (namespace, set) pair plus the encoded
// user key and its digest. Adapters address storage by Digest; Encoded is kept
// so batch responses can be mapped back to caller keys.
type Key struct {
	Namespace string
	Set       string
	Encoded   []byte
	Digest    [digest.Size]byte
}

// NewKey builds a Key from an already-encoded user key.
func NewKey(namespace, set string, encoded []byte) Key {
	return Key{
		Namespace: namespace,
		Set:       set,
		Encoded:   encoded,
		Digest:    digest.Key(set, encoded),
	}
}

// DigestHex returns the digest in lowercase hex, handy for composing textual
// storage keys and log fields.
func (k Key) DigestHex() string { return hex.EncodeToString(k.Digest[:]) }

// Record is an addressed container of named bins. Bins holds only the bins the
// operation touched or the filter requested; a missing entry means the bin is
// absent on the record.
type Record struct {
	Key  Key
	Bins map[string][]byte
}

// Handler signatures. recs in BatchHandler is positionally aligned with the
// request keys; a nil entry means that record does not exist.
type (
	RecordHandler func(rec *Record, err error)
	BatchHandler  func(recs []*Record, err error)
	WriteHandler  func(err error)
	DeleteHandler func(existed bool, err error)
)

// Client is the native store client consumed by binset. Implementations own
// connection management, routing and replication; this interface only carries
// per-call policies and callbacks.
//
// A nil or empty bins filter on reads means "all bins".
type Client interface {
	Get(p *ReadPolicy, key Key, bins []string, h RecordHandler)
	BatchGet(p *ReadPolicy, keys []Key, bins []string, h BatchHandler)
	Put(p *WritePolicy, key Key, bin string, value []byte, h WriteHandler)
	Delete(p *WritePolicy, key Key, bin string, h DeleteHandler)

	// Close releases the adapter's resources. In-flight operations may still
	// fire their handlers with an error after Close.
	Close(ctx context.Context) error
}
