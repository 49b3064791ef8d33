package binset

import (
	"context"
	"time"

	c "github.com/keystrata/binset/codec"
	ke "github.com/keystrata/binset/keyenc"
	"github.com/keystrata/binset/store"
)

// GetResult carries a single-bin read: Found is false when the record or the
// bin is absent, which is a normal outcome, not an error.
type GetResult[V any] struct {
	Value V
	Found bool
}

// MultiResult partitions a batched single-bin read: every unique input key
// lands in exactly one of Values or Missing.
type MultiResult[K comparable, V any] struct {
	Values  map[K]V
	Missing []K
}

// MultiBinsResult partitions a batched multi-bin read. A key appears in Values
// when at least one requested bin exists on its record; per-key maps contain
// only the bins that exist.
type MultiBinsResult[K comparable, V any] struct {
	Values  map[K]map[string]V
	Missing []K
}

// Ack is the empty payload of write futures; only the error matters.
type Ack struct{}

// SetOps binds a (namespace, set) pair to typed, asynchronous operations over a
// connected store client. Instances are built once and reused; every call is
// independent and safe to issue concurrently with any other.
//
// The bin parameter defaults to store.DefaultBin (""), the record's single
// unnamed value. A ttl of 0 on writes means "use the shared write policy".
type SetOps[K comparable, V any] interface {
	// Single-record reads. A nil or empty bins slice reads all bins.
	Get(key K, bin string) *Future[GetResult[V]]
	GetBins(key K, bins []string) *Future[map[string]V]

	// Batched reads. Exactly one disposition per unique input key.
	MultiGet(keys []K, bin string) *Future[MultiResult[K, V]]
	MultiGetBins(keys []K, bins []string) *Future[MultiBinsResult[K, V]]

	// Writes. A ttl > 0 builds a fresh policy clone for this call only;
	// ttl < 0 fails with a PolicyError.
	Put(key K, value V, bin string, ttl time.Duration) *Future[Ack]

	// PutRaw writes raw[off:off+n] without copying or serializing. The window
	// is only read during the call and never retained, so it may be backed by
	// a pooled buffer the caller reuses afterwards.
	PutRaw(key K, raw []byte, off, n int, bin string, ttl time.Duration) *Future[Ack]

	// Delete removes a bin, or the whole record for the default bin. The
	// resolved bool reports whether anything existed; absence is not an error.
	Delete(key K, bin string) *Future[bool]

	Close(ctx context.Context) error
}

// Options configure a SetOps facade.
// Namespace, Set, Client, KeyEnc and Codec are required; the rest default.
type Options[K comparable, V any] struct {
	// Required
	Namespace string
	Set       string
	Client    store.Client
	KeyEnc    ke.Encoder[K]
	Codec     c.Codec[V]

	// Policy settings; zero values pick the store package defaults.
	Read  store.ReadSettings
	Write store.WriteSettings

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

func New[K comparable, V any](opts Options[K, V]) (SetOps[K, V], error) {
	return newSetOps[K, V](opts)
}
