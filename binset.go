package binset

import (
	"context"
	"fmt"
	"time"

	c "github.com/keystrata/binset/codec"
	ke "github.com/keystrata/binset/keyenc"
	"github.com/keystrata/binset/store"
)

type setOps[K comparable, V any] struct {
	ns     string
	set    string
	client store.Client
	keyEnc ke.Encoder[K]
	codec  c.Codec[V]
	log    Logger
	hooks  Hooks

	// built once; shared read-only across all calls
	read  *store.ReadPolicy
	write *store.WritePolicy
}

func newSetOps[K comparable, V any](opts Options[K, V]) (*setOps[K, V], error) {
	if opts.Client == nil {
		return nil, ErrNilClient
	}
	if opts.KeyEnc == nil {
		return nil, ErrNilKeyEncoder
	}
	if opts.Codec == nil {
		return nil, ErrNilCodec
	}
	if opts.Namespace == "" {
		return nil, ErrNoNamespace
	}
	if opts.Set == "" {
		return nil, ErrNoSet
	}

	s := &setOps[K, V]{
		ns:     opts.Namespace,
		set:    opts.Set,
		client: opts.Client,
		keyEnc: opts.KeyEnc,
		codec:  opts.Codec,
		read:   store.NewReadPolicy(opts.Read),
		write:  store.NewWritePolicy(opts.Write),
	}
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return s, nil
}

func (s *setOps[K, V]) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func (s *setOps[K, V]) nativeKey(op string, key K) (store.Key, error) {
	enc, err := s.keyEnc.Encode(key)
	if err != nil {
		s.hooks.KeyEncodeError(op, err)
		s.log.Warn("key encode failed", Fields{"op": op, "err": err})
		return store.Key{}, &KeyEncodeError{Op: op, Err: err}
	}
	return store.NewKey(s.ns, s.set, enc), nil
}

func (s *setOps[K, V]) transport(op string, err error) error {
	s.hooks.TransportError(op, s.ns, s.set, err)
	s.log.Warn("store operation failed", Fields{"op": op, "ns": s.ns, "set": s.set, "err": err})
	return &TransportError{Op: op, Namespace: s.ns, Set: s.set, Err: err}
}

func (s *setOps[K, V]) Get(key K, bin string) *Future[GetResult[V]] {
	const op = "get"
	k, err := s.nativeKey(op, key)
	if err != nil {
		return failed[GetResult[V]](err)
	}
	f := newFuture[GetResult[V]]()
	s.client.Get(s.read, k, []string{bin}, func(rec *store.Record, err error) {
		if err != nil {
			f.complete(GetResult[V]{}, s.transport(op, err))
			return
		}
		if rec == nil {
			f.complete(GetResult[V]{}, nil)
			return
		}
		raw, ok := rec.Bins[bin]
		if !ok {
			f.complete(GetResult[V]{}, nil)
			return
		}
		v, err := s.codec.Decode(raw)
		if err != nil {
			s.hooks.DecodeError(op, bin, err)
			f.complete(GetResult[V]{}, &SerializationError{Op: op, Bin: bin, Err: err})
			return
		}
		f.complete(GetResult[V]{Value: v, Found: true}, nil)
	})
	return f
}

func (s *setOps[K, V]) GetBins(key K, bins []string) *Future[map[string]V] {
	const op = "get_bins"
	k, err := s.nativeKey(op, key)
	if err != nil {
		return failed[map[string]V](err)
	}
	f := newFuture[map[string]V]()
	s.client.Get(s.read, k, bins, func(rec *store.Record, err error) {
		if err != nil {
			f.complete(nil, s.transport(op, err))
			return
		}
		out := make(map[string]V, len(bins))
		if rec == nil {
			f.complete(out, nil)
			return
		}
		for name, raw := range rec.Bins {
			v, err := s.codec.Decode(raw)
			if err != nil {
				s.hooks.DecodeError(op, name, err)
				f.complete(nil, &SerializationError{Op: op, Bin: name, Err: err})
				return
			}
			out[name] = v
		}
		f.complete(out, nil)
	})
	return f
}

func (s *setOps[K, V]) MultiGet(keys []K, bin string) *Future[MultiResult[K, V]] {
	const op = "multi_get"
	uniq := dedupe(keys)
	res := MultiResult[K, V]{Values: make(map[K]V, len(uniq))}
	if len(uniq) == 0 {
		f := newFuture[MultiResult[K, V]]()
		f.complete(res, nil)
		return f
	}

	nks, err := s.encodeAll(op, uniq)
	if err != nil {
		return failed[MultiResult[K, V]](err)
	}

	f := newFuture[MultiResult[K, V]]()
	s.client.BatchGet(s.read, nks, []string{bin}, func(recs []*store.Record, err error) {
		if err != nil {
			f.complete(MultiResult[K, V]{}, s.transport(op, err))
			return
		}
		if len(recs) != len(uniq) {
			f.complete(MultiResult[K, V]{}, s.misaligned(op, len(uniq), len(recs)))
			return
		}
		// Response is positionally aligned with the request, so results are
		// re-keyed to the caller's original keys with no reverse decoding.
		for i, rec := range recs {
			k := uniq[i]
			raw, ok := binValue(rec, bin)
			if !ok {
				res.Missing = append(res.Missing, k)
				continue
			}
			v, err := s.codec.Decode(raw)
			if err != nil {
				s.hooks.DecodeError(op, bin, err)
				f.complete(MultiResult[K, V]{}, &SerializationError{Op: op, Bin: bin, Err: err})
				return
			}
			res.Values[k] = v
		}
		f.complete(res, nil)
	})
	return f
}

func (s *setOps[K, V]) MultiGetBins(keys []K, bins []string) *Future[MultiBinsResult[K, V]] {
	const op = "multi_get_bins"
	uniq := dedupe(keys)
	res := MultiBinsResult[K, V]{Values: make(map[K]map[string]V, len(uniq))}
	if len(uniq) == 0 {
		f := newFuture[MultiBinsResult[K, V]]()
		f.complete(res, nil)
		return f
	}

	nks, err := s.encodeAll(op, uniq)
	if err != nil {
		return failed[MultiBinsResult[K, V]](err)
	}

	f := newFuture[MultiBinsResult[K, V]]()
	s.client.BatchGet(s.read, nks, bins, func(recs []*store.Record, err error) {
		if err != nil {
			f.complete(MultiBinsResult[K, V]{}, s.transport(op, err))
			return
		}
		if len(recs) != len(uniq) {
			f.complete(MultiBinsResult[K, V]{}, s.misaligned(op, len(uniq), len(recs)))
			return
		}
		for i, rec := range recs {
			k := uniq[i]
			if rec == nil || len(rec.Bins) == 0 {
				res.Missing = append(res.Missing, k)
				continue
			}
			m := make(map[string]V, len(rec.Bins))
			for name, raw := range rec.Bins {
				v, err := s.codec.Decode(raw)
				if err != nil {
					s.hooks.DecodeError(op, name, err)
					f.complete(MultiBinsResult[K, V]{}, &SerializationError{Op: op, Bin: name, Err: err})
					return
				}
				m[name] = v
			}
			res.Values[k] = m
		}
		f.complete(res, nil)
	})
	return f
}

func (s *setOps[K, V]) Put(key K, value V, bin string, ttl time.Duration) *Future[Ack] {
	const op = "put"
	payload, err := s.codec.Encode(value)
	if err != nil {
		return failed[Ack](&SerializationError{Op: op, Bin: bin, Err: err})
	}
	return s.putBytes(op, key, payload, bin, ttl)
}

func (s *setOps[K, V]) PutRaw(key K, raw []byte, off, n int, bin string, ttl time.Duration) *Future[Ack] {
	const op = "put_raw"
	// Each bound is checked on its own so off+n cannot overflow.
	if off < 0 || n < 0 || off > len(raw) || n > len(raw)-off {
		return failed[Ack](&PolicyError{Op: op, Reason: fmt.Sprintf(
			"byte range off=%d n=%d out of bounds for buffer of %d", off, n, len(raw))})
	}
	// Window over the caller's buffer; the client contract forbids retaining
	// it past handler completion, so no defensive copy is taken here.
	return s.putBytes(op, key, raw[off:off+n], bin, ttl)
}

func (s *setOps[K, V]) putBytes(op string, key K, payload []byte, bin string, ttl time.Duration) *Future[Ack] {
	wp, err := s.writePolicy(op, ttl)
	if err != nil {
		return failed[Ack](err)
	}
	k, err := s.nativeKey(op, key)
	if err != nil {
		return failed[Ack](err)
	}
	f := newFuture[Ack]()
	s.client.Put(wp, k, bin, payload, func(err error) {
		if err != nil {
			f.complete(Ack{}, s.transport(op, err))
			return
		}
		f.complete(Ack{}, nil)
	})
	return f
}

// writePolicy returns the shared write policy, or a fresh clone when the call
// overrides the TTL. The shared policy is never mutated.
func (s *setOps[K, V]) writePolicy(op string, ttl time.Duration) (*store.WritePolicy, error) {
	if ttl == 0 {
		return s.write, nil
	}
	if ttl < 0 {
		return nil, &PolicyError{Op: op, Reason: fmt.Sprintf("negative ttl %v", ttl)}
	}
	s.hooks.TTLOverride(op, ttl)
	s.log.Debug("ttl override", Fields{"op": op, "ttl": ttl})
	return s.write.WithTTL(ttl), nil
}

func (s *setOps[K, V]) Delete(key K, bin string) *Future[bool] {
	const op = "delete"
	k, err := s.nativeKey(op, key)
	if err != nil {
		return failed[bool](err)
	}
	f := newFuture[bool]()
	s.client.Delete(s.write, k, bin, func(existed bool, err error) {
		if err != nil {
			f.complete(false, s.transport(op, err))
			return
		}
		f.complete(existed, nil)
	})
	return f
}

func (s *setOps[K, V]) encodeAll(op string, keys []K) ([]store.Key, error) {
	out := make([]store.Key, len(keys))
	for i, k := range keys {
		nk, err := s.nativeKey(op, k)
		if err != nil {
			return nil, err
		}
		out[i] = nk
	}
	return out, nil
}

func (s *setOps[K, V]) misaligned(op string, want, got int) error {
	s.hooks.BatchMisaligned(op, want, got)
	return s.transport(op, fmt.Errorf("batch response misaligned: want %d records, got %d", want, got))
}

func binValue(rec *store.Record, bin string) ([]byte, bool) {
	if rec == nil {
		return nil, false
	}
	raw, ok := rec.Bins[bin]
	return raw, ok
}

// dedupe keeps the first occurrence of each key, preserving order so batch
// responses stay positionally aligned with the encoded request.
func dedupe[K comparable](keys []K) []K {
	if len(keys) < 2 {
		return keys
	}
	seen := make(map[K]struct{}, len(keys))
	out := make([]K, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
