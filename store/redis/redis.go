// Package redis adapts a Redis client to the store.Client boundary.
//
// Records map to hashes: one hash per record at "<namespace>:<set>:<digest hex>",
// one hash field per bin (the default bin is the empty field name, which Redis
// hashes permit). Record expiration is key-level, so a TTL set on one bin write
// applies to the whole record, matching record-level expiration semantics.
//
// Consistency and commit levels are accepted but not interpreted: a Redis
// deployment answers from the node the key hashes to, so there is nothing to
// choose between replicas here.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/keystrata/binset/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// Client implements store.Client over a go-redis universal client.
type Client struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ store.Client = (*Client)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this adapter exclusively owns the client
}

func New(cfg Config) (*Client, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Client{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func recordKey(k store.Key) string {
	return k.Namespace + ":" + k.Set + ":" + k.DigestHex()
}

func (c *Client) Get(p *store.ReadPolicy, key store.Key, bins []string, h store.RecordHandler) {
	go func() {
		rec, err := withRetry(p.TotalTimeout, p.MaxRetries, p.SleepBetweenRetries,
			func(ctx context.Context) (*store.Record, error) {
				return c.getOnce(ctx, key, bins)
			})
		h(rec, err)
	}()
}

func (c *Client) BatchGet(p *store.ReadPolicy, keys []store.Key, bins []string, h store.BatchHandler) {
	go func() {
		recs, err := withRetry(p.TotalTimeout, p.MaxRetries, p.SleepBetweenRetries,
			func(ctx context.Context) ([]*store.Record, error) {
				return c.batchOnce(ctx, keys, bins)
			})
		h(recs, err)
	}()
}

func (c *Client) Put(p *store.WritePolicy, key store.Key, bin string, value []byte, h store.WriteHandler) {
	go func() {
		_, err := withRetry(p.TotalTimeout, p.MaxRetries, p.SleepBetweenRetries,
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, c.putOnce(ctx, key, bin, value, p.TTL)
			})
		h(err)
	}()
}

func (c *Client) Delete(p *store.WritePolicy, key store.Key, bin string, h store.DeleteHandler) {
	go func() {
		existed, err := withRetry(p.TotalTimeout, p.MaxRetries, p.SleepBetweenRetries,
			func(ctx context.Context) (bool, error) {
				return c.deleteOnce(ctx, key, bin)
			})
		h(existed, err)
	}()
}

// Close releases the underlying redis client only when this adapter owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (c *Client) Close(context.Context) error {
	if c.closeClient {
		if err := c.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

// withRetry runs fn under the policy's total deadline, retrying on error up to
// maxRetries extra attempts. The deadline covers all attempts, not each one.
func withRetry[T any](total time.Duration, maxRetries int, sleep time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), total)
	defer cancel()

	var out T
	var err error
	for attempt := 0; ; attempt++ {
		out, err = fn(ctx)
		if err == nil || attempt >= maxRetries || ctx.Err() != nil {
			return out, err
		}
		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			return out, err
		}
	}
}

func (c *Client) getOnce(ctx context.Context, key store.Key, bins []string) (*store.Record, error) {
	k := recordKey(key)
	var bm map[string][]byte
	if len(bins) == 0 {
		m, err := c.rdb.HGetAll(ctx, k).Result()
		if err != nil {
			return nil, err
		}
		if len(m) == 0 {
			return nil, nil // HGETALL on a missing key yields an empty map
		}
		bm = make(map[string][]byte, len(m))
		for f, v := range m {
			bm[f] = []byte(v)
		}
	} else {
		vals, err := c.rdb.HMGet(ctx, k, bins...).Result()
		if err != nil {
			return nil, err
		}
		bm = make(map[string][]byte, len(bins))
		for i, v := range vals {
			if s, ok := v.(string); ok {
				bm[bins[i]] = []byte(s)
			}
		}
		if len(bm) == 0 {
			// No requested bin present; indistinguishable from a missing
			// record at this boundary, reported as absent either way.
			return nil, nil
		}
	}
	return &store.Record{Key: key, Bins: bm}, nil
}

func (c *Client) batchOnce(ctx context.Context, keys []store.Key, bins []string) ([]*store.Record, error) {
	pipe := c.rdb.Pipeline()

	var allCmds []*goredis.MapStringStringCmd
	var binCmds []*goredis.SliceCmd
	if len(bins) == 0 {
		allCmds = make([]*goredis.MapStringStringCmd, len(keys))
		for i, key := range keys {
			allCmds[i] = pipe.HGetAll(ctx, recordKey(key))
		}
	} else {
		binCmds = make([]*goredis.SliceCmd, len(keys))
		for i, key := range keys {
			binCmds[i] = pipe.HMGet(ctx, recordKey(key), bins...)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, goredis.Nil) {
		return nil, err
	}

	recs := make([]*store.Record, len(keys))
	for i, key := range keys {
		var bm map[string][]byte
		if allCmds != nil {
			m, err := allCmds[i].Result()
			if err != nil {
				return nil, err
			}
			if len(m) == 0 {
				continue
			}
			bm = make(map[string][]byte, len(m))
			for f, v := range m {
				bm[f] = []byte(v)
			}
		} else {
			vals, err := binCmds[i].Result()
			if err != nil {
				return nil, err
			}
			bm = make(map[string][]byte, len(bins))
			for j, v := range vals {
				if s, ok := v.(string); ok {
					bm[bins[j]] = []byte(s)
				}
			}
			if len(bm) == 0 {
				continue
			}
		}
		recs[i] = &store.Record{Key: key, Bins: bm}
	}
	return recs, nil
}

func (c *Client) putOnce(ctx context.Context, key store.Key, bin string, value []byte, ttl time.Duration) error {
	k := recordKey(key)
	if ttl <= 0 {
		return c.rdb.HSet(ctx, k, bin, value).Err()
	}
	_, err := c.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		p.HSet(ctx, k, bin, value)
		p.Expire(ctx, k, ttl)
		return nil
	})
	return err
}

func (c *Client) deleteOnce(ctx context.Context, key store.Key, bin string) (bool, error) {
	k := recordKey(key)
	if bin == store.DefaultBin {
		n, err := c.rdb.Del(ctx, k).Result()
		return n > 0, err
	}
	n, err := c.rdb.HDel(ctx, k, bin).Result()
	return n > 0, err
}
