// Package local is an in-process store.Client backed by ristretto, intended for
// development and tests. Records are kept as msgpack-encoded bin maps so the
// whole record shares one expiration, like a real record store.
//
// Limitations vs a clustered adapter: the record's TTL is whatever the most
// recent write's policy carried, retry/consistency policy knobs are accepted
// but meaningless in-process, and ristretto's TinyLFU admission may decline a
// write under cost pressure, so a put-then-get miss is possible when the cache
// is at capacity.
package local

import (
	"context"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/keystrata/binset/store"
)

// Client implements store.Client in-process.
type Client struct {
	mu    sync.Mutex // serializes record read-modify-write
	cache *ristretto.Cache
}

var _ store.Client = (*Client)(nil)

type Config struct {
	NumCounters int64 // 0 => 100_000
	MaxCost     int64 // 0 => 64 MiB
	BufferItems int64 // 0 => 64
}

func New(cfg Config) (*Client, error) {
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = 100_000
	}
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = 64 << 20
	}
	if cfg.BufferItems <= 0 {
		cfg.BufferItems = 64
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, err
	}
	return &Client{cache: c}, nil
}

func recordKey(k store.Key) string {
	return k.Namespace + ":" + k.Set + ":" + k.DigestHex()
}

func (c *Client) Get(_ *store.ReadPolicy, key store.Key, bins []string, h store.RecordHandler) {
	go func() {
		c.mu.Lock()
		rec := c.load(key, bins)
		c.mu.Unlock()
		h(rec, nil)
	}()
}

func (c *Client) BatchGet(_ *store.ReadPolicy, keys []store.Key, bins []string, h store.BatchHandler) {
	go func() {
		recs := make([]*store.Record, len(keys))
		c.mu.Lock()
		for i, key := range keys {
			recs[i] = c.load(key, bins)
		}
		c.mu.Unlock()
		h(recs, nil)
	}()
}

func (c *Client) Put(p *store.WritePolicy, key store.Key, bin string, value []byte, h store.WriteHandler) {
	// Copy before the handler fires; the caller may reuse the backing buffer.
	v := append([]byte(nil), value...)
	go func() {
		c.mu.Lock()
		bm := c.loadBins(key)
		if bm == nil {
			bm = make(map[string][]byte, 1)
		}
		bm[bin] = v
		err := c.storeBins(key, bm, p.TTL)
		c.mu.Unlock()
		h(err)
	}()
}

func (c *Client) Delete(p *store.WritePolicy, key store.Key, bin string, h store.DeleteHandler) {
	go func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		bm := c.loadBins(key)
		if bm == nil {
			h(false, nil)
			return
		}
		if bin == store.DefaultBin {
			c.cache.Del(recordKey(key))
			h(true, nil)
			return
		}
		if _, ok := bm[bin]; !ok {
			h(false, nil)
			return
		}
		delete(bm, bin)
		if len(bm) == 0 {
			c.cache.Del(recordKey(key))
			h(true, nil)
			return
		}
		h(true, c.storeBins(key, bm, p.TTL))
	}()
}

func (c *Client) Close(context.Context) error {
	c.cache.Wait()
	c.cache.Close()
	return nil
}

// loadBins returns the decoded bin map for a record, or nil when absent.
// Caller must hold mu.
func (c *Client) loadBins(key store.Key) map[string][]byte {
	v, ok := c.cache.Get(recordKey(key))
	if !ok {
		return nil
	}
	b, _ := v.([]byte)
	if b == nil {
		c.cache.Del(recordKey(key)) // unexpected entry shape; drop
		return nil
	}
	var bm map[string][]byte
	if err := msgpack.Unmarshal(b, &bm); err != nil {
		c.cache.Del(recordKey(key))
		return nil
	}
	return bm
}

func (c *Client) load(key store.Key, bins []string) *store.Record {
	bm := c.loadBins(key)
	if bm == nil {
		return nil
	}
	if len(bins) > 0 {
		filtered := make(map[string][]byte, len(bins))
		for _, b := range bins {
			if v, ok := bm[b]; ok {
				filtered[b] = v
			}
		}
		if len(filtered) == 0 {
			return nil
		}
		bm = filtered
	}
	return &store.Record{Key: key, Bins: bm}
}

// storeBins encodes and writes the record, waiting for the set buffer to drain
// so a subsequent Get observes the write. Caller must hold mu.
func (c *Client) storeBins(key store.Key, bm map[string][]byte, ttl time.Duration) error {
	b, err := msgpack.Marshal(bm)
	if err != nil {
		return err
	}
	c.cache.SetWithTTL(recordKey(key), b, int64(len(b)), ttl)
	c.cache.Wait()
	return nil
}
