package store

import (
	"testing"
	"time"
)

func TestReadPolicyDefaults(t *testing.T) {
	p := NewReadPolicy(ReadSettings{})
	if p.TotalTimeout != time.Second {
		t.Fatalf("timeout default = %v", p.TotalTimeout)
	}
	if p.MaxRetries != 2 {
		t.Fatalf("retries default = %d", p.MaxRetries)
	}
	if p.SleepBetweenRetries != 50*time.Millisecond {
		t.Fatalf("sleep default = %v", p.SleepBetweenRetries)
	}
	if p.Consistency != ConsistencyOne {
		t.Fatalf("consistency default = %v", p.Consistency)
	}

	// Explicit no-retry reads.
	if p := NewReadPolicy(ReadSettings{MaxRetries: -1}); p.MaxRetries != 0 {
		t.Fatalf("MaxRetries -1 should mean no retries, got %d", p.MaxRetries)
	}
}

func TestWritePolicyDefaults(t *testing.T) {
	p := NewWritePolicy(WriteSettings{})
	if p.TotalTimeout != time.Second {
		t.Fatalf("timeout default = %v", p.TotalTimeout)
	}
	if p.MaxRetries != 0 {
		t.Fatalf("writes must not retry by default, got %d", p.MaxRetries)
	}
	if p.TTL != 0 {
		t.Fatalf("ttl default = %v", p.TTL)
	}
	if p.Commit != CommitMaster {
		t.Fatalf("commit default = %v", p.Commit)
	}

	if p := NewWritePolicy(WriteSettings{TTL: -time.Minute}); p.TTL != 0 {
		t.Fatalf("negative settings ttl should clamp to 0, got %v", p.TTL)
	}
}

func TestWritePolicyWithTTLClones(t *testing.T) {
	base := NewWritePolicy(WriteSettings{TTL: time.Hour, Timeout: 2 * time.Second})
	clone := base.WithTTL(time.Minute)

	if clone == base {
		t.Fatalf("WithTTL returned the receiver")
	}
	if clone.TTL != time.Minute {
		t.Fatalf("clone ttl = %v", clone.TTL)
	}
	if base.TTL != time.Hour {
		t.Fatalf("receiver mutated: ttl = %v", base.TTL)
	}
	if clone.TotalTimeout != base.TotalTimeout || clone.MaxRetries != base.MaxRetries {
		t.Fatalf("clone dropped unrelated fields: %+v vs %+v", clone, base)
	}
}
