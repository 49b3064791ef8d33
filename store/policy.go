package store

import "time"

// ConsistencyLevel selects how many replicas a read consults.
type ConsistencyLevel uint8

const (
	// ConsistencyOne reads from a single replica (default).
	ConsistencyOne ConsistencyLevel = iota
	// ConsistencyAll consults all replicas before answering.
	ConsistencyAll
)

// CommitLevel selects when a write is acknowledged.
type CommitLevel uint8

const (
	// CommitMaster acknowledges once the master replica has applied the write (default).
	CommitMaster CommitLevel = iota
	// CommitAll acknowledges only after all replicas have applied the write.
	CommitAll
)

const (
	defaultReadTimeout  = time.Second
	defaultWriteTimeout = time.Second
	defaultReadRetries  = 2
	defaultRetrySleep   = 50 * time.Millisecond
)

// ReadSettings is the caller-facing read configuration. Zero values pick
// defaults; policies are built from settings once per facade instance.
type ReadSettings struct {
	Timeout             time.Duration    // total per-operation budget; 0 => 1s
	MaxRetries          int              // additional attempts after the first; <0 => 0, 0 => 2
	SleepBetweenRetries time.Duration    // 0 => 50ms
	Consistency         ConsistencyLevel // default ConsistencyOne
}

// WriteSettings is the caller-facing write configuration. Writes are not
// retried unless MaxRetries is set explicitly; a retried write may be applied
// twice, which is safe for binset's put/delete but worth opting into.
type WriteSettings struct {
	Timeout             time.Duration // 0 => 1s
	MaxRetries          int
	SleepBetweenRetries time.Duration // 0 => 50ms
	TTL                 time.Duration // record expiration; 0 => never expire
	Commit              CommitLevel   // default CommitMaster
}

// ReadPolicy is the immutable per-call read configuration handed to adapters.
// Shared across concurrent calls; never mutated after construction.
type ReadPolicy struct {
	TotalTimeout        time.Duration
	MaxRetries          int
	SleepBetweenRetries time.Duration
	Consistency         ConsistencyLevel
}

// WritePolicy is the immutable per-call write configuration handed to adapters.
// Shared across concurrent calls; per-call TTL overrides go through WithTTL,
// never through mutation.
type WritePolicy struct {
	TotalTimeout        time.Duration
	MaxRetries          int
	SleepBetweenRetries time.Duration
	TTL                 time.Duration
	Commit              CommitLevel
}

// NewReadPolicy builds a ReadPolicy from settings, filling defaults.
func NewReadPolicy(s ReadSettings) *ReadPolicy {
	p := &ReadPolicy{
		TotalTimeout:        s.Timeout,
		MaxRetries:          s.MaxRetries,
		SleepBetweenRetries: s.SleepBetweenRetries,
		Consistency:         s.Consistency,
	}
	if p.TotalTimeout <= 0 {
		p.TotalTimeout = defaultReadTimeout
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	} else if p.MaxRetries == 0 {
		p.MaxRetries = defaultReadRetries
	}
	if p.SleepBetweenRetries <= 0 {
		p.SleepBetweenRetries = defaultRetrySleep
	}
	return p
}

// NewWritePolicy builds a WritePolicy from settings, filling defaults.
func NewWritePolicy(s WriteSettings) *WritePolicy {
	p := &WritePolicy{
		TotalTimeout:        s.Timeout,
		MaxRetries:          s.MaxRetries,
		SleepBetweenRetries: s.SleepBetweenRetries,
		TTL:                 s.TTL,
		Commit:              s.Commit,
	}
	if p.TotalTimeout <= 0 {
		p.TotalTimeout = defaultWriteTimeout
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.SleepBetweenRetries <= 0 {
		p.SleepBetweenRetries = defaultRetrySleep
	}
	if p.TTL < 0 {
		p.TTL = 0
	}
	return p
}

// WithTTL returns an independent copy of p with the expiration replaced.
// The receiver is left untouched so concurrent callers sharing it are unaffected.
func (p *WritePolicy) WithTTL(ttl time.Duration) *WritePolicy {
	cp := *p
	cp.TTL = ttl
	return &cp
}
