package binset

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrNilClient     = errors.New("binset: client is required")
	ErrNilKeyEncoder = errors.New("binset: key encoder is required")
	ErrNilCodec      = errors.New("binset: codec is required")
	ErrNoNamespace   = errors.New("binset: namespace is required")
	ErrNoSet         = errors.New("binset: set is required")
)

// KeyEncodeError reports that the user key could not be encoded. No request is
// issued when encoding fails.
type KeyEncodeError struct {
	Op  string
	Err error
}

func (e *KeyEncodeError) Error() string {
	return fmt.Sprintf("binset: %s: key encode failed: %v", e.Op, e.Err)
}

func (e *KeyEncodeError) Unwrap() error { return e.Err }

// SerializationError reports that a bin value could not be encoded for a write
// or decoded from a read.
type SerializationError struct {
	Op  string
	Bin string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("binset: %s: bin %q: %v", e.Op, e.Bin, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// TransportError wraps a failure reported by the store client: timeout,
// connection loss, or a server-side rejection. The underlying error is carried
// unmodified and reachable via errors.Is / errors.As.
type TransportError struct {
	Op        string
	Namespace string
	Set       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("binset: %s %s.%s: %v", e.Op, e.Namespace, e.Set, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// PolicyError reports a malformed per-call parameter (negative TTL, byte range
// out of bounds). No request is issued.
type PolicyError struct {
	Op     string
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("binset: %s: %s", e.Op, e.Reason)
}
