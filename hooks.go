package binset

import "time"

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the facade calls them on hot
// paths, inside store-client callbacks. Wrap with hooks/async to decouple.
type Hooks interface {
	// A user key could not be encoded; the operation failed before any request.
	KeyEncodeError(op string, err error)

	// The store client reported a transport/server failure for an operation.
	TransportError(op, namespace, set string, err error)

	// A stored bin payload could not be decoded into V.
	DecodeError(op, bin string, err error)

	// A per-call TTL override built a fresh write-policy clone.
	TTLOverride(op string, ttl time.Duration)

	// A batch response did not line up with the request (want != got records).
	BatchMisaligned(op string, want, got int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) KeyEncodeError(string, error)                 {}
func (NopHooks) TransportError(string, string, string, error) {}
func (NopHooks) DecodeError(string, string, error)            {}
func (NopHooks) TTLOverride(string, time.Duration)            {}
func (NopHooks) BatchMisaligned(string, int, int)             {}
