// Package binset is a thin asynchronous facade over a key-value store client,
// exposing typed get/put/delete operations on bins (named fields) within sets
// (table-like groupings) of a namespace.
//
// Components:
//   - store.Client: callback-style native client (store/redis for a real
//     deployment, store/local for in-process use).
//   - keyenc.Encoder[K]: injective user-key -> bytes mapping.
//   - codec.Codec[V]: (de)serializes bin values V <-> []byte.
//   - store.ReadPolicy / store.WritePolicy: per-call timeout, retry,
//     consistency and expiration, built once from settings at construction.
//
// Every operation returns a *Future that the client's callback resolves exactly
// once. Absence is a normal outcome, never an error: Get reports found=false,
// MultiGet partitions keys into values and missing, Delete reports existed=false.
// Only transport, policy and serialization failures fail a future.
//
// A per-call TTL on Put clones the shared write policy instead of mutating it,
// so concurrent writers with different expirations never race on policy state.
package binset
