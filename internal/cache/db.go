// Package cache provides a key-value cache for immutable ledger data.
//
// The engine never caches UTXO state: roles are re-located from a fresh
// snapshot on every operation. What it does cache is data the ledger can
// never rewrite — raw transactions by txid — so record resolution and
// history replay do not refetch the same transactions over and over.
package cache

// DB is the interface for key-value storage backing the cache.
type DB interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
	// ForEach iterates over all keys with the given prefix.
	// The callback receives a copy of the key and value.
	// Return a non-nil error from fn to stop iteration early.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}
