package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// ErrNotCached is returned when a key is absent from the cache.
var ErrNotCached = errors.New("not cached")

// Key prefix for raw transactions: "tx/" + txid bytes.
var txPrefix = []byte("tx/")

// TxCache stores fetched transactions keyed by txid. A transaction's content
// is fixed by its id, so entries never need invalidation.
type TxCache struct {
	db DB
}

// NewTxCache creates a transaction cache over the given DB.
func NewTxCache(db DB) *TxCache {
	return &TxCache{db: db}
}

func txKey(id types.Hash) []byte {
	key := make([]byte, len(txPrefix)+types.HashSize)
	copy(key, txPrefix)
	copy(key[len(txPrefix):], id[:])
	return key
}

// Get returns the cached transaction for id, or ErrNotCached.
func (c *TxCache) Get(id types.Hash) (*tx.Transaction, error) {
	data, err := c.db.Get(txKey(id))
	if err != nil {
		return nil, err
	}
	var transaction tx.Transaction
	if err := json.Unmarshal(data, &transaction); err != nil {
		return nil, fmt.Errorf("decode cached tx %s: %w", id, err)
	}
	return &transaction, nil
}

// Put stores a transaction under its id.
func (c *TxCache) Put(id types.Hash, transaction *tx.Transaction) error {
	data, err := json.Marshal(transaction)
	if err != nil {
		return fmt.Errorf("encode tx %s: %w", id, err)
	}
	return c.db.Put(txKey(id), data)
}

// Close closes the underlying DB.
func (c *TxCache) Close() error {
	return c.db.Close()
}
