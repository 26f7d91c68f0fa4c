package ledger

import (
	"context"
	"errors"

	"github.com/nomen-protocol/nomen-go/internal/cache"
	"github.com/nomen-protocol/nomen-go/internal/log"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// CachedSource wraps a Source with a transaction cache. Only Transaction
// lookups are cached: a txid's content is immutable, while UTXO sets and
// histories change with every block and must always be fetched fresh.
type CachedSource struct {
	src Source
	txs *cache.TxCache
}

// NewCachedSource wraps src with the given transaction cache.
func NewCachedSource(src Source, txs *cache.TxCache) *CachedSource {
	return &CachedSource{src: src, txs: txs}
}

// UTXOs passes through to the underlying source.
func (c *CachedSource) UTXOs(ctx context.Context, addr types.Address) ([]UTXO, error) {
	return c.src.UTXOs(ctx, addr)
}

// History passes through to the underlying source.
func (c *CachedSource) History(ctx context.Context, addr types.Address) ([]HistoryItem, error) {
	return c.src.History(ctx, addr)
}

// Transaction returns the cached transaction if present, fetching and
// caching it otherwise. Cache write failures are logged, not fatal: the
// fetched transaction is still returned.
func (c *CachedSource) Transaction(ctx context.Context, id types.Hash) (*tx.Transaction, error) {
	cached, err := c.txs.Get(id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrNotCached) {
		log.Cache.Warn().Err(err).Str("txid", id.String()).Msg("cache read failed")
	}

	transaction, err := c.src.Transaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.txs.Put(id, transaction); err != nil {
		log.Cache.Warn().Err(err).Str("txid", id.String()).Msg("cache write failed")
	}
	return transaction, nil
}
