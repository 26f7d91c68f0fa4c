// Package ledger defines the query transport the engine reads UTXO and
// history state through, plus a JSON-RPC implementation of it.
//
// The engine never writes to the ledger: signing and broadcast are external.
// Fetches are the only suspension points in the engine; failures propagate
// immediately with no internal retries.
package ledger

import (
	"context"

	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// UTXO is an unspent output as reported by the ledger.
type UTXO struct {
	Outpoint types.Outpoint   `json:"outpoint"`
	Value    uint64           `json:"value"`
	Script   types.Script     `json:"script"`
	Token    *types.TokenData `json:"token,omitempty"`
	Height   uint64           `json:"height"`
}

// HistoryItem is one entry of an address's transaction history.
type HistoryItem struct {
	TxID   types.Hash `json:"txid"`
	Height uint64     `json:"height"`
}

// Source is the read-only query transport. Implementations must be safe for
// concurrent use: the engine issues independent fetches in parallel.
type Source interface {
	// UTXOs returns the current unspent outputs at an address.
	UTXOs(ctx context.Context, addr types.Address) ([]UTXO, error)
	// History returns the confirmed transaction history of an address in
	// ledger order (oldest first).
	History(ctx context.Context, addr types.Address) ([]HistoryItem, error)
	// Transaction fetches a transaction by id.
	Transaction(ctx context.Context, id types.Hash) (*tx.Transaction, error)
}
