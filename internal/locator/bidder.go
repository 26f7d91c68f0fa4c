package locator

import (
	"context"
	"fmt"

	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// PreviousBidder resolves the refund address of a running auction: the
// transaction that created the auction output carries the bidder's change
// as its last pay-to-pubkey-hash output.
func PreviousBidder(ctx context.Context, src ledger.Source, auction Auction) (types.Address, error) {
	transaction, err := src.Transaction(ctx, auction.UTXO.Outpoint.TxID)
	if err != nil {
		return types.Address{}, fmt.Errorf("auction tx %s: %w", auction.UTXO.Outpoint.TxID, err)
	}

	for i := len(transaction.Outputs) - 1; i >= 0; i-- {
		out := transaction.Outputs[i]
		if out.Script.Type != types.ScriptTypeP2PKH {
			continue
		}
		addr, ok := out.Script.Address()
		if !ok {
			continue
		}
		return addr, nil
	}
	return types.Address{}, fmt.Errorf("auction tx %s: no bidder output", auction.UTXO.Outpoint.TxID)
}
