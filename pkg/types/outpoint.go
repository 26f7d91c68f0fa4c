package types

import "fmt"

// Outpoint identifies the UTXO an input spends: the creating transaction
// and the output's position in it.
type Outpoint struct {
	TxID  Hash   `json:"txid"`
	Index uint32 `json:"index"`
}

// IsZero reports whether the outpoint is unset. Index 0 of the zero
// transaction never exists on the ledger.
func (o Outpoint) IsZero() bool {
	return o.TxID.IsZero() && o.Index == 0
}

// String formats the outpoint as "txid:index" for logs and errors.
func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID.String(), o.Index)
}
