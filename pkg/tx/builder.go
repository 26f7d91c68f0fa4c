package tx

import (
	"errors"
	"fmt"

	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// Builder errors.
var (
	ErrNoChangeOutput   = errors.New("change output index out of range")
	ErrChangeBelowFee   = errors.New("change output cannot cover the fee")
	ErrBuilderFinalized = errors.New("builder already finalized")
)

// Builder constructs unsigned transaction templates incrementally.
//
// Fee handling is two-phase: assemble the draft with the change output at its
// pre-fee value, then call FinalizeFee, which measures the serialized size of
// the built draft and deducts size*feeRate from the change output. Output
// values are fixed-width in the serialization, so one measurement is exact.
type Builder struct {
	tx        *Transaction
	finalized bool
}

// NewBuilder creates a new transaction builder.
func NewBuilder() *Builder {
	return &Builder{
		tx: &Transaction{Version: 1},
	}
}

// AddInput adds an input referencing a previous output.
func (b *Builder) AddInput(prevOut types.Outpoint) *Builder {
	b.tx.Inputs = append(b.tx.Inputs, Input{PrevOut: prevOut})
	return b
}

// AddOutput adds a plain value output.
func (b *Builder) AddOutput(value uint64, script types.Script) *Builder {
	b.tx.Outputs = append(b.tx.Outputs, Output{Value: value, Script: script})
	return b
}

// AddTokenOutput adds a token-carrying output. The token data is cloned so
// the template never aliases fetched UTXO state.
func (b *Builder) AddTokenOutput(value uint64, script types.Script, token *types.TokenData) *Builder {
	b.tx.Outputs = append(b.tx.Outputs, Output{
		Value:  value,
		Script: script,
		Token:  token.Clone(),
	})
	return b
}

// AddDataOutput adds a zero-value data-carrier output holding payload.
func (b *Builder) AddDataOutput(payload []byte) *Builder {
	b.tx.Outputs = append(b.tx.Outputs, Output{
		Value:  0,
		Script: types.DataCarrier(payload),
	})
	return b
}

// SetLockTime sets the transaction lock time.
func (b *Builder) SetLockTime(lockTime uint64) *Builder {
	b.tx.LockTime = lockTime
	return b
}

// OutputCount returns the number of outputs added so far.
func (b *Builder) OutputCount() int {
	return len(b.tx.Outputs)
}

// FinalizeFee deducts the exact fee for the built draft from the output at
// changeIndex and freezes the builder. The fee is len(SigningBytes())*feeRate.
// Fails without modifying the draft if the change output cannot cover it.
func (b *Builder) FinalizeFee(changeIndex int, feeRate uint64) error {
	if b.finalized {
		return ErrBuilderFinalized
	}
	if changeIndex < 0 || changeIndex >= len(b.tx.Outputs) {
		return fmt.Errorf("%w: %d of %d outputs", ErrNoChangeOutput, changeIndex, len(b.tx.Outputs))
	}

	fee := RequiredFee(b.tx, feeRate)
	change := b.tx.Outputs[changeIndex].Value
	if change < fee {
		return fmt.Errorf("%w: change %d, fee %d", ErrChangeBelowFee, change, fee)
	}

	b.tx.Outputs[changeIndex].Value = change - fee
	b.finalized = true
	return nil
}

// Build returns the constructed transaction.
// Does NOT validate structure — call Validate() separately.
func (b *Builder) Build() *Transaction {
	return b.tx
}
