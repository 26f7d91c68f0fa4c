package tx

import (
	"errors"
	"fmt"
	"math"

	"github.com/nomen-protocol/nomen-go/config"
	"github.com/nomen-protocol/nomen-go/pkg/crypto"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// Validation errors.
var (
	ErrNoInputs            = errors.New("transaction has no inputs")
	ErrNoOutputs           = errors.New("transaction has no outputs")
	ErrDuplicateInput      = errors.New("duplicate input")
	ErrOutputOverflow      = errors.New("output values overflow")
	ErrZeroOutput          = errors.New("output carries no value, token, or data")
	ErrTooManyInputs       = errors.New("too many inputs")
	ErrTooManyOutputs      = errors.New("too many outputs")
	ErrScriptDataTooLarge  = errors.New("script data too large")
	ErrTokenAmountTooLarge = errors.New("token amount exceeds maximum")
	ErrInvalidSig          = errors.New("invalid signature")
)

// Validate checks template structure. Signatures are not required: the engine
// produces unsigned templates, and signing happens downstream. UTXO existence
// is the ledger's concern, not checked here.
func (tx *Transaction) Validate() error {
	if len(tx.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(tx.Outputs) == 0 {
		return ErrNoOutputs
	}
	if len(tx.Inputs) > config.MaxTxInputs {
		return fmt.Errorf("%w: %d inputs, max %d", ErrTooManyInputs, len(tx.Inputs), config.MaxTxInputs)
	}
	if len(tx.Outputs) > config.MaxTxOutputs {
		return fmt.Errorf("%w: %d outputs, max %d", ErrTooManyOutputs, len(tx.Outputs), config.MaxTxOutputs)
	}

	seen := make(map[types.Outpoint]bool, len(tx.Inputs))
	for i, in := range tx.Inputs {
		if seen[in.PrevOut] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[in.PrevOut] = true
	}

	var totalOutput uint64
	for i, out := range tx.Outputs {
		// Zero-value outputs must carry either a token or a data payload.
		if out.Value == 0 && out.Token == nil && out.Script.Type != types.ScriptTypeData {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutput)
		}
		if len(out.Script.Data) > config.MaxScriptData {
			return fmt.Errorf("output %d: %w: %d bytes, max %d", i, ErrScriptDataTooLarge, len(out.Script.Data), config.MaxScriptData)
		}
		if out.Token != nil && out.Token.Amount > config.MaxTokenAmount {
			return fmt.Errorf("output %d: %w", i, ErrTokenAmountTooLarge)
		}
		if totalOutput > math.MaxUint64-out.Value {
			return fmt.Errorf("output %d: %w", i, ErrOutputOverflow)
		}
		totalOutput += out.Value
	}

	return nil
}

// VerifySignatures checks every key-spent input's signature against the
// transaction hash. Inputs with neither signature nor pubkey are covenant
// spends, unlocked by contract proofs rather than keys, and are skipped.
// A transaction with only covenant inputs passes vacuously.
func (tx *Transaction) VerifySignatures() error {
	hash := tx.Hash()
	for i, in := range tx.Inputs {
		if len(in.Signature) == 0 && len(in.PubKey) == 0 {
			continue
		}
		if !crypto.VerifySignature(hash[:], in.Signature, in.PubKey) {
			return fmt.Errorf("input %d: %w", i, ErrInvalidSig)
		}
	}
	return nil
}
