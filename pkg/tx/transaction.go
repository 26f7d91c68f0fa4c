// Package tx defines transaction types and the template builder used by the
// Nomen engine. Transactions produced here are unsigned templates: inputs
// reference the UTXOs to spend, and signing is the caller's responsibility.
package tx

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/nomen-protocol/nomen-go/pkg/crypto"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// Transaction represents a ledger transaction.
type Transaction struct {
	Version  uint32   `json:"version"`
	Inputs   []Input  `json:"inputs"`
	Outputs  []Output `json:"outputs"`
	LockTime uint64   `json:"locktime"`
}

// Input references a UTXO being spent. Signature and PubKey are empty on
// templates and filled in by the signer.
type Input struct {
	PrevOut   types.Outpoint `json:"prevout"`
	Signature []byte         `json:"signature,omitempty"`
	PubKey    []byte         `json:"pubkey,omitempty"`
}

// inputJSON is the JSON representation of Input with hex-encoded byte fields.
type inputJSON struct {
	PrevOut   types.Outpoint `json:"prevout"`
	Signature *string        `json:"signature,omitempty"`
	PubKey    *string        `json:"pubkey,omitempty"`
}

// MarshalJSON encodes the input with hex-encoded signature and pubkey.
func (in Input) MarshalJSON() ([]byte, error) {
	j := inputJSON{PrevOut: in.PrevOut}
	if in.Signature != nil {
		s := hex.EncodeToString(in.Signature)
		j.Signature = &s
	}
	if in.PubKey != nil {
		p := hex.EncodeToString(in.PubKey)
		j.PubKey = &p
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes an input with hex-encoded signature and pubkey.
func (in *Input) UnmarshalJSON(data []byte) error {
	var j inputJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	in.PrevOut = j.PrevOut
	if j.Signature != nil {
		b, err := hex.DecodeString(*j.Signature)
		if err != nil {
			return err
		}
		in.Signature = b
	}
	if j.PubKey != nil {
		b, err := hex.DecodeString(*j.PubKey)
		if err != nil {
			return err
		}
		in.PubKey = b
	}
	return nil
}

// Output defines a new UTXO.
type Output struct {
	Value  uint64           `json:"value"`
	Script types.Script     `json:"script"`
	Token  *types.TokenData `json:"token,omitempty"`
}

// IsDataCarrier reports whether the output is a zero-value data carrier.
func (out Output) IsDataCarrier() bool {
	return out.Value == 0 && out.Script.Type == types.ScriptTypeData
}

// Hash computes the transaction ID (BLAKE3 hash of the serialized signing data).
// Signatures are excluded so templates and their signed forms share an ID.
func (tx *Transaction) Hash() types.Hash {
	return crypto.Hash(tx.SigningBytes())
}

// SigningBytes returns the canonical byte representation used for signing and
// for fee measurement. Format:
//
//	version(4) | input_count(4) | [prevout(36)]... | output_count(4) |
//	[value(8) | script_type(1) | script_data_len(4) | script_data |
//	 token_flag(1) | {category(32) | amount(8) | capability(1) |
//	 commitment_len(4) | commitment}]... | locktime(8)
//
// The commitment is length-prefixed because it is variable length; the byte
// layout of the commitment itself is fixed by the covenant contracts, so this
// serialization must not be changed.
func (tx *Transaction) SigningBytes() []byte {
	var buf []byte

	buf = binary.LittleEndian.AppendUint32(buf, tx.Version)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = append(buf, in.PrevOut.TxID[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, in.PrevOut.Index)
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = binary.LittleEndian.AppendUint64(buf, out.Value)
		buf = append(buf, byte(out.Script.Type))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(out.Script.Data)))
		buf = append(buf, out.Script.Data...)
		if out.Token == nil {
			buf = append(buf, 0)
		} else {
			buf = append(buf, 1)
			buf = append(buf, out.Token.Category[:]...)
			buf = binary.LittleEndian.AppendUint64(buf, out.Token.Amount)
			buf = append(buf, byte(out.Token.Capability))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(out.Token.Commitment)))
			buf = append(buf, out.Token.Commitment...)
		}
	}

	buf = binary.LittleEndian.AppendUint64(buf, tx.LockTime)

	return buf
}

// TotalOutputValue returns the sum of all output values.
// Returns an error if the sum overflows uint64.
func (tx *Transaction) TotalOutputValue() (uint64, error) {
	var total uint64
	for _, out := range tx.Outputs {
		if total > math.MaxUint64-out.Value {
			return 0, fmt.Errorf("output value overflow")
		}
		total += out.Value
	}
	return total, nil
}

// TokenOutputTotal returns the sum of token amounts across all outputs of the
// given category. Returns an error on overflow.
func (tx *Transaction) TokenOutputTotal(cat types.Category) (uint64, error) {
	var total uint64
	for i, out := range tx.Outputs {
		if out.Token == nil || out.Token.Category != cat {
			continue
		}
		if total > math.MaxUint64-out.Token.Amount {
			return 0, fmt.Errorf("output %d: token amount overflow", i)
		}
		total += out.Token.Amount
	}
	return total, nil
}

// DataPayloads returns the payloads of all zero-value data-carrier outputs,
// in output order.
func (tx *Transaction) DataPayloads() [][]byte {
	var payloads [][]byte
	for _, out := range tx.Outputs {
		if out.IsDataCarrier() {
			payloads = append(payloads, out.Script.Data)
		}
	}
	return payloads
}
