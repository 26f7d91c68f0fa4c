package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Capability is the mutability class of a non-fungible token. It governs
// which transformations the token may legally undergo and is the primary
// discriminator when scanning UTXOs for protocol roles.
type Capability uint8

const (
	CapabilityNone    Capability = 0x00 // Immutable: commitment fixed for life.
	CapabilityMutable Capability = 0x01 // Commitment may change when spent.
	CapabilityMinting Capability = 0x02 // May create new tokens of its category.
)

// String returns a human-readable name for the capability.
func (c Capability) String() string {
	switch c {
	case CapabilityNone:
		return "none"
	case CapabilityMutable:
		return "mutable"
	case CapabilityMinting:
		return "minting"
	default:
		return "unknown"
	}
}

// TokenData holds the token state attached to a UTXO: a fungible amount plus
// non-fungible commitment metadata, scoped to one category.
type TokenData struct {
	Category   Category   `json:"category"`
	Amount     uint64     `json:"amount"`
	Capability Capability `json:"capability"`
	Commitment []byte     `json:"commitment,omitempty"`
}

// tokenJSON is the JSON representation of TokenData with a hex commitment.
type tokenJSON struct {
	Category   Category   `json:"category"`
	Amount     uint64     `json:"amount"`
	Capability Capability `json:"capability"`
	Commitment string     `json:"commitment,omitempty"`
}

// MarshalJSON encodes the token data with a hex-encoded commitment.
func (td TokenData) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{
		Category:   td.Category,
		Amount:     td.Amount,
		Capability: td.Capability,
		Commitment: hex.EncodeToString(td.Commitment),
	})
}

// UnmarshalJSON decodes token data with a hex-encoded commitment.
func (td *TokenData) UnmarshalJSON(data []byte) error {
	var j tokenJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	td.Category = j.Category
	td.Amount = j.Amount
	td.Capability = j.Capability
	if j.Commitment != "" {
		b, err := hex.DecodeString(j.Commitment)
		if err != nil {
			return fmt.Errorf("invalid commitment hex: %w", err)
		}
		td.Commitment = b
	} else {
		td.Commitment = nil
	}
	return nil
}

// CommitmentEquals reports whether the token's commitment equals b.
func (td *TokenData) CommitmentEquals(b []byte) bool {
	return bytes.Equal(td.Commitment, b)
}

// Clone returns a deep copy of the token data. Assemblers use it when
// propagating commitments forward so templates never alias fetched state.
func (td *TokenData) Clone() *TokenData {
	if td == nil {
		return nil
	}
	cp := *td
	if td.Commitment != nil {
		cp.Commitment = make([]byte, len(td.Commitment))
		copy(cp.Commitment, td.Commitment)
	}
	return &cp
}
