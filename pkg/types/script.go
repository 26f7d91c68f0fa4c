package types

import (
	"encoding/hex"
	"encoding/json"
)

// ScriptType identifies the type of locking script.
type ScriptType uint8

const (
	ScriptTypeP2PKH ScriptType = 0x01 // Pay to public key hash (data = 20-byte address)
	ScriptTypeP2SH  ScriptType = 0x02 // Pay to script hash (covenant-held outputs)
	ScriptTypeBurn  ScriptType = 0x11 // Unspendable token sink (penalty flows)
	ScriptTypeData  ScriptType = 0x50 // Zero-value data carrier (name records)
)

// String returns a human-readable name for the script type.
func (st ScriptType) String() string {
	switch st {
	case ScriptTypeP2PKH:
		return "P2PKH"
	case ScriptTypeP2SH:
		return "P2SH"
	case ScriptTypeBurn:
		return "Burn"
	case ScriptTypeData:
		return "Data"
	default:
		return "Unknown"
	}
}

// Script defines the locking condition for a UTXO.
type Script struct {
	Type ScriptType `json:"type"`
	Data []byte     `json:"data"`
}

// P2PKH builds a pay-to-public-key-hash script for an address.
func P2PKH(addr Address) Script {
	return Script{Type: ScriptTypeP2PKH, Data: addr.Bytes()}
}

// P2SH builds a pay-to-script-hash script for a covenant address.
func P2SH(addr Address) Script {
	return Script{Type: ScriptTypeP2SH, Data: addr.Bytes()}
}

// DataCarrier builds a zero-value data-carrier script holding payload.
func DataCarrier(payload []byte) Script {
	return Script{Type: ScriptTypeData, Data: payload}
}

// Address extracts the 20-byte address from a P2PKH or P2SH script.
// Returns false for other script types or malformed data.
func (s Script) Address() (Address, bool) {
	if s.Type != ScriptTypeP2PKH && s.Type != ScriptTypeP2SH {
		return Address{}, false
	}
	if len(s.Data) != AddressSize {
		return Address{}, false
	}
	var a Address
	copy(a[:], s.Data)
	return a, true
}

// scriptJSON is the JSON representation of a Script with hex-encoded data.
type scriptJSON struct {
	Type ScriptType `json:"type"`
	Data string     `json:"data"`
}

// MarshalJSON encodes the script with hex-encoded data.
func (s Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(scriptJSON{
		Type: s.Type,
		Data: hex.EncodeToString(s.Data),
	})
}

// UnmarshalJSON decodes a script with hex-encoded data.
func (s *Script) UnmarshalJSON(data []byte) error {
	var j scriptJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	s.Type = j.Type
	if j.Data != "" {
		b, err := hex.DecodeString(j.Data)
		if err != nil {
			return err
		}
		s.Data = b
	}
	return nil
}
