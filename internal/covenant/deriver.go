package covenant

import (
	"github.com/nomen-protocol/nomen-go/internal/name"
	"github.com/nomen-protocol/nomen-go/pkg/crypto"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// ScriptDeriver derives domain handles from a base script template hash.
// The domain contract's locking script is the template with the name bytes
// spliced in, so its script hash commits to both.
type ScriptDeriver struct {
	template types.Hash
}

// NewScriptDeriver creates a deriver for the given domain script template.
func NewScriptDeriver(template types.Hash) *ScriptDeriver {
	return &ScriptDeriver{template: template}
}

// Derive returns the handle of the domain contract for name.
func (d *ScriptDeriver) Derive(n string) (Handle, error) {
	if err := name.Validate(n); err != nil {
		return Handle{}, err
	}
	scriptHash := crypto.HashConcat(d.template, crypto.Hash(name.Bytes(n)))
	var addr types.Address
	copy(addr[:], scriptHash[:types.AddressSize])
	return Handle{
		Role:       RoleDomain,
		Address:    addr,
		ScriptHash: scriptHash,
	}, nil
}
