package covenant

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// handleFile is the on-disk form of one handle.
type handleFile struct {
	Address    string `json:"address"`
	ScriptHash string `json:"script_hash"`
}

// setFile is the deployment descriptor published alongside a covenant
// deployment. The domain template hash seeds per-name handle derivation.
type setFile struct {
	Registry         handleFile `json:"registry"`
	Auction          handleFile `json:"auction"`
	Bid              handleFile `json:"bid"`
	DomainFactory    handleFile `json:"domain_factory"`
	Accumulator      handleFile `json:"accumulator"`
	NameEnforcer     handleFile `json:"name_enforcer"`
	ConflictResolver handleFile `json:"conflict_resolver"`
	OwnershipGuard   handleFile `json:"ownership_guard"`
	DomainTemplate   string     `json:"domain_template"`
}

func (hf handleFile) handle(role Role) (Handle, error) {
	addr, err := types.ParseAddress(hf.Address)
	if err != nil {
		return Handle{}, fmt.Errorf("%s address: %w", role, err)
	}
	scriptHash, err := types.HexToHash(hf.ScriptHash)
	if err != nil {
		return Handle{}, fmt.Errorf("%s script hash: %w", role, err)
	}
	return Handle{Role: role, Address: addr, ScriptHash: scriptHash}, nil
}

// LoadSet reads a covenant deployment descriptor.
func LoadSet(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf setFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var set Set
	for _, entry := range []struct {
		role Role
		file handleFile
		dst  *Handle
	}{
		{RoleRegistry, sf.Registry, &set.Registry},
		{RoleAuction, sf.Auction, &set.Auction},
		{RoleBid, sf.Bid, &set.Bid},
		{RoleDomainFactory, sf.DomainFactory, &set.DomainFactory},
		{RoleAccumulator, sf.Accumulator, &set.Accumulator},
		{RoleNameEnforcer, sf.NameEnforcer, &set.NameEnforcer},
		{RoleConflictResolver, sf.ConflictResolver, &set.ConflictResolver},
		{RoleOwnershipGuard, sf.OwnershipGuard, &set.OwnershipGuard},
	} {
		h, err := entry.file.handle(entry.role)
		if err != nil {
			return nil, err
		}
		*entry.dst = h
	}

	template, err := types.HexToHash(sf.DomainTemplate)
	if err != nil {
		return nil, fmt.Errorf("domain template: %w", err)
	}
	set.Domains = NewScriptDeriver(template)
	return &set, nil
}
