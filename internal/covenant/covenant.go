// Package covenant describes the on-chain covenant contracts the engine
// builds transactions against. The engine never inspects covenant bytecode:
// each contract is addressed purely through its Handle.
package covenant

import (
	"fmt"

	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// Role identifies one covenant contract of the protocol.
type Role uint8

const (
	// RoleRegistry holds the registration counter and the thread tokens.
	RoleRegistry Role = iota
	// RoleAuction starts new name auctions.
	RoleAuction
	// RoleBid raises running auctions.
	RoleBid
	// RoleDomainFactory converts matured auctions into domain ownership.
	RoleDomainFactory
	// RoleAccumulator sweeps accrued fees off the registration counter.
	RoleAccumulator
	// RoleNameEnforcer penalizes auctions for malformed names.
	RoleNameEnforcer
	// RoleConflictResolver penalizes the later of two duplicate auctions.
	RoleConflictResolver
	// RoleOwnershipGuard penalizes auctions for already-registered names.
	RoleOwnershipGuard
	// RoleDomain is the per-name domain contract. Its handle is derived,
	// not fixed; it has no slot in a Set.
	RoleDomain
)

func (r Role) String() string {
	switch r {
	case RoleRegistry:
		return "registry"
	case RoleAuction:
		return "auction"
	case RoleBid:
		return "bid"
	case RoleDomainFactory:
		return "domain-factory"
	case RoleAccumulator:
		return "accumulator"
	case RoleNameEnforcer:
		return "name-enforcer"
	case RoleConflictResolver:
		return "conflict-resolver"
	case RoleOwnershipGuard:
		return "ownership-guard"
	case RoleDomain:
		return "domain"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Handle addresses one deployed covenant contract.
type Handle struct {
	Role Role
	// Address the contract's outputs sit at.
	Address types.Address
	// ScriptHash is the 32-byte hash of the contract's locking script,
	// the value carried in the registry's thread-token commitments.
	ScriptHash types.Hash
}

// DomainDeriver derives the per-name domain contract handle. Domain
// contracts embed the name in their locking script, so every name has its
// own address.
type DomainDeriver interface {
	Derive(name string) (Handle, error)
}

// Set holds the handles of all fixed-role contracts plus the domain deriver.
type Set struct {
	Registry         Handle
	Auction          Handle
	Bid              Handle
	DomainFactory    Handle
	Accumulator      Handle
	NameEnforcer     Handle
	ConflictResolver Handle
	OwnershipGuard   Handle

	Domains DomainDeriver
}

// Handle returns the fixed handle for a role. RoleDomain has no fixed
// handle; use Domains.Derive.
func (s *Set) Handle(role Role) (Handle, error) {
	switch role {
	case RoleRegistry:
		return s.Registry, nil
	case RoleAuction:
		return s.Auction, nil
	case RoleBid:
		return s.Bid, nil
	case RoleDomainFactory:
		return s.DomainFactory, nil
	case RoleAccumulator:
		return s.Accumulator, nil
	case RoleNameEnforcer:
		return s.NameEnforcer, nil
	case RoleConflictResolver:
		return s.ConflictResolver, nil
	case RoleOwnershipGuard:
		return s.OwnershipGuard, nil
	default:
		return Handle{}, fmt.Errorf("no fixed handle for role %s", role)
	}
}

// Threads returns the operation covenants that hold a thread token in the
// registry, in a stable order.
func (s *Set) Threads() []Handle {
	return []Handle{
		s.Auction,
		s.Bid,
		s.DomainFactory,
		s.Accumulator,
		s.NameEnforcer,
		s.ConflictResolver,
		s.OwnershipGuard,
	}
}
