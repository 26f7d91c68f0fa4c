// Package locator classifies fetched UTXO snapshots into the role slots a
// transaction build needs: covenant threads, the registration counter,
// running auctions, ownership tokens and plain funding coins. Lookups where
// absence is an error return RoleError; lookups where absence is a normal
// outcome return an ok flag.
package locator

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// ErrRoleNotFound is returned when a required role slot is absent from the
// snapshot.
var ErrRoleNotFound = errors.New("role not found")

// RoleError names the missing role.
type RoleError struct {
	Role string
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRoleNotFound, e.Role)
}

func (e *RoleError) Unwrap() error {
	return ErrRoleNotFound
}

func roleNotFound(role string) error {
	return &RoleError{Role: role}
}

// Auction is a decoded running-auction token.
type Auction struct {
	UTXO           ledger.UTXO
	RegistrationID uint64
	Name           string
}

// Snapshot is a classified UTXO set. Classification happens once, in
// Classify; the accessors only look up slots.
type Snapshot struct {
	category types.Category

	counter  *ledger.UTXO
	auctions []Auction
	// capNone holds immutable category tokens: threads, ownership tokens
	// and auth tokens share the capability and differ by commitment shape.
	capNone []ledger.UTXO
	plain   []ledger.UTXO
}

// Classify buckets a UTXO snapshot by token role in a single pass. Tokens
// of other categories are ignored entirely.
func Classify(utxos []ledger.UTXO, category types.Category) *Snapshot {
	s := &Snapshot{category: category}
	for _, u := range utxos {
		if u.Token == nil {
			s.plain = append(s.plain, u)
			continue
		}
		if u.Token.Category != category {
			continue
		}
		switch u.Token.Capability {
		case types.CapabilityMinting:
			if s.counter == nil {
				u := u
				s.counter = &u
			}
		case types.CapabilityMutable:
			if u.Token.Amount == 0 {
				continue
			}
			id, n, ok := DecodeNameCommitment(u.Token.Commitment)
			if !ok {
				continue
			}
			s.auctions = append(s.auctions, Auction{UTXO: u, RegistrationID: id, Name: n})
		case types.CapabilityNone:
			s.capNone = append(s.capNone, u)
		}
	}
	return s
}

// Thread returns the thread token belonging to a covenant: an immutable
// token whose commitment is the covenant's locking-script hash.
func (s *Snapshot) Thread(handle covenant.Handle) (ledger.UTXO, error) {
	for _, u := range s.capNone {
		if bytes.Equal(u.Token.Commitment, handle.ScriptHash[:]) {
			return u, nil
		}
	}
	return ledger.UTXO{}, roleNotFound("thread(" + handle.Role.String() + ")")
}

// Counter returns the registration counter token and its decoded count.
func (s *Snapshot) Counter() (ledger.UTXO, uint64, error) {
	if s.counter == nil {
		return ledger.UTXO{}, 0, roleNotFound("counter")
	}
	count, ok := DecodeCounter(s.counter.Token.Commitment)
	if !ok {
		return ledger.UTXO{}, 0, fmt.Errorf("counter commitment %x: bad length", s.counter.Token.Commitment)
	}
	return *s.counter, count, nil
}

// Ownership returns the ownership token of a registered name.
func (s *Snapshot) Ownership(n string) (ledger.UTXO, uint64, error) {
	for _, u := range s.capNone {
		id, got, ok := DecodeNameCommitment(u.Token.Commitment)
		if ok && got == n {
			return u, id, nil
		}
	}
	return ledger.UTXO{}, 0, roleNotFound("ownership(" + n + ")")
}

// RunningAuction returns the running auction for a name. Absence is a
// normal outcome, not an error.
func (s *Snapshot) RunningAuction(n string) (Auction, bool) {
	for _, a := range s.auctions {
		if a.Name == n {
			return a, true
		}
	}
	return Auction{}, false
}

// Auctions returns every running auction in the snapshot.
func (s *Snapshot) Auctions() []Auction {
	return s.auctions
}

// DuplicatePair returns the two running auctions for the same name: the
// earlier registration id is the surviving one, the later is the duplicate.
func (s *Snapshot) DuplicatePair(n string) (surviving, duplicate Auction, err error) {
	var matches []Auction
	for _, a := range s.auctions {
		if a.Name == n {
			matches = append(matches, a)
		}
	}
	if len(matches) < 2 {
		return Auction{}, Auction{}, roleNotFound("duplicate auction(" + n + ")")
	}
	surviving, duplicate = matches[0], matches[1]
	if duplicate.RegistrationID < surviving.RegistrationID {
		surviving, duplicate = duplicate, surviving
	}
	return surviving, duplicate, nil
}

// InternalAuth returns the domain's authorization token: an immutable
// category token with a non-empty commitment sitting at the domain address.
func (s *Snapshot) InternalAuth() (ledger.UTXO, error) {
	for _, u := range s.capNone {
		if len(u.Token.Commitment) > 0 {
			return u, nil
		}
	}
	return ledger.UTXO{}, roleNotFound("internal auth")
}

// Funding returns the largest tokenless UTXO, keeping the first seen on a
// value tie. Token-carrying coins are never spent for fees.
func (s *Snapshot) Funding() (ledger.UTXO, error) {
	if len(s.plain) == 0 {
		return ledger.UTXO{}, roleNotFound("funding")
	}
	best := s.plain[0]
	for _, u := range s.plain[1:] {
		if u.Value > best.Value {
			best = u
		}
	}
	return best, nil
}
