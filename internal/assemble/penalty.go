package assemble

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/internal/locator"
	"github.com/nomen-protocol/nomen-go/internal/name"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// PenaltyParams parameterizes the penalty operations. Anyone may penalize;
// the caller collects the penalized auction's value as the reward.
type PenaltyParams struct {
	Name string
	// Reward receives the penalized auction's satoshi value.
	Reward types.Address
	// Payer funds the transaction fee.
	Payer types.Address
}

// burnAuction adds the reward and burn outputs for a penalized auction: its
// satoshi value goes to the reward address, its fungible token amount is
// destroyed in an unspendable burn output.
func burnAuction(b *tx.Builder, auction locator.Auction, reward types.Address) {
	b.AddOutput(auction.UTXO.Value, types.P2PKH(reward))
	b.AddTokenOutput(0, types.Script{Type: types.ScriptTypeBurn}, auction.UTXO.Token)
}

// PenalizeInvalidName dissolves a running auction whose name violates the
// character rules. The unlock for the enforcer thread carries the 1-based
// index of the first offending character as its proof.
func (a *Assembler) PenalizeInvalidName(ctx context.Context, params PenaltyParams) (*Template, error) {
	proofIndex := name.FirstInvalidCharIndex(params.Name)
	if proofIndex < 0 {
		return nil, fmt.Errorf("%w: %q is a valid name", ErrNotPenalizable, params.Name)
	}

	registry, err := a.registrySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	thread, err := registry.Thread(a.set.NameEnforcer)
	if err != nil {
		return nil, err
	}
	auction, ok := registry.RunningAuction(params.Name)
	if !ok {
		return nil, fmt.Errorf("%w: no running auction for %q", ErrNotPenalizable, params.Name)
	}

	funding, err := a.funding(ctx, params.Payer)
	if err != nil {
		return nil, err
	}

	b := tx.NewBuilder()
	enforcer := threadBack(b, thread, a.set.Registry.Address, covenant.RoleNameEnforcer, 0)
	enforcer.Proof = binary.BigEndian.AppendUint64(nil, uint64(proofIndex))
	unlocks := []Unlock{enforcer}

	b.AddInput(auction.UTXO.Outpoint)
	burnAuction(b, auction, params.Reward)
	unlocks = append(unlocks, Unlock{InputIndex: 1, Signer: covenant.RoleRegistry.String()})

	b.AddInput(funding.Outpoint)
	changeIndex := b.OutputCount()
	b.AddOutput(funding.Value, types.P2PKH(params.Payer))
	unlocks = append(unlocks, Unlock{InputIndex: 2, Signer: SignerPayer})

	return a.finish(b, changeIndex, unlocks, "penalize-invalid-name")
}

// PenalizeDuplicateAuction dissolves the later of two running auctions for
// the same name. The earlier registration id is the legitimate auction and
// passes through unchanged.
func (a *Assembler) PenalizeDuplicateAuction(ctx context.Context, params PenaltyParams) (*Template, error) {
	if err := name.Validate(params.Name); err != nil {
		return nil, err
	}

	registry, err := a.registrySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	thread, err := registry.Thread(a.set.ConflictResolver)
	if err != nil {
		return nil, err
	}
	surviving, duplicate, err := registry.DuplicatePair(params.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPenalizable, err)
	}

	funding, err := a.funding(ctx, params.Payer)
	if err != nil {
		return nil, err
	}

	b := tx.NewBuilder()
	unlocks := []Unlock{threadBack(b, thread, a.set.Registry.Address, covenant.RoleConflictResolver, 0)}

	b.AddInput(surviving.UTXO.Outpoint)
	b.AddTokenOutput(surviving.UTXO.Value, types.P2SH(a.set.Registry.Address), surviving.UTXO.Token)
	unlocks = append(unlocks, Unlock{InputIndex: 1, Signer: covenant.RoleRegistry.String()})

	b.AddInput(duplicate.UTXO.Outpoint)
	burnAuction(b, duplicate, params.Reward)
	unlocks = append(unlocks, Unlock{InputIndex: 2, Signer: covenant.RoleRegistry.String()})

	b.AddInput(funding.Outpoint)
	changeIndex := b.OutputCount()
	b.AddOutput(funding.Value, types.P2PKH(params.Payer))
	unlocks = append(unlocks, Unlock{InputIndex: 3, Signer: SignerPayer})

	return a.finish(b, changeIndex, unlocks, "penalize-duplicate")
}

// PenalizeIllegalAuction dissolves a running auction for a name that is
// already registered, proven by spending the domain's internal auth token
// alongside it.
func (a *Assembler) PenalizeIllegalAuction(ctx context.Context, params PenaltyParams) (*Template, error) {
	if err := name.Validate(params.Name); err != nil {
		return nil, err
	}

	registry, err := a.registrySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	thread, err := registry.Thread(a.set.OwnershipGuard)
	if err != nil {
		return nil, err
	}
	auction, ok := registry.RunningAuction(params.Name)
	if !ok {
		return nil, fmt.Errorf("%w: no running auction for %q", ErrNotPenalizable, params.Name)
	}

	domainHandle, domain, err := a.domainSnapshot(ctx, params.Name)
	if err != nil {
		return nil, err
	}
	auth, err := domain.InternalAuth()
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not registered", ErrNotPenalizable, params.Name)
	}

	funding, err := a.funding(ctx, params.Payer)
	if err != nil {
		return nil, err
	}

	b := tx.NewBuilder()
	unlocks := []Unlock{threadBack(b, thread, a.set.Registry.Address, covenant.RoleOwnershipGuard, 0)}

	b.AddInput(auth.Outpoint)
	b.AddTokenOutput(auth.Value, types.P2SH(domainHandle.Address), auth.Token)
	unlocks = append(unlocks, Unlock{InputIndex: 1, Signer: covenant.RoleDomain.String()})

	b.AddInput(auction.UTXO.Outpoint)
	burnAuction(b, auction, params.Reward)
	unlocks = append(unlocks, Unlock{InputIndex: 2, Signer: covenant.RoleRegistry.String()})

	b.AddInput(funding.Outpoint)
	changeIndex := b.OutputCount()
	b.AddOutput(funding.Value, types.P2PKH(params.Payer))
	unlocks = append(unlocks, Unlock{InputIndex: 3, Signer: SignerPayer})

	return a.finish(b, changeIndex, unlocks, "penalize-illegal")
}

// funding fetches the payer's best fee coin.
func (a *Assembler) funding(ctx context.Context, payer types.Address) (ledger.UTXO, error) {
	snap, err := a.addressSnapshot(ctx, payer)
	if err != nil {
		return ledger.UTXO{}, err
	}
	return snap.Funding()
}
