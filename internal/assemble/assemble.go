// Package assemble builds unsigned transaction templates for every protocol
// operation. A template carries the full input/output structure with exact
// amounts and fees; signing and broadcast happen outside the engine. Every
// build conserves category token amounts, except the documented burns in the
// penalty flows, and either returns a complete template or an error, never a
// partial one.
package assemble

import (
	"context"
	"errors"
	"fmt"

	"github.com/nomen-protocol/nomen-go/config"
	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/internal/locator"
	"github.com/nomen-protocol/nomen-go/internal/log"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

var (
	// ErrInsufficientBid is returned when an offered amount does not clear
	// the starting price or the minimum raise.
	ErrInsufficientBid = errors.New("insufficient bid")
	// ErrNameTaken is returned when starting an auction for a name that
	// already has a running auction or a registered domain.
	ErrNameTaken = errors.New("name taken")
	// ErrNotPenalizable is returned when a penalty build finds nothing to
	// penalize.
	ErrNotPenalizable = errors.New("nothing to penalize")
)

// tokenOutputSlack pads per-output fee estimates for token-carrying
// outputs: the fixed token bytes plus the widest fixed commitment, the
// 32-byte thread script hash. Name commitments add their name's length
// on top.
const tokenOutputSlack = 45 + 32

// SignerPayer marks an input unlocked by the paying wallet rather than a
// covenant.
const SignerPayer = "payer"

// Unlock names who must provide the unlocking data for one template input.
type Unlock struct {
	// InputIndex into the template transaction's inputs.
	InputIndex int `json:"input_index"`
	// Signer is a covenant role name or SignerPayer.
	Signer string `json:"signer"`
	// Proof is extra witness data the covenant requires, when any.
	Proof []byte `json:"proof,omitempty"`
}

// Template is a fully assembled unsigned transaction plus the unlock plan
// covering each of its inputs.
type Template struct {
	Tx      *tx.Transaction `json:"tx"`
	Unlocks []Unlock        `json:"unlocks"`
}

// Assembler builds operation templates against one protocol deployment.
type Assembler struct {
	registry config.RegistryConfig
	category types.Category
	set      *covenant.Set
	src      ledger.Source
}

// New creates an assembler for the deployment described by the registry
// configuration.
func New(registry config.RegistryConfig, set *covenant.Set, src ledger.Source) (*Assembler, error) {
	category, err := registry.Category()
	if err != nil {
		return nil, fmt.Errorf("registry category: %w", err)
	}
	return &Assembler{
		registry: registry,
		category: category,
		set:      set,
		src:      src,
	}, nil
}

// Category returns the deployment's token category.
func (a *Assembler) Category() types.Category {
	return a.category
}

// registrySnapshot fetches and classifies the registry address's UTXO set.
func (a *Assembler) registrySnapshot(ctx context.Context) (*locator.Snapshot, error) {
	utxos, err := a.src.UTXOs(ctx, a.set.Registry.Address)
	if err != nil {
		return nil, fmt.Errorf("registry utxos: %w", err)
	}
	return locator.Classify(utxos, a.category), nil
}

// addressSnapshot fetches and classifies an arbitrary address's UTXO set.
func (a *Assembler) addressSnapshot(ctx context.Context, addr types.Address) (*locator.Snapshot, error) {
	utxos, err := a.src.UTXOs(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("utxos of %s: %w", addr, err)
	}
	return locator.Classify(utxos, a.category), nil
}

// domainSnapshot derives the domain handle for a name and classifies the
// UTXO set at its address.
func (a *Assembler) domainSnapshot(ctx context.Context, name string) (covenant.Handle, *locator.Snapshot, error) {
	handle, err := a.set.Domains.Derive(name)
	if err != nil {
		return covenant.Handle{}, nil, err
	}
	snap, err := a.addressSnapshot(ctx, handle.Address)
	if err != nil {
		return covenant.Handle{}, nil, err
	}
	return handle, snap, nil
}

// threadBack adds a thread token input and its unchanged re-emission at the
// registry address, returning the unlock for the covenant that owns it.
func threadBack(b *tx.Builder, thread ledger.UTXO, registryAddr types.Address, role covenant.Role, inputIndex int) Unlock {
	b.AddInput(thread.Outpoint)
	b.AddTokenOutput(thread.Value, types.P2SH(registryAddr), thread.Token)
	return Unlock{InputIndex: inputIndex, Signer: role.String()}
}

func (a *Assembler) finish(b *tx.Builder, changeIndex int, unlocks []Unlock, op string) (*Template, error) {
	if err := b.FinalizeFee(changeIndex, a.registry.FeeRate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	built := b.Build()
	if err := built.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Assembler.Debug().
		Str("op", op).
		Int("inputs", len(built.Inputs)).
		Int("outputs", len(built.Outputs)).
		Msg("template assembled")
	return &Template{Tx: built, Unlocks: unlocks}, nil
}
