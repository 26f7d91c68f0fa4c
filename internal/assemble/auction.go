package assemble

import (
	"context"
	"fmt"

	"github.com/nomen-protocol/nomen-go/config"
	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/locator"
	"github.com/nomen-protocol/nomen-go/internal/name"
	"github.com/nomen-protocol/nomen-go/internal/pricing"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// AuctionParams parameterizes starting a name auction.
type AuctionParams struct {
	Name string
	// Amount is the starting bid in satoshis, locked into the auction
	// output.
	Amount uint64
	// Bidder funds the bid and receives the change and, on loss, the
	// refund.
	Bidder types.Address
}

// Auction starts an auction for an unregistered name. The registration
// counter advances by one; the new auction token is minted mutable with the
// new registration id as both commitment prefix and fungible amount, the
// amount drawn from the counter's balance.
func (a *Assembler) Auction(ctx context.Context, params AuctionParams) (*Template, error) {
	if err := name.Validate(params.Name); err != nil {
		return nil, err
	}

	registry, err := a.registrySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := registry.RunningAuction(params.Name); ok {
		return nil, fmt.Errorf("%w: auction running for %q", ErrNameTaken, params.Name)
	}
	_, domain, err := a.domainSnapshot(ctx, params.Name)
	if err != nil {
		return nil, err
	}
	if _, err := domain.InternalAuth(); err == nil {
		return nil, fmt.Errorf("%w: %q is registered", ErrNameTaken, params.Name)
	}

	thread, err := registry.Thread(a.set.Auction)
	if err != nil {
		return nil, err
	}
	counter, count, err := registry.Counter()
	if err != nil {
		return nil, err
	}
	registrationID := count + 1

	price := pricing.AuctionPrice(registrationID, a.registry.MinStartingBid)
	if params.Amount < price {
		return nil, fmt.Errorf("%w: %d below starting price %d", ErrInsufficientBid, params.Amount, price)
	}

	payer, err := a.addressSnapshot(ctx, params.Bidder)
	if err != nil {
		return nil, err
	}
	funding, err := payer.Funding()
	if err != nil {
		return nil, err
	}
	// Pre-size against the draft shape so an underfunded bidder fails
	// here instead of at fee finalization. 3 inputs, 4 outputs, the
	// widest commitment being the auction token's.
	estimate := tx.EstimateTxFee(3, 4, a.registry.FeeRate, tokenOutputSlack+len(params.Name))
	if funding.Value < params.Amount+estimate {
		return nil, fmt.Errorf("%w: funding %d below bid %d plus fee %d", tx.ErrChangeBelowFee, funding.Value, params.Amount, estimate)
	}

	b := tx.NewBuilder()
	unlocks := []Unlock{threadBack(b, thread, a.set.Registry.Address, covenant.RoleAuction, 0)}

	// Counter advances and its balance funds the auction token's amount.
	b.AddInput(counter.Outpoint)
	advanced := counter.Token.Clone()
	advanced.Commitment = locator.CounterCommitment(registrationID)
	advanced.Amount = counter.Token.Amount - registrationID
	b.AddTokenOutput(counter.Value, types.P2SH(a.set.Registry.Address), advanced)
	unlocks = append(unlocks, Unlock{InputIndex: 1, Signer: covenant.RoleRegistry.String()})

	b.AddTokenOutput(params.Amount, types.P2SH(a.set.Registry.Address), &types.TokenData{
		Category:   a.category,
		Amount:     registrationID,
		Capability: types.CapabilityMutable,
		Commitment: locator.NameCommitment(registrationID, params.Name),
	})

	b.AddInput(funding.Outpoint)
	changeIndex := b.OutputCount()
	b.AddOutput(funding.Value-params.Amount, types.P2PKH(params.Bidder))
	unlocks = append(unlocks, Unlock{InputIndex: 2, Signer: SignerPayer})

	return a.finish(b, changeIndex, unlocks, "auction")
}

// BidParams parameterizes raising a running auction.
type BidParams struct {
	Name   string
	Amount uint64
	Bidder types.Address
}

// Bid raises a running auction. The auction token propagates unchanged with
// the new bid as its satoshi value; the previous bidder is refunded in full.
func (a *Assembler) Bid(ctx context.Context, params BidParams) (*Template, error) {
	if err := name.Validate(params.Name); err != nil {
		return nil, err
	}

	registry, err := a.registrySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	thread, err := registry.Thread(a.set.Bid)
	if err != nil {
		return nil, err
	}
	auction, ok := registry.RunningAuction(params.Name)
	if !ok {
		return nil, &locator.RoleError{Role: "running auction(" + params.Name + ")"}
	}

	minimum := pricing.MinimumBid(auction.UTXO.Value, a.registry.MinBidIncreasePct)
	if params.Amount < minimum {
		return nil, fmt.Errorf("%w: %d below minimum %d", ErrInsufficientBid, params.Amount, minimum)
	}

	previous, err := locator.PreviousBidder(ctx, a.src, auction)
	if err != nil {
		return nil, err
	}

	payer, err := a.addressSnapshot(ctx, params.Bidder)
	if err != nil {
		return nil, err
	}
	funding, err := payer.Funding()
	if err != nil {
		return nil, err
	}
	estimate := tx.EstimateTxFee(3, 4, a.registry.FeeRate, tokenOutputSlack+len(params.Name))
	if funding.Value < params.Amount+estimate {
		return nil, fmt.Errorf("%w: funding %d below bid %d plus fee %d", tx.ErrChangeBelowFee, funding.Value, params.Amount, estimate)
	}

	b := tx.NewBuilder()
	unlocks := []Unlock{threadBack(b, thread, a.set.Registry.Address, covenant.RoleBid, 0)}

	b.AddInput(auction.UTXO.Outpoint)
	b.AddTokenOutput(params.Amount, types.P2SH(a.set.Registry.Address), auction.UTXO.Token)
	unlocks = append(unlocks, Unlock{InputIndex: 1, Signer: covenant.RoleRegistry.String()})

	// Full refund of the outbid amount.
	b.AddOutput(auction.UTXO.Value, types.P2PKH(previous))

	b.AddInput(funding.Outpoint)
	changeIndex := b.OutputCount()
	b.AddOutput(funding.Value-params.Amount, types.P2PKH(params.Bidder))
	unlocks = append(unlocks, Unlock{InputIndex: 2, Signer: SignerPayer})

	return a.finish(b, changeIndex, unlocks, "bid")
}

// ClaimDomainParams parameterizes converting a matured auction into
// ownership.
type ClaimDomainParams struct {
	Name string
	// Winner receives the ownership token and the change.
	Winner types.Address
}

// ClaimDomain converts a matured auction into domain ownership. The winner
// receives the ownership token, the domain contract receives its internal
// auth token, the creator incentive is paid out, and everything left of the
// auction value accrues on the counter for a later sweep. The auction
// token's fungible amount returns to the counter balance.
//
// Maturity is the caller's responsibility: the configured wait time is
// copied into the template's lock time, the engine does not check a clock.
func (a *Assembler) ClaimDomain(ctx context.Context, params ClaimDomainParams) (*Template, error) {
	if err := name.Validate(params.Name); err != nil {
		return nil, err
	}
	incentiveAddr, err := a.registry.CreatorIncentive()
	if err != nil {
		return nil, err
	}

	registry, err := a.registrySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	thread, err := registry.Thread(a.set.DomainFactory)
	if err != nil {
		return nil, err
	}
	counter, _, err := registry.Counter()
	if err != nil {
		return nil, err
	}
	auction, ok := registry.RunningAuction(params.Name)
	if !ok {
		return nil, &locator.RoleError{Role: "running auction(" + params.Name + ")"}
	}

	domainHandle, err := a.set.Domains.Derive(params.Name)
	if err != nil {
		return nil, err
	}

	price := auction.UTXO.Value
	incentive, err := pricing.CreatorIncentive(price, auction.RegistrationID)
	if err != nil {
		return nil, err
	}

	payer, err := a.addressSnapshot(ctx, params.Winner)
	if err != nil {
		return nil, err
	}
	funding, err := payer.Funding()
	if err != nil {
		return nil, err
	}
	estimate := tx.EstimateTxFee(4, 6, a.registry.FeeRate, tokenOutputSlack+len(params.Name))
	if funding.Value < 2*config.DustLimit+estimate {
		return nil, fmt.Errorf("%w: funding %d below dust outputs plus fee %d", tx.ErrChangeBelowFee, funding.Value, estimate)
	}

	b := tx.NewBuilder()
	unlocks := []Unlock{threadBack(b, thread, a.set.Registry.Address, covenant.RoleDomainFactory, 0)}

	// The auction's fungible amount and its unspent value return to the
	// counter; the value accrues there until swept.
	b.AddInput(counter.Outpoint)
	restored := counter.Token.Clone()
	restored.Amount = counter.Token.Amount + auction.RegistrationID
	b.AddTokenOutput(counter.Value+price-incentive, types.P2SH(a.set.Registry.Address), restored)
	unlocks = append(unlocks, Unlock{InputIndex: 1, Signer: covenant.RoleRegistry.String()})

	b.AddInput(auction.UTXO.Outpoint)
	commitment := locator.NameCommitment(auction.RegistrationID, params.Name)
	b.AddTokenOutput(config.DustLimit, types.P2PKH(params.Winner), &types.TokenData{
		Category:   a.category,
		Capability: types.CapabilityNone,
		Commitment: commitment,
	})
	b.AddTokenOutput(config.DustLimit, types.P2SH(domainHandle.Address), &types.TokenData{
		Category:   a.category,
		Capability: types.CapabilityNone,
		Commitment: commitment,
	})
	unlocks = append(unlocks, Unlock{InputIndex: 2, Signer: covenant.RoleRegistry.String()})

	if incentive > 0 {
		b.AddOutput(incentive, types.P2PKH(incentiveAddr))
	}

	b.AddInput(funding.Outpoint)
	changeIndex := b.OutputCount()
	b.AddOutput(funding.Value-2*config.DustLimit, types.P2PKH(params.Winner))
	unlocks = append(unlocks, Unlock{InputIndex: 3, Signer: SignerPayer})

	b.SetLockTime(a.registry.MinWaitBlocks)

	return a.finish(b, changeIndex, unlocks, "claim-domain")
}
