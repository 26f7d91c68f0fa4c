// Package resolve answers read-only queries about names: registration
// status, running auctions, and owner lookup in both directions.
package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/indexer"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/internal/locator"
	"github.com/nomen-protocol/nomen-go/internal/log"
	"github.com/nomen-protocol/nomen-go/internal/name"
	"github.com/nomen-protocol/nomen-go/internal/pricing"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// ErrNotRegistered is returned when a lookup needs a registered name.
var ErrNotRegistered = errors.New("name not registered")

// Status describes where a name stands in its lifecycle.
type Status uint8

const (
	StatusInvalid Status = iota
	StatusAvailable
	StatusAuctioning
	StatusRegistered
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusAvailable:
		return "available"
	case StatusAuctioning:
		return "auctioning"
	case StatusRegistered:
		return "registered"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Domain is the resolved state of one name.
type Domain struct {
	Name   string
	Status Status
	// Handle of the name's domain contract, zero when the name is invalid.
	Handle covenant.Handle
	// Auction is set when Status is StatusAuctioning.
	Auction *locator.Auction
	// DomainUTXOs are the UTXOs at the domain address, for callers that
	// need the auth token or record anchors.
	DomainUTXOs []ledger.UTXO
}

// AuctionInfo is one running auction with its bid requirements.
type AuctionInfo struct {
	Name           string
	RegistrationID uint64
	CurrentBid     uint64
	MinimumNextBid uint64
}

// Resolver reads name state from the ledger, optionally assisted by an
// external indexer.
type Resolver struct {
	src               ledger.Source
	set               *covenant.Set
	category          types.Category
	minBidIncreasePct uint64

	// indexer is optional; nil means direct history scans only.
	indexer *indexer.Client
}

// New creates a resolver. idx may be nil.
func New(src ledger.Source, set *covenant.Set, category types.Category, minBidIncreasePct uint64, idx *indexer.Client) *Resolver {
	return &Resolver{
		src:               src,
		set:               set,
		category:          category,
		minBidIncreasePct: minBidIncreasePct,
		indexer:           idx,
	}
}

// Domain resolves a name's lifecycle status. Registered beats auctioning: a
// running auction for an already-registered name is an illegal auction, not
// a registration in progress. An invalid name has no domain address, but its
// auction can still be running until someone penalizes it, so auctioning
// beats invalid too. Validity only decides when no token state exists.
func (r *Resolver) Domain(ctx context.Context, n string) (*Domain, error) {
	if err := name.Validate(n); err != nil {
		registryUTXOs, err := r.src.UTXOs(ctx, r.set.Registry.Address)
		if err != nil {
			return nil, fmt.Errorf("domain %s: %w", n, err)
		}
		d := &Domain{Name: n, Status: StatusInvalid}
		if auction, ok := locator.Classify(registryUTXOs, r.category).RunningAuction(n); ok {
			d.Auction = &auction
			d.Status = StatusAuctioning
		}
		log.Resolver.Debug().Str("name", n).Stringer("status", d.Status).Msg("domain resolved")
		return d, nil
	}
	handle, err := r.set.Domains.Derive(n)
	if err != nil {
		return nil, err
	}

	var registryUTXOs, domainUTXOs []ledger.UTXO
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		registryUTXOs, err = r.src.UTXOs(gctx, r.set.Registry.Address)
		return err
	})
	g.Go(func() error {
		var err error
		domainUTXOs, err = r.src.UTXOs(gctx, handle.Address)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("domain %s: %w", n, err)
	}

	d := &Domain{
		Name:        n,
		Status:      StatusAvailable,
		Handle:      handle,
		DomainUTXOs: domainUTXOs,
	}
	for _, u := range domainUTXOs {
		if u.Token != nil && u.Token.Category == r.category {
			d.Status = StatusRegistered
			break
		}
	}
	// A missing auction here is the normal answer, not a failure.
	if auction, ok := locator.Classify(registryUTXOs, r.category).RunningAuction(n); ok {
		d.Auction = &auction
		if d.Status != StatusRegistered {
			d.Status = StatusAuctioning
		}
	}

	log.Resolver.Debug().Str("name", n).Stringer("status", d.Status).Msg("domain resolved")
	return d, nil
}

// Auctions lists every running auction with the minimum raise required to
// take it over.
func (r *Resolver) Auctions(ctx context.Context) ([]AuctionInfo, error) {
	utxos, err := r.src.UTXOs(ctx, r.set.Registry.Address)
	if err != nil {
		return nil, fmt.Errorf("registry utxos: %w", err)
	}

	running := locator.Classify(utxos, r.category).Auctions()
	infos := make([]AuctionInfo, 0, len(running))
	for _, a := range running {
		infos = append(infos, AuctionInfo{
			Name:           a.Name,
			RegistrationID: a.RegistrationID,
			CurrentBid:     a.UTXO.Value,
			MinimumNextBid: pricing.MinimumBid(a.UTXO.Value, r.minBidIncreasePct),
		})
	}
	return infos, nil
}

// LookupAddress returns the names whose ownership tokens sit at addr.
func (r *Resolver) LookupAddress(ctx context.Context, addr types.Address) ([]string, error) {
	utxos, err := r.src.UTXOs(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("utxos of %s: %w", addr, err)
	}

	var names []string
	for _, u := range utxos {
		if u.Token == nil || u.Token.Category != r.category {
			continue
		}
		if u.Token.Capability != types.CapabilityNone {
			continue
		}
		if _, n, ok := locator.DecodeNameCommitment(u.Token.Commitment); ok {
			names = append(names, n)
		}
	}
	return names, nil
}

// ResolveName returns the current owner of a registered name: the address
// holding its ownership token. With an indexer configured the holder list
// comes from it; otherwise the domain address's history is replayed. Either
// way the latest holding wins, with the first seen winning a height tie.
func (r *Resolver) ResolveName(ctx context.Context, n string) (types.Address, error) {
	if err := name.Validate(n); err != nil {
		return types.Address{}, err
	}
	handle, err := r.set.Domains.Derive(n)
	if err != nil {
		return types.Address{}, err
	}

	domainUTXOs, err := r.src.UTXOs(ctx, handle.Address)
	if err != nil {
		return types.Address{}, fmt.Errorf("domain utxos: %w", err)
	}
	auth, err := locator.Classify(domainUTXOs, r.category).InternalAuth()
	if err != nil {
		return types.Address{}, fmt.Errorf("%w: %s", ErrNotRegistered, n)
	}
	registrationID, _, ok := locator.DecodeNameCommitment(auth.Token.Commitment)
	if !ok {
		return types.Address{}, fmt.Errorf("auth commitment %x: bad layout", auth.Token.Commitment)
	}
	commitment := locator.NameCommitment(registrationID, n)

	if r.indexer != nil {
		return r.resolveViaIndexer(ctx, n, commitment)
	}
	return r.resolveViaHistory(ctx, n, handle.Address, commitment)
}

func (r *Resolver) resolveViaIndexer(ctx context.Context, n string, commitment []byte) (types.Address, error) {
	holders, err := r.indexer.TokenHolders(ctx, r.category, commitment)
	if err != nil {
		return types.Address{}, fmt.Errorf("indexer: %w", err)
	}
	if len(holders) == 0 {
		return types.Address{}, fmt.Errorf("%w: %s", ErrNotRegistered, n)
	}
	best := holders[0]
	for _, h := range holders[1:] {
		if h.Height > best.Height {
			best = h
		}
	}
	return best.Address, nil
}

// resolveViaHistory replays the domain address's history. The claim and
// every later transfer of the ownership token pay the domain address, so
// its history contains every change of owner.
func (r *Resolver) resolveViaHistory(ctx context.Context, n string, domainAddr types.Address, commitment []byte) (types.Address, error) {
	history, err := r.src.History(ctx, domainAddr)
	if err != nil {
		return types.Address{}, fmt.Errorf("domain history: %w", err)
	}

	var (
		owner      types.Address
		ownerSet   bool
		bestHeight uint64
	)
	for _, item := range history {
		transaction, err := r.src.Transaction(ctx, item.TxID)
		if err != nil {
			return types.Address{}, fmt.Errorf("fetch %s: %w", item.TxID, err)
		}
		for _, out := range transaction.Outputs {
			if out.Token == nil || out.Token.Category != r.category {
				continue
			}
			if out.Token.Capability != types.CapabilityNone {
				continue
			}
			if !bytes.Equal(out.Token.Commitment, commitment) {
				continue
			}
			if out.Script.Type != types.ScriptTypeP2PKH {
				continue
			}
			addr, ok := out.Script.Address()
			if !ok {
				continue
			}
			if !ownerSet || item.Height > bestHeight {
				owner = addr
				ownerSet = true
				bestHeight = item.Height
			}
		}
	}
	if !ownerSet {
		return types.Address{}, fmt.Errorf("%w: %s", ErrNotRegistered, n)
	}
	return owner, nil
}
