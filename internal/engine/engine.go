// Package engine wires the protocol components into one facade. Everything
// callers do goes through Engine: read queries return resolved state,
// write operations return unsigned templates for an external signer.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nomen-protocol/nomen-go/config"
	"github.com/nomen-protocol/nomen-go/internal/assemble"
	"github.com/nomen-protocol/nomen-go/internal/cache"
	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/indexer"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/internal/log"
	"github.com/nomen-protocol/nomen-go/internal/records"
	"github.com/nomen-protocol/nomen-go/internal/resolve"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// Engine is the protocol client facade.
type Engine struct {
	cfg       *config.Config
	set       *covenant.Set
	src       ledger.Source
	assembler *assemble.Assembler
	resolver  *resolve.Resolver
	records   *records.Resolver
	txCache   *cache.TxCache
}

// New assembles an engine from configuration, a covenant set and a ledger
// source. The transaction cache wraps src when enabled in the
// configuration; an indexer client is attached when one is configured.
func New(cfg *config.Config, set *covenant.Set, src ledger.Source) (*Engine, error) {
	category, err := cfg.Registry.Category()
	if err != nil {
		return nil, fmt.Errorf("registry category: %w", err)
	}

	e := &Engine{cfg: cfg, set: set, src: src}

	if cfg.Cache.Enabled {
		var db cache.DB
		if cfg.Cache.Dir != "" {
			db, err = cache.NewBadger(cfg.Cache.Dir)
			if err != nil {
				return nil, fmt.Errorf("open cache: %w", err)
			}
		} else {
			db = cache.NewMemory()
		}
		e.txCache = cache.NewTxCache(db)
		e.src = ledger.NewCachedSource(src, e.txCache)
	}

	e.assembler, err = assemble.New(cfg.Registry, set, e.src)
	if err != nil {
		return nil, err
	}

	var idx *indexer.Client
	if cfg.Indexer.URL != "" {
		idx = indexer.NewClient(cfg.Indexer.URL)
	}
	e.resolver = resolve.New(e.src, set, category, cfg.Registry.MinBidIncreasePct, idx)
	e.records = records.NewResolver(e.src, set.Domains, category)

	log.Engine.Info().
		Str("network", string(cfg.Network)).
		Str("tld", cfg.Registry.TLD).
		Bool("cache", cfg.Cache.Enabled).
		Bool("indexer", idx != nil).
		Msg("engine ready")
	return e, nil
}

// Close releases the cache, when one is open.
func (e *Engine) Close() error {
	if e.txCache == nil {
		return nil
	}
	return e.txCache.Close()
}

// normalize strips the configured TLD so callers may pass either
// "alice" or "alice.nom".
func (e *Engine) normalize(name string) string {
	return strings.TrimSuffix(name, e.cfg.Registry.TLD)
}

// Accumulate builds a fee sweep template.
func (e *Engine) Accumulate(ctx context.Context, params assemble.AccumulateParams) (*assemble.Template, error) {
	return e.assembler.Accumulate(ctx, params)
}

// Auction builds a template starting an auction for a name.
func (e *Engine) Auction(ctx context.Context, params assemble.AuctionParams) (*assemble.Template, error) {
	params.Name = e.normalize(params.Name)
	return e.assembler.Auction(ctx, params)
}

// Bid builds a template raising a running auction.
func (e *Engine) Bid(ctx context.Context, params assemble.BidParams) (*assemble.Template, error) {
	params.Name = e.normalize(params.Name)
	return e.assembler.Bid(ctx, params)
}

// ClaimDomain builds a template converting a matured auction into ownership.
func (e *Engine) ClaimDomain(ctx context.Context, params assemble.ClaimDomainParams) (*assemble.Template, error) {
	params.Name = e.normalize(params.Name)
	return e.assembler.ClaimDomain(ctx, params)
}

// Records builds a template publishing and revoking records for an owned
// name.
func (e *Engine) Records(ctx context.Context, params assemble.RecordsParams) (*assemble.Template, error) {
	params.Name = e.normalize(params.Name)
	return e.assembler.Records(ctx, params)
}

// PenalizeInvalidName builds a template dissolving an auction for a
// malformed name.
func (e *Engine) PenalizeInvalidName(ctx context.Context, params assemble.PenaltyParams) (*assemble.Template, error) {
	params.Name = e.normalize(params.Name)
	return e.assembler.PenalizeInvalidName(ctx, params)
}

// PenalizeDuplicateAuction builds a template dissolving the later of two
// auctions for the same name.
func (e *Engine) PenalizeDuplicateAuction(ctx context.Context, params assemble.PenaltyParams) (*assemble.Template, error) {
	params.Name = e.normalize(params.Name)
	return e.assembler.PenalizeDuplicateAuction(ctx, params)
}

// PenalizeIllegalAuction builds a template dissolving an auction for an
// already-registered name.
func (e *Engine) PenalizeIllegalAuction(ctx context.Context, params assemble.PenaltyParams) (*assemble.Template, error) {
	params.Name = e.normalize(params.Name)
	return e.assembler.PenalizeIllegalAuction(ctx, params)
}

// Domain resolves a name's lifecycle status.
func (e *Engine) Domain(ctx context.Context, name string) (*resolve.Domain, error) {
	return e.resolver.Domain(ctx, e.normalize(name))
}

// Auctions lists every running auction.
func (e *Engine) Auctions(ctx context.Context) ([]resolve.AuctionInfo, error) {
	return e.resolver.Auctions(ctx)
}

// LookupAddress returns the names owned by an address.
func (e *Engine) LookupAddress(ctx context.Context, addr types.Address) ([]string, error) {
	return e.resolver.LookupAddress(ctx, addr)
}

// ResolveName returns the address owning a name.
func (e *Engine) ResolveName(ctx context.Context, name string) (types.Address, error) {
	return e.resolver.ResolveName(ctx, e.normalize(name))
}

// FetchRecords returns the parsed record tree of a name.
func (e *Engine) FetchRecords(ctx context.Context, name string) (*records.Node, error) {
	return e.records.Fetch(ctx, e.normalize(name))
}
