package records

import (
	"context"
	"fmt"

	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/internal/log"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// Resolver assembles the current record tree of a name by replaying the
// domain address's history.
type Resolver struct {
	src      ledger.Source
	domains  covenant.DomainDeriver
	category types.Category
}

// NewResolver creates a record resolver over the given ledger source.
func NewResolver(src ledger.Source, domains covenant.DomainDeriver, category types.Category) *Resolver {
	return &Resolver{src: src, domains: domains, category: category}
}

// Fetch returns the parsed record tree of a name. History order is ledger
// order, so later records and tombstones win over earlier ones.
func (r *Resolver) Fetch(ctx context.Context, name string) (*Node, error) {
	handle, err := r.domains.Derive(name)
	if err != nil {
		return nil, err
	}

	history, err := r.src.History(ctx, handle.Address)
	if err != nil {
		return nil, fmt.Errorf("history of %s: %w", name, err)
	}

	txs := make([]*tx.Transaction, 0, len(history))
	for _, item := range history {
		transaction, err := r.src.Transaction(ctx, item.TxID)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", item.TxID, err)
		}
		txs = append(txs, transaction)
	}

	var raw []string
	seen := make(map[string]bool)
	for _, transaction := range CandidateTransactions(txs, handle.Address, r.category) {
		for _, record := range FromTransaction(transaction) {
			if seen[record] {
				continue
			}
			seen[record] = true
			raw = append(raw, record)
		}
	}

	valid := FilterValid(raw)
	log.Records.Debug().
		Str("name", name).
		Int("history", len(history)).
		Int("records", len(raw)).
		Int("valid", len(valid)).
		Msg("records fetched")
	return Parse(valid), nil
}
