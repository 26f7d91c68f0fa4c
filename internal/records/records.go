// Package records implements the append-only record protocol of registered
// names. Records are UTF-8 strings carried in zero-value data outputs of
// transactions at the domain's own address; a record is revoked by
// publishing a tombstone naming its hash. The chain is never rewritten,
// resolution replays history and filters.
package records

import (
	"encoding/hex"
	"strings"

	"github.com/nomen-protocol/nomen-go/pkg/crypto"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// TombstonePrefix marks a revocation record.
const TombstonePrefix = "RMV "

// Tombstone returns the revocation record for record.
func Tombstone(record string) string {
	h := crypto.Hash([]byte(record))
	return TombstonePrefix + hex.EncodeToString(h[:])
}

// IsTombstone reports whether record is a revocation marker.
func IsTombstone(record string) bool {
	return strings.HasPrefix(record, TombstonePrefix)
}

// FilterValid removes revoked records and the tombstones themselves.
// A record is revoked iff its tombstone appears anywhere in the set,
// regardless of order. Survivor order is preserved.
func FilterValid(records []string) []string {
	revoked := make(map[string]bool)
	for _, r := range records {
		if IsTombstone(r) {
			revoked[strings.TrimPrefix(r, TombstonePrefix)] = true
		}
	}

	var valid []string
	for _, r := range records {
		if IsTombstone(r) {
			continue
		}
		h := crypto.Hash([]byte(r))
		if revoked[hex.EncodeToString(h[:])] {
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

// FromTransaction extracts every record carried by a transaction: the
// payload of each zero-value data output, decoded as UTF-8.
func FromTransaction(transaction *tx.Transaction) []string {
	var records []string
	for _, out := range transaction.Outputs {
		if out.Value == 0 && out.IsDataCarrier() {
			records = append(records, string(out.Script.Data))
		}
	}
	return records
}

// CandidateTransactions filters a history down to transactions that can
// carry records for the domain: at least one zero-value data output and at
// least one token output of the registry category paying the domain's own
// address.
func CandidateTransactions(txs []*tx.Transaction, domainAddr types.Address, category types.Category) []*tx.Transaction {
	var candidates []*tx.Transaction
	for _, transaction := range txs {
		hasData := false
		hasToken := false
		for _, out := range transaction.Outputs {
			if out.Value == 0 && out.IsDataCarrier() {
				hasData = true
				continue
			}
			if out.Token == nil || out.Token.Category != category {
				continue
			}
			if addr, ok := out.Script.Address(); ok && addr == domainAddr {
				hasToken = true
			}
		}
		if hasData && hasToken {
			candidates = append(candidates, transaction)
		}
	}
	return candidates
}
