package assemble

import (
	"context"
	"fmt"

	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/name"
	"github.com/nomen-protocol/nomen-go/internal/records"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// RecordsParams parameterizes publishing records for an owned name.
type RecordsParams struct {
	Name string
	// Owner holds the name's ownership token and funds the transaction.
	Owner types.Address
	// Add lists records to publish.
	Add []string
	// Remove lists previously published records to revoke. Each entry is
	// the record content; its tombstone is computed here.
	Remove []string
}

// Records publishes and revokes records for a registered name. Each record
// and each tombstone becomes one zero-value data output; the ownership and
// internal auth tokens pass through unchanged, the auth token's re-emission
// at the domain address marking the transaction as record-bearing.
func (a *Assembler) Records(ctx context.Context, params RecordsParams) (*Template, error) {
	if err := name.Validate(params.Name); err != nil {
		return nil, err
	}
	if len(params.Add) == 0 && len(params.Remove) == 0 {
		return nil, fmt.Errorf("records for %q: nothing to publish", params.Name)
	}

	owner, err := a.addressSnapshot(ctx, params.Owner)
	if err != nil {
		return nil, err
	}
	ownership, _, err := owner.Ownership(params.Name)
	if err != nil {
		return nil, err
	}
	funding, err := owner.Funding()
	if err != nil {
		return nil, err
	}

	domainHandle, domain, err := a.domainSnapshot(ctx, params.Name)
	if err != nil {
		return nil, err
	}
	auth, err := domain.InternalAuth()
	if err != nil {
		return nil, err
	}

	b := tx.NewBuilder()

	b.AddInput(ownership.Outpoint)
	b.AddTokenOutput(ownership.Value, types.P2PKH(params.Owner), ownership.Token)
	unlocks := []Unlock{{InputIndex: 0, Signer: SignerPayer}}

	b.AddInput(auth.Outpoint)
	b.AddTokenOutput(auth.Value, types.P2SH(domainHandle.Address), auth.Token)
	unlocks = append(unlocks, Unlock{InputIndex: 1, Signer: covenant.RoleDomain.String()})

	for _, record := range params.Add {
		b.AddDataOutput([]byte(record))
	}
	for _, record := range params.Remove {
		b.AddDataOutput([]byte(records.Tombstone(record)))
	}

	b.AddInput(funding.Outpoint)
	changeIndex := b.OutputCount()
	b.AddOutput(funding.Value, types.P2PKH(params.Owner))
	unlocks = append(unlocks, Unlock{InputIndex: 2, Signer: SignerPayer})

	return a.finish(b, changeIndex, unlocks, "records")
}
