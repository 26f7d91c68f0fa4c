package assemble

import (
	"context"
	"fmt"

	"github.com/nomen-protocol/nomen-go/config"
	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// AccumulateParams parameterizes a fee sweep.
type AccumulateParams struct {
	// Payer funds the transaction fee and receives the change.
	Payer types.Address
}

// Accumulate sweeps the satoshi value accrued on the registration counter to
// the configured fee collector. Token state is unchanged: the counter is
// re-emitted with its commitment and fungible balance intact, carrying only
// the dust minimum.
func (a *Assembler) Accumulate(ctx context.Context, params AccumulateParams) (*Template, error) {
	collector, err := a.registry.FeeCollector()
	if err != nil {
		return nil, err
	}

	registry, err := a.registrySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	thread, err := registry.Thread(a.set.Accumulator)
	if err != nil {
		return nil, err
	}
	counter, _, err := registry.Counter()
	if err != nil {
		return nil, err
	}
	if counter.Value <= config.DustLimit {
		return nil, fmt.Errorf("accumulate: counter holds no accrued value (%d)", counter.Value)
	}
	accrued := counter.Value - config.DustLimit

	payer, err := a.addressSnapshot(ctx, params.Payer)
	if err != nil {
		return nil, err
	}
	funding, err := payer.Funding()
	if err != nil {
		return nil, err
	}

	b := tx.NewBuilder()
	unlocks := []Unlock{threadBack(b, thread, a.set.Registry.Address, covenant.RoleAccumulator, 0)}

	b.AddInput(counter.Outpoint)
	b.AddTokenOutput(config.DustLimit, types.P2SH(a.set.Registry.Address), counter.Token)
	unlocks = append(unlocks, Unlock{InputIndex: 1, Signer: covenant.RoleRegistry.String()})

	b.AddOutput(accrued, types.P2PKH(collector))

	b.AddInput(funding.Outpoint)
	changeIndex := b.OutputCount()
	b.AddOutput(funding.Value, types.P2PKH(params.Payer))
	unlocks = append(unlocks, Unlock{InputIndex: 2, Signer: SignerPayer})

	return a.finish(b, changeIndex, unlocks, "accumulate")
}
