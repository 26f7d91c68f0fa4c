package assemble

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nomen-protocol/nomen-go/config"
	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/internal/locator"
	"github.com/nomen-protocol/nomen-go/internal/name"
	"github.com/nomen-protocol/nomen-go/internal/records"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

const testCategoryHex = "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"

var (
	testCategory  = types.Category{0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc}
	testBidder    = types.Address{0xb0}
	testCollector = types.Address{0xfc}
	testIncentive = types.Address{0xf1}
)

// fixture is an in-memory ledger with a registry snapshot, payer coins and
// per-address UTXO sets. Outpoints are generated so every UTXO is
// addressable for conservation checks.
type fixture struct {
	utxos map[types.Address][]ledger.UTXO
	txs   map[types.Hash]*tx.Transaction
	byOut map[types.Outpoint]ledger.UTXO
	next  byte
}

func newFixture() *fixture {
	return &fixture{
		utxos: make(map[types.Address][]ledger.UTXO),
		txs:   make(map[types.Hash]*tx.Transaction),
		byOut: make(map[types.Outpoint]ledger.UTXO),
	}
}

func (f *fixture) add(addr types.Address, value uint64, script types.Script, token *types.TokenData) ledger.UTXO {
	f.next++
	u := ledger.UTXO{
		Outpoint: types.Outpoint{TxID: types.Hash{0xf0, f.next}},
		Value:    value,
		Script:   script,
		Token:    token,
		Height:   uint64(f.next),
	}
	f.utxos[addr] = append(f.utxos[addr], u)
	f.byOut[u.Outpoint] = u
	return u
}

func (f *fixture) UTXOs(ctx context.Context, addr types.Address) ([]ledger.UTXO, error) {
	return f.utxos[addr], nil
}

func (f *fixture) History(ctx context.Context, addr types.Address) ([]ledger.HistoryItem, error) {
	return nil, nil
}

func (f *fixture) Transaction(ctx context.Context, id types.Hash) (*tx.Transaction, error) {
	transaction, ok := f.txs[id]
	if !ok {
		return nil, errors.New("unknown transaction")
	}
	return transaction, nil
}

func testSet() *covenant.Set {
	h := func(role covenant.Role, b byte) covenant.Handle {
		return covenant.Handle{
			Role:       role,
			Address:    types.Address{0xc0, b},
			ScriptHash: types.Hash{0xc0, b},
		}
	}
	return &covenant.Set{
		Registry:         h(covenant.RoleRegistry, 0x01),
		Auction:          h(covenant.RoleAuction, 0x02),
		Bid:              h(covenant.RoleBid, 0x03),
		DomainFactory:    h(covenant.RoleDomainFactory, 0x04),
		Accumulator:      h(covenant.RoleAccumulator, 0x05),
		NameEnforcer:     h(covenant.RoleNameEnforcer, 0x06),
		ConflictResolver: h(covenant.RoleConflictResolver, 0x07),
		OwnershipGuard:   h(covenant.RoleOwnershipGuard, 0x08),
		Domains:          covenant.NewScriptDeriver(types.Hash{0xdd}),
	}
}

func testRegistryConfig() config.RegistryConfig {
	return config.RegistryConfig{
		CategoryHex:          testCategoryHex,
		TLD:                  ".nom",
		MinStartingBid:       10_000,
		MinBidIncreasePct:    5,
		MinWaitBlocks:        4_320,
		CreatorIncentiveAddr: testIncentive.Hex(),
		FeeCollectorAddr:     testCollector.Hex(),
		FeeRate:              1,
	}
}

// seedRegistry populates the registry address with all thread tokens and a
// counter at the given registration count.
func seedRegistry(f *fixture, set *covenant.Set, count, counterValue uint64) {
	for _, handle := range set.Threads() {
		f.add(set.Registry.Address, 800, types.P2SH(set.Registry.Address), &types.TokenData{
			Category:   testCategory,
			Capability: types.CapabilityNone,
			Commitment: handle.ScriptHash[:],
		})
	}
	var spent uint64
	for id := uint64(1); id <= count; id++ {
		spent += id
	}
	f.add(set.Registry.Address, counterValue, types.P2SH(set.Registry.Address), &types.TokenData{
		Category:   testCategory,
		Amount:     config.MaxTokenAmount - spent,
		Capability: types.CapabilityMinting,
		Commitment: locator.CounterCommitment(count),
	})
}

// seedAuction adds a running auction to the registry and the transaction
// that created it, with bidder change as the last P2PKH output.
func seedAuction(f *fixture, set *covenant.Set, id uint64, n string, value uint64, bidder types.Address) ledger.UTXO {
	u := f.add(set.Registry.Address, value, types.P2SH(set.Registry.Address), &types.TokenData{
		Category:   testCategory,
		Amount:     id,
		Capability: types.CapabilityMutable,
		Commitment: locator.NameCommitment(id, n),
	})
	creating := &tx.Transaction{
		Version: 1,
		Outputs: []tx.Output{
			{Value: value, Script: types.P2SH(set.Registry.Address)},
			{Value: 100, Script: types.P2PKH(bidder)},
		},
	}
	f.txs[u.Outpoint.TxID] = creating
	return u
}

func newTestAssembler(t *testing.T, f *fixture) *Assembler {
	t.Helper()
	a, err := New(testRegistryConfig(), testSet(), f)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// checkTemplate verifies the invariants every template must hold: unlocks
// cover each input exactly once, satoshis balance up to the paid fee, and
// token amounts balance up to burns.
func checkTemplate(t *testing.T, f *fixture, tpl *Template) (fee uint64) {
	t.Helper()

	covered := make(map[int]bool)
	for _, u := range tpl.Unlocks {
		if covered[u.InputIndex] {
			t.Errorf("input %d unlocked twice", u.InputIndex)
		}
		covered[u.InputIndex] = true
	}
	for i := range tpl.Tx.Inputs {
		if !covered[i] {
			t.Errorf("input %d has no unlock", i)
		}
	}
	if len(tpl.Unlocks) != len(tpl.Tx.Inputs) {
		t.Errorf("%d unlocks for %d inputs", len(tpl.Unlocks), len(tpl.Tx.Inputs))
	}

	var inValue, inTokens uint64
	for _, in := range tpl.Tx.Inputs {
		u, ok := f.byOut[in.PrevOut]
		if !ok {
			t.Fatalf("input %v not in fixture", in.PrevOut)
		}
		inValue += u.Value
		if u.Token != nil && u.Token.Category == testCategory {
			inTokens += u.Token.Amount
		}
	}

	outValue, err := tpl.Tx.TotalOutputValue()
	if err != nil {
		t.Fatal(err)
	}
	var outTokens, burned uint64
	for _, out := range tpl.Tx.Outputs {
		if out.Token == nil || out.Token.Category != testCategory {
			continue
		}
		outTokens += out.Token.Amount
		if out.Script.Type == types.ScriptTypeBurn {
			burned += out.Token.Amount
		}
	}

	if inValue < outValue {
		t.Fatalf("outputs %d exceed inputs %d", outValue, inValue)
	}
	fee = inValue - outValue
	wantFee := tx.RequiredFee(tpl.Tx, testRegistryConfig().FeeRate)
	if fee != wantFee {
		t.Errorf("fee = %d, want %d", fee, wantFee)
	}

	if inTokens != outTokens {
		t.Errorf("token amounts: in %d, out %d (burned %d)", inTokens, outTokens, burned)
	}
	return fee
}

func TestAuction(t *testing.T) {
	f := newFixture()
	set := testSet()
	seedRegistry(f, set, 41, config.DustLimit)
	funding := f.add(testBidder, 100_000, types.P2PKH(testBidder), nil)
	a := newTestAssembler(t, f)

	tpl, err := a.Auction(context.Background(), AuctionParams{Name: "alice", Amount: 12_000, Bidder: testBidder})
	if err != nil {
		t.Fatalf("Auction: %v", err)
	}
	fee := checkTemplate(t, f, tpl)

	if len(tpl.Tx.Inputs) != 3 || len(tpl.Tx.Outputs) != 4 {
		t.Fatalf("shape = %d inputs, %d outputs", len(tpl.Tx.Inputs), len(tpl.Tx.Outputs))
	}

	counter := tpl.Tx.Outputs[1]
	if count, ok := locator.DecodeCounter(counter.Token.Commitment); !ok || count != 42 {
		t.Errorf("counter advanced to %d, want 42", count)
	}

	auction := tpl.Tx.Outputs[2]
	if auction.Value != 12_000 {
		t.Errorf("auction value = %d, want 12000", auction.Value)
	}
	if auction.Token.Capability != types.CapabilityMutable || auction.Token.Amount != 42 {
		t.Errorf("auction token = %+v", auction.Token)
	}
	if !bytes.Equal(auction.Token.Commitment[8:], []byte("alice")) {
		t.Errorf("commitment name bytes = %q", auction.Token.Commitment[8:])
	}

	change := tpl.Tx.Outputs[3]
	if change.Value != funding.Value-12_000-fee {
		t.Errorf("change = %d, want %d", change.Value, funding.Value-12_000-fee)
	}
}

func TestAuctionRejections(t *testing.T) {
	f := newFixture()
	set := testSet()
	seedRegistry(f, set, 41, config.DustLimit)
	seedAuction(f, set, 30, "taken", 15_000, types.Address{0x0a})
	f.add(testBidder, 100_000, types.P2PKH(testBidder), nil)
	a := newTestAssembler(t, f)
	ctx := context.Background()

	if _, err := a.Auction(ctx, AuctionParams{Name: "bad name!", Amount: 12_000, Bidder: testBidder}); !errors.Is(err, name.ErrInvalidName) {
		t.Errorf("invalid name: %v", err)
	}
	if _, err := a.Auction(ctx, AuctionParams{Name: "taken", Amount: 50_000, Bidder: testBidder}); !errors.Is(err, ErrNameTaken) {
		t.Errorf("running auction: %v", err)
	}
	if _, err := a.Auction(ctx, AuctionParams{Name: "alice", Amount: 500, Bidder: testBidder}); !errors.Is(err, ErrInsufficientBid) {
		t.Errorf("low bid: %v", err)
	}

	// A registered name is taken even with no running auction.
	handle, err := set.Domains.Derive("claimed")
	if err != nil {
		t.Fatal(err)
	}
	f.add(handle.Address, config.DustLimit, types.P2SH(handle.Address), &types.TokenData{
		Category:   testCategory,
		Capability: types.CapabilityNone,
		Commitment: locator.NameCommitment(3, "claimed"),
	})
	if _, err := a.Auction(ctx, AuctionParams{Name: "claimed", Amount: 50_000, Bidder: testBidder}); !errors.Is(err, ErrNameTaken) {
		t.Errorf("registered name: %v", err)
	}
}

func TestAuctionFundingBelowFee(t *testing.T) {
	f := newFixture()
	set := testSet()
	seedRegistry(f, set, 41, config.DustLimit)
	// Covers the bid exactly, leaving nothing for the fee.
	f.add(testBidder, 12_000, types.P2PKH(testBidder), nil)
	a := newTestAssembler(t, f)

	_, err := a.Auction(context.Background(), AuctionParams{Name: "alice", Amount: 12_000, Bidder: testBidder})
	if !errors.Is(err, tx.ErrChangeBelowFee) {
		t.Errorf("underfunded auction: %v", err)
	}

	// The estimate headroom is enough for the real fee.
	estimate := tx.EstimateTxFee(3, 4, testRegistryConfig().FeeRate, tokenOutputSlack+len("alice"))
	f.utxos[testBidder] = nil
	f.add(testBidder, 12_000+estimate, types.P2PKH(testBidder), nil)
	tpl, err := a.Auction(context.Background(), AuctionParams{Name: "alice", Amount: 12_000, Bidder: testBidder})
	if err != nil {
		t.Fatalf("Auction with headroom: %v", err)
	}
	checkTemplate(t, f, tpl)
}

func TestBid(t *testing.T) {
	f := newFixture()
	set := testSet()
	previous := types.Address{0x0a}
	seedRegistry(f, set, 41, config.DustLimit)
	seedAuction(f, set, 40, "alice", 10_000, previous)
	f.add(testBidder, 100_000, types.P2PKH(testBidder), nil)
	a := newTestAssembler(t, f)
	ctx := context.Background()

	if _, err := a.Bid(ctx, BidParams{Name: "alice", Amount: 10_499, Bidder: testBidder}); !errors.Is(err, ErrInsufficientBid) {
		t.Fatalf("below minimum: %v", err)
	}

	tpl, err := a.Bid(ctx, BidParams{Name: "alice", Amount: 10_500, Bidder: testBidder})
	if err != nil {
		t.Fatalf("Bid: %v", err)
	}
	checkTemplate(t, f, tpl)

	auction := tpl.Tx.Outputs[1]
	if auction.Value != 10_500 || auction.Token.Amount != 40 {
		t.Errorf("auction output = %+v", auction)
	}
	refund := tpl.Tx.Outputs[2]
	if addr, _ := refund.Script.Address(); addr != previous || refund.Value != 10_000 {
		t.Errorf("refund = %d to %s", refund.Value, addr)
	}
}

func TestBidNoAuction(t *testing.T) {
	f := newFixture()
	seedRegistry(f, testSet(), 41, config.DustLimit)
	f.add(testBidder, 100_000, types.P2PKH(testBidder), nil)
	a := newTestAssembler(t, f)

	_, err := a.Bid(context.Background(), BidParams{Name: "ghost", Amount: 20_000, Bidder: testBidder})
	if !errors.Is(err, locator.ErrRoleNotFound) {
		t.Errorf("Bid without auction: %v", err)
	}
}

func TestClaimDomain(t *testing.T) {
	f := newFixture()
	set := testSet()
	winner := types.Address{0x0e}
	seedRegistry(f, set, 42, config.DustLimit)
	seedAuction(f, set, 42, "alice", 12_000, winner)
	funding := f.add(winner, 100_000, types.P2PKH(winner), nil)
	a := newTestAssembler(t, f)

	tpl, err := a.ClaimDomain(context.Background(), ClaimDomainParams{Name: "alice", Winner: winner})
	if err != nil {
		t.Fatalf("ClaimDomain: %v", err)
	}
	fee := checkTemplate(t, f, tpl)

	if tpl.Tx.LockTime != 4_320 {
		t.Errorf("locktime = %d, want 4320", tpl.Tx.LockTime)
	}

	// Counter takes back the auction's fungible amount and accrues the
	// unclaimed value.
	counter := tpl.Tx.Outputs[1]
	var spent uint64
	for id := uint64(1); id <= 42; id++ {
		spent += id
	}
	if counter.Token.Amount != config.MaxTokenAmount-spent+42 {
		t.Errorf("counter amount = %d", counter.Token.Amount)
	}

	ownership := tpl.Tx.Outputs[2]
	if addr, _ := ownership.Script.Address(); addr != winner {
		t.Errorf("ownership to %s, want %s", addr, winner)
	}
	if ownership.Token.Capability != types.CapabilityNone {
		t.Errorf("ownership capability = %s", ownership.Token.Capability)
	}
	id, n, ok := locator.DecodeNameCommitment(ownership.Token.Commitment)
	if !ok || id != 42 || n != "alice" {
		t.Errorf("ownership commitment = %d %q", id, n)
	}

	handle, err := set.Domains.Derive("alice")
	if err != nil {
		t.Fatal(err)
	}
	auth := tpl.Tx.Outputs[3]
	if addr, _ := auth.Script.Address(); addr != handle.Address {
		t.Errorf("auth token at %s, want domain %s", addr, handle.Address)
	}

	incentive := tpl.Tx.Outputs[4]
	if addr, _ := incentive.Script.Address(); addr != testIncentive {
		t.Errorf("incentive to %s", addr)
	}
	// (12000-546) * (100000-42) / 100000
	if incentive.Value != 11_449 {
		t.Errorf("incentive = %d, want 11449", incentive.Value)
	}

	change := tpl.Tx.Outputs[5]
	if change.Value != funding.Value-2*config.DustLimit-fee {
		t.Errorf("change = %d", change.Value)
	}
}

func TestAccumulate(t *testing.T) {
	f := newFixture()
	set := testSet()
	payer := types.Address{0x0f}
	seedRegistry(f, set, 42, config.DustLimit+30_000)
	f.add(payer, 10_000, types.P2PKH(payer), nil)
	a := newTestAssembler(t, f)

	tpl, err := a.Accumulate(context.Background(), AccumulateParams{Payer: payer})
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	checkTemplate(t, f, tpl)

	counter := tpl.Tx.Outputs[1]
	if counter.Value != config.DustLimit {
		t.Errorf("counter value = %d, want dust", counter.Value)
	}
	if count, ok := locator.DecodeCounter(counter.Token.Commitment); !ok || count != 42 {
		t.Errorf("counter commitment changed: %d", count)
	}
	swept := tpl.Tx.Outputs[2]
	if addr, _ := swept.Script.Address(); addr != testCollector || swept.Value != 30_000 {
		t.Errorf("swept %d to %s", swept.Value, addr)
	}
}

func TestAccumulateRequiresCollector(t *testing.T) {
	f := newFixture()
	seedRegistry(f, testSet(), 42, config.DustLimit+30_000)
	cfg := testRegistryConfig()
	cfg.FeeCollectorAddr = ""
	a, err := New(cfg, testSet(), f)
	if err != nil {
		t.Fatal(err)
	}

	_, err = a.Accumulate(context.Background(), AccumulateParams{Payer: types.Address{0x0f}})
	if !errors.Is(err, config.ErrMissingConfig) {
		t.Errorf("Accumulate without collector: %v", err)
	}
}

func TestRecords(t *testing.T) {
	f := newFixture()
	set := testSet()
	owner := types.Address{0x0e}
	handle, err := set.Domains.Derive("alice")
	if err != nil {
		t.Fatal(err)
	}
	f.add(owner, config.DustLimit, types.P2PKH(owner), &types.TokenData{
		Category:   testCategory,
		Capability: types.CapabilityNone,
		Commitment: locator.NameCommitment(42, "alice"),
	})
	f.add(owner, 50_000, types.P2PKH(owner), nil)
	f.add(handle.Address, config.DustLimit, types.P2SH(handle.Address), &types.TokenData{
		Category:   testCategory,
		Capability: types.CapabilityNone,
		Commitment: locator.NameCommitment(42, "alice"),
	})
	a := newTestAssembler(t, f)

	tpl, err := a.Records(context.Background(), RecordsParams{
		Name:   "alice",
		Owner:  owner,
		Add:    []string{"web=https://example.com"},
		Remove: []string{"web=https://old.example.com"},
	})
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	checkTemplate(t, f, tpl)

	payloads := tpl.Tx.DataPayloads()
	if len(payloads) != 2 {
		t.Fatalf("%d data outputs, want 2", len(payloads))
	}
	if string(payloads[0]) != "web=https://example.com" {
		t.Errorf("record payload = %q", payloads[0])
	}
	if want := records.Tombstone("web=https://old.example.com"); string(payloads[1]) != want {
		t.Errorf("tombstone payload = %q, want %q", payloads[1], want)
	}

	// The re-emitted auth token keeps the transaction a record candidate.
	auth := tpl.Tx.Outputs[1]
	if addr, _ := auth.Script.Address(); addr != handle.Address || auth.Token == nil {
		t.Error("auth token not re-emitted at the domain address")
	}
}

func TestPenalizeInvalidName(t *testing.T) {
	f := newFixture()
	set := testSet()
	reward := types.Address{0x0d}
	payer := types.Address{0x0f}
	seedRegistry(f, set, 42, config.DustLimit)
	seedAuction(f, set, 40, "bad name!", 9_000, types.Address{0x0a})
	f.add(payer, 10_000, types.P2PKH(payer), nil)
	a := newTestAssembler(t, f)
	ctx := context.Background()

	if _, err := a.PenalizeInvalidName(ctx, PenaltyParams{Name: "fine", Reward: reward, Payer: payer}); !errors.Is(err, ErrNotPenalizable) {
		t.Fatalf("valid name: %v", err)
	}

	tpl, err := a.PenalizeInvalidName(ctx, PenaltyParams{Name: "bad name!", Reward: reward, Payer: payer})
	if err != nil {
		t.Fatalf("PenalizeInvalidName: %v", err)
	}
	checkTemplate(t, f, tpl)

	// The enforcer proof is the 1-based offset of the first bad character.
	proof := tpl.Unlocks[0].Proof
	if len(proof) != 8 || proof[7] != 4 {
		t.Errorf("proof = %x, want index 4", proof)
	}

	rewardOut := tpl.Tx.Outputs[1]
	if addr, _ := rewardOut.Script.Address(); addr != reward || rewardOut.Value != 9_000 {
		t.Errorf("reward = %d to %s", rewardOut.Value, addr)
	}
	burn := tpl.Tx.Outputs[2]
	if burn.Script.Type != types.ScriptTypeBurn || burn.Token.Amount != 40 {
		t.Errorf("burn output = %+v", burn)
	}
}

func TestPenalizeDuplicateAuction(t *testing.T) {
	f := newFixture()
	set := testSet()
	reward := types.Address{0x0d}
	payer := types.Address{0x0f}
	seedRegistry(f, set, 50, config.DustLimit)
	seedAuction(f, set, 44, "alice", 10_000, types.Address{0x0a})
	seedAuction(f, set, 50, "alice", 11_000, types.Address{0x0b})
	f.add(payer, 10_000, types.P2PKH(payer), nil)
	a := newTestAssembler(t, f)

	tpl, err := a.PenalizeDuplicateAuction(context.Background(), PenaltyParams{Name: "alice", Reward: reward, Payer: payer})
	if err != nil {
		t.Fatalf("PenalizeDuplicateAuction: %v", err)
	}
	checkTemplate(t, f, tpl)

	surviving := tpl.Tx.Outputs[1]
	if id, _, _ := locator.DecodeNameCommitment(surviving.Token.Commitment); id != 44 {
		t.Errorf("surviving id = %d, want 44", id)
	}
	if surviving.Value != 10_000 {
		t.Errorf("surviving value changed: %d", surviving.Value)
	}
	rewardOut := tpl.Tx.Outputs[2]
	if rewardOut.Value != 11_000 {
		t.Errorf("reward = %d, want the duplicate's 11000", rewardOut.Value)
	}
	burn := tpl.Tx.Outputs[3]
	if burn.Script.Type != types.ScriptTypeBurn || burn.Token.Amount != 50 {
		t.Errorf("burn output = %+v", burn)
	}
}

func TestPenalizeIllegalAuction(t *testing.T) {
	f := newFixture()
	set := testSet()
	reward := types.Address{0x0d}
	payer := types.Address{0x0f}
	seedRegistry(f, set, 50, config.DustLimit)
	seedAuction(f, set, 50, "alice", 11_000, types.Address{0x0b})
	handle, err := set.Domains.Derive("alice")
	if err != nil {
		t.Fatal(err)
	}
	f.add(handle.Address, config.DustLimit, types.P2SH(handle.Address), &types.TokenData{
		Category:   testCategory,
		Capability: types.CapabilityNone,
		Commitment: locator.NameCommitment(42, "alice"),
	})
	f.add(payer, 10_000, types.P2PKH(payer), nil)
	a := newTestAssembler(t, f)

	tpl, err := a.PenalizeIllegalAuction(context.Background(), PenaltyParams{Name: "alice", Reward: reward, Payer: payer})
	if err != nil {
		t.Fatalf("PenalizeIllegalAuction: %v", err)
	}
	checkTemplate(t, f, tpl)

	auth := tpl.Tx.Outputs[1]
	if addr, _ := auth.Script.Address(); addr != handle.Address {
		t.Errorf("auth token not returned to the domain")
	}
	rewardOut := tpl.Tx.Outputs[2]
	if addr, _ := rewardOut.Script.Address(); addr != reward || rewardOut.Value != 11_000 {
		t.Errorf("reward = %d to %s", rewardOut.Value, addr)
	}

	// Not penalizable when the name is not registered.
	if _, err := a.PenalizeIllegalAuction(context.Background(), PenaltyParams{Name: "free", Reward: reward, Payer: payer}); err == nil {
		t.Error("penalized an auction for an unregistered name")
	}
}

func TestTemplateSignerNames(t *testing.T) {
	f := newFixture()
	seedRegistry(f, testSet(), 41, config.DustLimit)
	f.add(testBidder, 100_000, types.P2PKH(testBidder), nil)
	a := newTestAssembler(t, f)

	tpl, err := a.Auction(context.Background(), AuctionParams{Name: "alice", Amount: 12_000, Bidder: testBidder})
	if err != nil {
		t.Fatal(err)
	}
	signers := make([]string, 0, len(tpl.Unlocks))
	for _, u := range tpl.Unlocks {
		signers = append(signers, u.Signer)
	}
	joined := strings.Join(signers, ",")
	if joined != "auction,registry,payer" {
		t.Errorf("signers = %s", joined)
	}
}
