package locator

import (
	"context"
	"errors"
	"testing"

	"github.com/nomen-protocol/nomen-go/internal/covenant"
	"github.com/nomen-protocol/nomen-go/internal/ledger"
	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

var testCategory = types.Category{0xcc}

func tokenUTXO(value uint64, cap types.Capability, amount uint64, commitment []byte) ledger.UTXO {
	return ledger.UTXO{
		Value:  value,
		Script: types.P2SH(types.Address{0x01}),
		Token: &types.TokenData{
			Category:   testCategory,
			Amount:     amount,
			Capability: cap,
			Commitment: commitment,
		},
	}
}

func plainUTXO(value uint64, b byte) ledger.UTXO {
	return ledger.UTXO{
		Outpoint: types.Outpoint{TxID: types.Hash{b}},
		Value:    value,
		Script:   types.P2PKH(types.Address{b}),
	}
}

func TestClassifyAndLookups(t *testing.T) {
	auctionHandle := covenant.Handle{Role: covenant.RoleAuction, ScriptHash: types.Hash{0xa1}}
	bidHandle := covenant.Handle{Role: covenant.RoleBid, ScriptHash: types.Hash{0xb1}}

	utxos := []ledger.UTXO{
		tokenUTXO(800, types.CapabilityNone, 0, auctionHandle.ScriptHash[:]),
		tokenUTXO(800, types.CapabilityMinting, 1000, CounterCommitment(42)),
		tokenUTXO(5000, types.CapabilityMutable, 43, NameCommitment(43, "alice")),
		tokenUTXO(800, types.CapabilityNone, 0, NameCommitment(7, "bob")),
		plainUTXO(500, 0x01),
		// Foreign category is invisible.
		{Value: 800, Token: &types.TokenData{Category: types.Category{0xee}, Capability: types.CapabilityMinting}},
	}
	s := Classify(utxos, testCategory)

	thread, err := s.Thread(auctionHandle)
	if err != nil {
		t.Fatalf("Thread: %v", err)
	}
	if thread.Value != 800 {
		t.Errorf("thread value = %d", thread.Value)
	}
	if _, err := s.Thread(bidHandle); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("Thread(bid) = %v, want ErrRoleNotFound", err)
	}
	var roleErr *RoleError
	if err := func() error { _, err := s.Thread(bidHandle); return err }(); !errors.As(err, &roleErr) {
		t.Errorf("missing thread error %v is not a RoleError", err)
	}

	counter, count, err := s.Counter()
	if err != nil {
		t.Fatalf("Counter: %v", err)
	}
	if count != 42 || counter.Token.Amount != 1000 {
		t.Errorf("counter = %d, amount %d", count, counter.Token.Amount)
	}

	auction, ok := s.RunningAuction("alice")
	if !ok {
		t.Fatal("RunningAuction(alice) absent")
	}
	if auction.RegistrationID != 43 || auction.UTXO.Value != 5000 {
		t.Errorf("auction = %+v", auction)
	}
	if _, ok := s.RunningAuction("carol"); ok {
		t.Error("RunningAuction(carol) present")
	}

	_, id, err := s.Ownership("bob")
	if err != nil {
		t.Fatalf("Ownership: %v", err)
	}
	if id != 7 {
		t.Errorf("ownership id = %d, want 7", id)
	}
	if _, _, err := s.Ownership("alice"); err == nil {
		t.Error("Ownership(alice) found, only an auction exists")
	}

	if got := len(s.Auctions()); got != 1 {
		t.Errorf("len(Auctions) = %d, want 1", got)
	}
}

func TestFunding(t *testing.T) {
	utxos := []ledger.UTXO{
		plainUTXO(500, 0x01),
		plainUTXO(5000, 0x02),
		plainUTXO(2000, 0x03),
		// Tokened value never funds fees.
		tokenUTXO(1_000_000, types.CapabilityNone, 0, []byte{0x01}),
	}
	s := Classify(utxos, testCategory)

	funding, err := s.Funding()
	if err != nil {
		t.Fatalf("Funding: %v", err)
	}
	if funding.Value != 5000 {
		t.Errorf("funding value = %d, want 5000", funding.Value)
	}

	// First seen wins a tie.
	s = Classify([]ledger.UTXO{plainUTXO(100, 0x0a), plainUTXO(100, 0x0b)}, testCategory)
	funding, err = s.Funding()
	if err != nil {
		t.Fatalf("Funding: %v", err)
	}
	if funding.Outpoint.TxID != (types.Hash{0x0a}) {
		t.Error("tie not broken by first seen")
	}

	s = Classify([]ledger.UTXO{tokenUTXO(100, types.CapabilityNone, 0, []byte{0x01})}, testCategory)
	if _, err := s.Funding(); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("Funding with no plain coins = %v, want ErrRoleNotFound", err)
	}
}

func TestDuplicatePair(t *testing.T) {
	utxos := []ledger.UTXO{
		tokenUTXO(5000, types.CapabilityMutable, 50, NameCommitment(50, "alice")),
		tokenUTXO(4000, types.CapabilityMutable, 44, NameCommitment(44, "alice")),
		tokenUTXO(3000, types.CapabilityMutable, 45, NameCommitment(45, "bob")),
	}
	s := Classify(utxos, testCategory)

	surviving, duplicate, err := s.DuplicatePair("alice")
	if err != nil {
		t.Fatalf("DuplicatePair: %v", err)
	}
	if surviving.RegistrationID != 44 || duplicate.RegistrationID != 50 {
		t.Errorf("surviving id %d, duplicate id %d; want 44, 50", surviving.RegistrationID, duplicate.RegistrationID)
	}

	if _, _, err := s.DuplicatePair("bob"); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("DuplicatePair(bob) = %v, want ErrRoleNotFound", err)
	}
}

func TestInternalAuth(t *testing.T) {
	s := Classify([]ledger.UTXO{
		tokenUTXO(800, types.CapabilityNone, 0, NameCommitment(3, "alice")),
	}, testCategory)
	if _, err := s.InternalAuth(); err != nil {
		t.Fatalf("InternalAuth: %v", err)
	}

	s = Classify([]ledger.UTXO{plainUTXO(100, 0x01)}, testCategory)
	if _, err := s.InternalAuth(); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("InternalAuth = %v, want ErrRoleNotFound", err)
	}
}

func TestCommitmentCodec(t *testing.T) {
	c := CounterCommitment(42)
	if len(c) != 8 {
		t.Fatalf("counter commitment length = %d", len(c))
	}
	if got, ok := DecodeCounter(c); !ok || got != 42 {
		t.Errorf("DecodeCounter = %d, %v", got, ok)
	}
	if _, ok := DecodeCounter([]byte{1, 2, 3}); ok {
		t.Error("DecodeCounter accepted short commitment")
	}

	nc := NameCommitment(7, "alice")
	if len(nc) != 8+5 {
		t.Fatalf("name commitment length = %d", len(nc))
	}
	id, n, ok := DecodeNameCommitment(nc)
	if !ok || id != 7 || n != "alice" {
		t.Errorf("DecodeNameCommitment = %d, %q, %v", id, n, ok)
	}
	if _, _, ok := DecodeNameCommitment(CounterCommitment(7)); ok {
		t.Error("DecodeNameCommitment accepted nameless commitment")
	}
}

type txSource struct {
	txs map[types.Hash]*tx.Transaction
}

func (s *txSource) UTXOs(ctx context.Context, addr types.Address) ([]ledger.UTXO, error) {
	return nil, nil
}

func (s *txSource) History(ctx context.Context, addr types.Address) ([]ledger.HistoryItem, error) {
	return nil, nil
}

func (s *txSource) Transaction(ctx context.Context, id types.Hash) (*tx.Transaction, error) {
	return s.txs[id], nil
}

func TestPreviousBidder(t *testing.T) {
	bidder := types.Address{0x0b}
	creating := &tx.Transaction{
		Version: 1,
		Outputs: []tx.Output{
			{Value: 5000, Script: types.P2SH(types.Address{0x01})},
			{Value: 100, Script: types.P2PKH(types.Address{0x0a})},
			{Value: 200, Script: types.P2PKH(bidder)},
		},
	}
	auction := Auction{
		UTXO: ledger.UTXO{
			Outpoint: types.Outpoint{TxID: creating.Hash(), Index: 0},
		},
	}
	src := &txSource{txs: map[types.Hash]*tx.Transaction{creating.Hash(): creating}}

	got, err := PreviousBidder(context.Background(), src, auction)
	if err != nil {
		t.Fatalf("PreviousBidder: %v", err)
	}
	if got != bidder {
		t.Errorf("bidder = %s, want %s", got, bidder)
	}
}
