package cache

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// testDB runs the shared test suite against a DB implementation.
func testDB(t *testing.T, db DB) {
	t.Helper()

	if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrNotCached) {
		t.Errorf("Get(missing): expected ErrNotCached, got %v", err)
	}

	if err := db.Put([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := db.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte("v1")) {
		t.Errorf("Get = %q, want v1", got)
	}

	ok, err := db.Has([]byte("k1"))
	if err != nil || !ok {
		t.Errorf("Has(k1) = %v, %v; want true", ok, err)
	}

	if err := db.Put([]byte("pfx/a"), []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := db.Put([]byte("pfx/b"), []byte("2")); err != nil {
		t.Fatal(err)
	}
	count := 0
	err = db.ForEach([]byte("pfx/"), func(key, value []byte) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if count != 2 {
		t.Errorf("ForEach visited %d keys, want 2", count)
	}

	if err := db.Delete([]byte("k1")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Get([]byte("k1")); !errors.Is(err, ErrNotCached) {
		t.Errorf("Get after delete: expected ErrNotCached, got %v", err)
	}
}

func TestMemoryDB(t *testing.T) {
	db := NewMemory()
	defer db.Close()
	testDB(t, db)
}

func TestBadgerDB(t *testing.T) {
	db, err := NewBadger(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	defer db.Close()
	testDB(t, db)
}

func TestTxCacheRoundTrip(t *testing.T) {
	c := NewTxCache(NewMemory())
	defer c.Close()

	transaction := tx.NewBuilder().
		AddInput(types.Outpoint{TxID: types.Hash{0x01}}).
		AddDataOutput([]byte("k=v")).
		AddOutput(1000, types.P2PKH(types.Address{0x02})).
		Build()
	id := transaction.Hash()

	if _, err := c.Get(id); !errors.Is(err, ErrNotCached) {
		t.Errorf("expected ErrNotCached before Put, got %v", err)
	}

	if err := c.Put(id, transaction); err != nil {
		t.Fatalf("Put: %v", err)
	}
	back, err := c.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if back.Hash() != id {
		t.Error("cached transaction hash mismatch")
	}
}
