package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"ssbg/internal/core"
)

func testRecords() []core.Record {
	return []core.Record{
		{
			Year: 2020, StateName: "Ohio", LineNum: "1", ServiceCategory: "Child Care",
			SSBGExpenditures: 60, TANFTransferFunds: 40, TotalSSBGExpenditures: 100,
			OtherFedStateLocalFunds: 25, TotalExpenditures: 125,
			Children: 6, Adults59AndYounger: 2, Adults60AndOlder: 1, AdultsUnknown: 1,
			TotalAdults: 4, TotalRecipients: 10,
		},
		{
			Year: 2021, StateName: "Texas", LineNum: "2", ServiceCategory: "Food",
			SSBGExpenditures: 120, TotalSSBGExpenditures: 120, TotalExpenditures: 120,
			Children: 3, TotalRecipients: 3,
		},
	}
}

func TestImportAndLoadRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ssbg.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	want := testRecords()
	n, err := store.Import(ctx, want)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != len(want) {
		t.Fatalf("Import count = %d, want %d", n, len(want))
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestImportReplacesPreviousSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ssbg.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.Import(ctx, testRecords()); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	if _, err := store.Import(ctx, testRecords()[:1]); err != nil {
		t.Fatalf("second Import: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("records after re-import = %d, want 1", len(got))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ssbg.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	store.Close()

	// Reopening an already-migrated database must not fail.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	store.Close()
}
