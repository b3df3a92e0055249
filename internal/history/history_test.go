package history

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/starford/dagaz/internal/apperr"
)

func tempDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAppendAndLatest(t *testing.T) {
	db := tempDB(t)

	if _, err := db.Latest(); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Latest on empty log = %v, want ErrNotFound", err)
	}

	if err := db.Append("tok-1", "cs-1", 100); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := db.Append("tok-2", "cs-2", 200); err != nil {
		t.Fatalf("Append: %v", err)
	}

	latest, err := db.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Token != "tok-2" || latest.Checksum != "cs-2" || latest.RawBytes != 200 {
		t.Errorf("latest = %+v", latest)
	}
	if latest.SavedAt.IsZero() {
		t.Error("savedAt not recorded")
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	db := tempDB(t)
	for i := 1; i <= 5; i++ {
		_ = db.Append(fmt.Sprintf("tok-%d", i), "", i)
	}

	revs, err := db.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("len = %d, want 3", len(revs))
	}
	if revs[0].Token != "tok-5" || revs[2].Token != "tok-3" {
		t.Errorf("order = %v, %v, %v", revs[0].Token, revs[1].Token, revs[2].Token)
	}

	// Zero limit falls back to the default page size.
	revs, err = db.Recent(0)
	if err != nil {
		t.Fatalf("Recent(0): %v", err)
	}
	if len(revs) != 5 {
		t.Errorf("default limit returned %d rows", len(revs))
	}
}

func TestPrune(t *testing.T) {
	db := tempDB(t)
	for i := 1; i <= 10; i++ {
		_ = db.Append(fmt.Sprintf("tok-%d", i), "", 0)
	}

	if err := db.Prune(4); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	revs, _ := db.Recent(100)
	if len(revs) != 4 {
		t.Fatalf("after prune = %d rows, want 4", len(revs))
	}
	if revs[0].Token != "tok-10" || revs[3].Token != "tok-7" {
		t.Errorf("pruned wrong rows: %v ... %v", revs[0].Token, revs[3].Token)
	}

	// Prune with keep <= 0 is a no-op, not a wipe.
	if err := db.Prune(0); err != nil {
		t.Fatalf("Prune(0): %v", err)
	}
	revs, _ = db.Recent(100)
	if len(revs) != 4 {
		t.Errorf("Prune(0) deleted rows: %d left", len(revs))
	}
}
