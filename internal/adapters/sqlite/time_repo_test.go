package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/labelhub/internal/adapters/sqlite"
)

func TestTimeRepository_SessionLifecycle(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	if err := store.Times().OpenSession(ctx, "task-1", "ann-1", "proj-1"); err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	session, err := store.Times().Session(ctx, "task-1", "ann-1")
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if session != nil {
		t.Errorf("open session value = %v, want nil until closed", *session)
	}

	total, err := store.Times().CloseSession(ctx, "task-1", "ann-1", 300)
	if err != nil {
		t.Fatalf("CloseSession failed: %v", err)
	}
	if total != 300 {
		t.Errorf("folded total = %d, want 300", total)
	}

	// A second cycle folds on top of the first.
	if err := store.Times().OpenSession(ctx, "task-1", "ann-1", "proj-1"); err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	total, err = store.Times().CloseSession(ctx, "task-1", "ann-1", 200)
	if err != nil {
		t.Fatalf("CloseSession failed: %v", err)
	}
	if total != 500 {
		t.Errorf("folded total after second cycle = %d, want 500", total)
	}
}

func TestTimeRepository_ReopenPreservesFoldedTotal(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	if err := store.Times().OpenSession(ctx, "task-1", "ann-1", "proj-1"); err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	if _, err := store.Times().CloseSession(ctx, "task-1", "ann-1", 120); err != nil {
		t.Fatalf("CloseSession failed: %v", err)
	}
	if err := store.Times().OpenSession(ctx, "task-1", "ann-1", "proj-1"); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	records, err := store.Times().ListByAnnotator(ctx, "ann-1", "proj-1")
	if err != nil {
		t.Fatalf("ListByAnnotator failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].FoldedSeconds != 120 {
		t.Errorf("FoldedSeconds = %d, want 120", records[0].FoldedSeconds)
	}
	if records[0].SessionSeconds != nil {
		t.Errorf("reopened session = %v, want nil", *records[0].SessionSeconds)
	}
}

func TestTimeRepository_DiscardTask(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	for _, ann := range []string{"ann-1", "ann-2"} {
		if err := store.Times().OpenSession(ctx, "task-1", ann, "proj-1"); err != nil {
			t.Fatalf("OpenSession failed: %v", err)
		}
	}
	if err := store.Times().OpenSession(ctx, "task-2", "ann-1", "proj-1"); err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	if err := store.Times().DiscardTask(ctx, "task-1"); err != nil {
		t.Fatalf("DiscardTask failed: %v", err)
	}

	records, err := store.Times().ListByAnnotator(ctx, "ann-1", "proj-1")
	if err != nil {
		t.Fatalf("ListByAnnotator failed: %v", err)
	}
	if len(records) != 1 || records[0].TaskID != "task-2" {
		t.Errorf("records after discard = %v, want just task-2", records)
	}
}

func TestTimeRepository_ListScopedByProject(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	if err := store.Times().OpenSession(ctx, "task-1", "ann-1", "proj-1"); err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	if err := store.Times().OpenSession(ctx, "task-2", "ann-1", "proj-2"); err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}

	scoped, err := store.Times().ListByAnnotator(ctx, "ann-1", "proj-1")
	if err != nil {
		t.Fatalf("ListByAnnotator failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ProjectID != "proj-1" {
		t.Errorf("scoped list = %v, want just proj-1 record", scoped)
	}

	all, err := store.Times().ListByAnnotator(ctx, "ann-1", "")
	if err != nil {
		t.Fatalf("ListByAnnotator failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unscoped list has %d records, want 2", len(all))
	}
}
