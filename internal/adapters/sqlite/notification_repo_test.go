package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/labelhub/internal/adapters/sqlite"
	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/ports/secondary"
)

func TestNotificationRepository_ListAndMarkRead(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"n-1", "n-2"} {
		n := &secondary.NotificationRecord{
			ID:          id,
			RecipientID: "ann-1",
			SenderID:    "mgr-1",
			Type:        "task_assigned",
			Title:       "New Task Assigned",
			Message:     "You have been assigned to task: batch-7",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Notifications().Create(ctx, n); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := store.Notifications().ListByRecipient(ctx, "ann-1", false)
	if err != nil {
		t.Fatalf("ListByRecipient failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d notifications, want 2", len(all))
	}
	if all[0].ID != "n-2" {
		t.Errorf("newest first: got %s, want n-2", all[0].ID)
	}

	if err := store.Notifications().MarkRead(ctx, "n-1"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	unread, err := store.Notifications().ListByRecipient(ctx, "ann-1", true)
	if err != nil {
		t.Fatalf("ListByRecipient failed: %v", err)
	}
	if len(unread) != 1 || unread[0].ID != "n-2" {
		t.Errorf("unread = %v, want just n-2", unread)
	}

	if err := store.Notifications().MarkRead(ctx, "ghost"); !errors.Is(err, workflow.ErrNotFound) {
		t.Errorf("MarkRead(missing): expected ErrNotFound, got %v", err)
	}
}
