package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/labelhub/internal/adapters/sqlite"
)

func TestRosterRepository_AddMemberIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	manager := seedUser(t, conn, "mgr-1", "manager")
	annotator := seedUser(t, conn, "ann-1", "annotator")
	project := seedProject(t, conn, "", manager)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := store.Rosters().AddMember(ctx, project, annotator); err != nil {
			t.Fatalf("AddMember call %d failed: %v", i+1, err)
		}
	}

	members, err := store.Rosters().Members(ctx, project)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("got %d members, want 1", len(members))
	}
	if members[0].AnnotatorID != annotator {
		t.Errorf("AnnotatorID = %q, want %q", members[0].AnnotatorID, annotator)
	}
	if members[0].IsQaReviewer {
		t.Error("new member should not be a QA reviewer")
	}
}

func TestRosterRepository_SetQaReviewers(t *testing.T) {
	conn := setupTestDB(t)
	manager := seedUser(t, conn, "mgr-1", "manager")
	a := seedUser(t, conn, "ann-a", "annotator")
	b := seedUser(t, conn, "ann-b", "annotator")
	project := seedProject(t, conn, "", manager)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	for _, id := range []string{a, b} {
		if err := store.Rosters().AddMember(ctx, project, id); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}

	if err := store.Rosters().SetQaReviewers(ctx, project, []string{a}); err != nil {
		t.Fatalf("SetQaReviewers failed: %v", err)
	}
	isQa, err := store.Rosters().IsQaReviewer(ctx, project, a)
	if err != nil || !isQa {
		t.Errorf("IsQaReviewer(a) = %v, %v; want true", isQa, err)
	}

	// Replacing the subset clears the previous flag.
	if err := store.Rosters().SetQaReviewers(ctx, project, []string{b}); err != nil {
		t.Fatalf("SetQaReviewers failed: %v", err)
	}
	isQa, err = store.Rosters().IsQaReviewer(ctx, project, a)
	if err != nil || isQa {
		t.Errorf("IsQaReviewer(a) after replace = %v, %v; want false", isQa, err)
	}
	isQa, err = store.Rosters().IsQaReviewer(ctx, project, b)
	if err != nil || !isQa {
		t.Errorf("IsQaReviewer(b) = %v, %v; want true", isQa, err)
	}

	// Ids outside the roster are rejected.
	if err := store.Rosters().SetQaReviewers(ctx, project, []string{"stranger"}); err == nil {
		t.Error("expected error for non-member QA reviewer")
	}
}

func TestRosterRepository_ActiveTaskSetSemantics(t *testing.T) {
	conn := setupTestDB(t)
	manager := seedUser(t, conn, "mgr-1", "manager")
	annotator := seedUser(t, conn, "ann-1", "annotator")
	project := seedProject(t, conn, "", manager)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	if err := store.Rosters().AddMember(ctx, project, annotator); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	// Duplicate adds collapse to one entry.
	for i := 0; i < 3; i++ {
		if err := store.Rosters().AddActiveTask(ctx, project, annotator, "task-1"); err != nil {
			t.Fatalf("AddActiveTask failed: %v", err)
		}
	}
	tasks, err := store.Rosters().ActiveTasks(ctx, project, annotator)
	if err != nil {
		t.Fatalf("ActiveTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0] != "task-1" {
		t.Errorf("ActiveTasks = %v, want [task-1]", tasks)
	}

	// Removing a missing entry is not an error.
	if err := store.Rosters().RemoveActiveTask(ctx, project, annotator, "ghost"); err != nil {
		t.Errorf("RemoveActiveTask(missing) failed: %v", err)
	}

	if err := store.Rosters().RemoveActiveTask(ctx, project, annotator, "task-1"); err != nil {
		t.Fatalf("RemoveActiveTask failed: %v", err)
	}
	tasks, err = store.Rosters().ActiveTasks(ctx, project, annotator)
	if err != nil {
		t.Fatalf("ActiveTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("ActiveTasks after removal = %v, want empty", tasks)
	}
}

func TestRosterRepository_RemoveTaskEverywhere(t *testing.T) {
	conn := setupTestDB(t)
	manager := seedUser(t, conn, "mgr-1", "manager")
	a := seedUser(t, conn, "ann-a", "annotator")
	b := seedUser(t, conn, "ann-b", "annotator")
	project := seedProject(t, conn, "", manager)
	store := sqlite.NewStore(conn)
	ctx := context.Background()

	for _, id := range []string{a, b} {
		if err := store.Rosters().AddMember(ctx, project, id); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if err := store.Rosters().AddActiveTask(ctx, project, id, "task-1"); err != nil {
			t.Fatalf("AddActiveTask failed: %v", err)
		}
	}

	if err := store.Rosters().RemoveTaskEverywhere(ctx, project, "task-1"); err != nil {
		t.Fatalf("RemoveTaskEverywhere failed: %v", err)
	}
	for _, id := range []string{a, b} {
		tasks, err := store.Rosters().ActiveTasks(ctx, project, id)
		if err != nil {
			t.Fatalf("ActiveTasks failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("member %s still has active tasks: %v", id, tasks)
		}
	}
}
