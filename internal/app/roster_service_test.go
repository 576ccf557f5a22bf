package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/models"
)

func newRosterFixture(t *testing.T) (*mockStore, *RosterServiceImpl) {
	t.Helper()
	store := newMockStore()
	store.seedUser("mgr-1", "Maya", models.RoleManager)
	store.seedUser("mgr-2", "Omar", models.RoleManager)
	store.seedUser("ann-1", "Arun", models.RoleAnnotator)
	store.seedProject("proj-1", "image_classification", "mgr-1")
	return store, NewRosterService(store)
}

func TestRosterService_AddMember(t *testing.T) {
	store, svc := newRosterFixture(t)
	ctx := context.Background()

	if err := svc.AddMember(ctx, "mgr-1", "proj-1", "ann-1"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	// Idempotent.
	if err := svc.AddMember(ctx, "mgr-1", "proj-1", "ann-1"); err != nil {
		t.Fatalf("repeat AddMember failed: %v", err)
	}

	members, err := svc.Roster(ctx, "mgr-1", "proj-1")
	if err != nil {
		t.Fatalf("Roster failed: %v", err)
	}
	if len(members) != 1 || members[0].AnnotatorID != "ann-1" {
		t.Errorf("roster = %v, want just ann-1", members)
	}
	if members[0].Name != "Arun" {
		t.Errorf("member name = %q, want Arun", members[0].Name)
	}

	// Only annotators can join.
	if err := svc.AddMember(ctx, "mgr-1", "proj-1", "mgr-2"); !errors.Is(err, workflow.ErrNotEligible) {
		t.Errorf("manager member: expected ErrNotEligible, got %v", err)
	}
	// Only the owning manager can manage.
	if err := svc.AddMember(ctx, "mgr-2", "proj-1", "ann-1"); !errors.Is(err, workflow.ErrNotAuthorized) {
		t.Errorf("other manager: expected ErrNotAuthorized, got %v", err)
	}
	_ = store
}

func TestRosterService_SetQaReviewers(t *testing.T) {
	store, svc := newRosterFixture(t)
	ctx := context.Background()

	store.seedUser("ann-2", "Noor", models.RoleAnnotator)
	if err := svc.AddMember(ctx, "mgr-1", "proj-1", "ann-1"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	// Non-members cannot be made reviewers.
	err := svc.SetQaReviewers(ctx, "mgr-1", "proj-1", []string{"ann-2"})
	if !errors.Is(err, workflow.ErrNotEligible) {
		t.Errorf("non-member reviewer: expected ErrNotEligible, got %v", err)
	}

	if err := svc.SetQaReviewers(ctx, "mgr-1", "proj-1", []string{"ann-1"}); err != nil {
		t.Fatalf("SetQaReviewers failed: %v", err)
	}
	isQa, err := store.Rosters().IsQaReviewer(ctx, "proj-1", "ann-1")
	if err != nil || !isQa {
		t.Errorf("IsQaReviewer = %v, %v; want true", isQa, err)
	}
}
