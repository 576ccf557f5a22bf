package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/models"
	"github.com/example/labelhub/internal/ports/primary"
)

func TestDirectoryService_CreateUser(t *testing.T) {
	store := newMockStore()
	svc := NewDirectoryService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "", "Maya", models.RoleManager)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated ID")
	}
	if user.Role != models.RoleManager {
		t.Errorf("Role = %q, want manager", user.Role)
	}

	if _, err := svc.CreateUser(ctx, "", "Bad", "superuser"); !errors.Is(err, workflow.ErrInvalidArgument) {
		t.Errorf("bad role: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, "", "  ", models.RoleAnnotator); !errors.Is(err, workflow.ErrInvalidArgument) {
		t.Errorf("blank name: expected ErrInvalidArgument, got %v", err)
	}
}

func TestDirectoryService_CreateProject(t *testing.T) {
	store := newMockStore()
	store.seedUser("mgr-1", "Maya", models.RoleManager)
	store.seedUser("mgr-2", "Omar", models.RoleManager)
	store.seedUser("ann-1", "Arun", models.RoleAnnotator)
	store.seedUser("admin-1", "Ada", models.RoleAdmin)
	svc := NewDirectoryService(store)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, primary.CreateProjectRequest{
		ActorID:  "mgr-1",
		Name:     "Street Scenes",
		Category: "image_classification",
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if project.ManagerID != "mgr-1" {
		t.Errorf("ManagerID = %q, want the actor by default", project.ManagerID)
	}

	// Managers cannot create projects for others; admins can.
	_, err = svc.CreateProject(ctx, primary.CreateProjectRequest{
		ActorID: "mgr-1", Name: "X", Category: "image_classification", ManagerID: "mgr-2",
	})
	if !errors.Is(err, workflow.ErrNotAuthorized) {
		t.Errorf("manager for other: expected ErrNotAuthorized, got %v", err)
	}
	if _, err := svc.CreateProject(ctx, primary.CreateProjectRequest{
		ActorID: "admin-1", Name: "X", Category: "image_classification", ManagerID: "mgr-2",
	}); err != nil {
		t.Errorf("admin for other manager failed: %v", err)
	}

	// Annotators cannot own projects.
	_, err = svc.CreateProject(ctx, primary.CreateProjectRequest{
		ActorID: "admin-1", Name: "X", Category: "image_classification", ManagerID: "ann-1",
	})
	if !errors.Is(err, workflow.ErrNotEligible) {
		t.Errorf("annotator owner: expected ErrNotEligible, got %v", err)
	}

	// Category must be a known one.
	_, err = svc.CreateProject(ctx, primary.CreateProjectRequest{
		ActorID: "mgr-1", Name: "X", Category: "mystery",
	})
	if !errors.Is(err, workflow.ErrInvalidArgument) {
		t.Errorf("unknown category: expected ErrInvalidArgument, got %v", err)
	}
}
