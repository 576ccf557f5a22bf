package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/labelhub/internal/category"
	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/models"
	"github.com/example/labelhub/internal/ports/primary"
	"github.com/example/labelhub/internal/ports/secondary"
)

// DirectoryServiceImpl implements the DirectoryService interface.
type DirectoryServiceImpl struct {
	store secondary.Store
}

// NewDirectoryService creates a new DirectoryService with injected dependencies.
func NewDirectoryService(store secondary.Store) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{store: store}
}

// CreateUser registers a user in the directory. An empty id gets a
// generated one.
func (s *DirectoryServiceImpl) CreateUser(ctx context.Context, id, name, role string) (*primary.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: user name cannot be empty", workflow.ErrInvalidArgument)
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", workflow.ErrInvalidArgument, role)
	}
	if id == "" {
		id = uuid.NewString()
	}

	record := &secondary.UserRecord{
		ID:        id,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Users().Create(ctx, record); err != nil {
		return nil, err
	}
	return userToDTO(record), nil
}

// GetUser retrieves a user by ID.
func (s *DirectoryServiceImpl) GetUser(ctx context.Context, id string) (*primary.User, error) {
	record, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userToDTO(record), nil
}

// ListUsers lists all users in the directory.
func (s *DirectoryServiceImpl) ListUsers(ctx context.Context) ([]*primary.User, error) {
	records, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*primary.User, len(records))
	for i, rec := range records {
		users[i] = userToDTO(rec)
	}
	return users, nil
}

// CreateProject creates a project owned by a manager. Only admins may
// assign a manager other than themselves.
func (s *DirectoryServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	actor, err := s.store.Users().GetByID(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleManager {
		return nil, fmt.Errorf("%w: only admins and managers can create projects", workflow.ErrNotAuthorized)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name cannot be empty", workflow.ErrInvalidArgument)
	}
	cat, err := category.Parse(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrInvalidArgument, err)
	}

	managerID := req.ManagerID
	if managerID == "" {
		managerID = actor.ID
	}
	if managerID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: managers can only create projects for themselves", workflow.ErrNotAuthorized)
	}
	manager, err := s.store.Users().GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager.Role != models.RoleManager && manager.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: project owner must be a manager", workflow.ErrNotEligible)
	}

	record := &secondary.ProjectRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  string(cat),
		ManagerID: manager.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Projects().Create(ctx, record); err != nil {
		return nil, err
	}
	return projectToDTO(record), nil
}

// GetProject retrieves a project by ID.
func (s *DirectoryServiceImpl) GetProject(ctx context.Context, id string) (*primary.Project, error) {
	record, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectToDTO(record), nil
}

// ListProjects lists all projects.
func (s *DirectoryServiceImpl) ListProjects(ctx context.Context) ([]*primary.Project, error) {
	records, err := s.store.Projects().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := make([]*primary.Project, len(records))
	for i, rec := range records {
		projects[i] = projectToDTO(rec)
	}
	return projects, nil
}

func userToDTO(rec *secondary.UserRecord) *primary.User {
	return &primary.User{ID: rec.ID, Name: rec.Name, Role: rec.Role}
}

func projectToDTO(rec *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:        rec.ID,
		Name:      rec.Name,
		Category:  rec.Category,
		ManagerID: rec.ManagerID,
		CreatedAt: rec.CreatedAt,
	}
}
