package app

import (
	"context"
	"fmt"

	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/models"
	"github.com/example/labelhub/internal/ports/primary"
	"github.com/example/labelhub/internal/ports/secondary"
)

// RosterServiceImpl implements the RosterService interface.
type RosterServiceImpl struct {
	store secondary.Store
}

// NewRosterService creates a new RosterService with injected dependencies.
func NewRosterService(store secondary.Store) *RosterServiceImpl {
	return &RosterServiceImpl{store: store}
}

// AddMember adds an annotator to a project roster. Adding an existing
// member is a no-op.
func (s *RosterServiceImpl) AddMember(ctx context.Context, actorID, projectID, annotatorID string) error {
	actor, err := s.store.Users().GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	return s.store.WithTx(ctx, func(r secondary.Repositories) error {
		project, err := r.Projects().GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := rosterManageCheck(actor, project); err != nil {
			return err
		}
		member, err := r.Users().GetByID(ctx, annotatorID)
		if err != nil {
			return err
		}
		if member.Role != models.RoleAnnotator {
			return fmt.Errorf("%w: only annotators can join a project roster", workflow.ErrNotEligible)
		}
		return r.Rosters().AddMember(ctx, projectID, annotatorID)
	})
}

// SetQaReviewers replaces the project's QA reviewer subset. Every id must
// already be a roster member.
func (s *RosterServiceImpl) SetQaReviewers(ctx context.Context, actorID, projectID string, annotatorIDs []string) error {
	actor, err := s.store.Users().GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	return s.store.WithTx(ctx, func(r secondary.Repositories) error {
		project, err := r.Projects().GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := rosterManageCheck(actor, project); err != nil {
			return err
		}
		for _, id := range annotatorIDs {
			isMember, err := r.Rosters().IsMember(ctx, projectID, id)
			if err != nil {
				return err
			}
			if !isMember {
				return fmt.Errorf("%w: %s is not a member of this project", workflow.ErrNotEligible, id)
			}
		}
		return r.Rosters().SetQaReviewers(ctx, projectID, annotatorIDs)
	})
}

// Roster lists the project's members with their QA flag and active tasks.
func (s *RosterServiceImpl) Roster(ctx context.Context, actorID, projectID string) ([]*primary.RosterMember, error) {
	actor, err := s.store.Users().GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := rosterManageCheck(actor, project); err != nil {
		return nil, err
	}

	records, err := s.store.Rosters().Members(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster members: %w", err)
	}
	members := make([]*primary.RosterMember, len(records))
	for i, rec := range records {
		member := &primary.RosterMember{
			AnnotatorID:   rec.AnnotatorID,
			IsQaReviewer:  rec.IsQaReviewer,
			ActiveTaskIDs: rec.ActiveTaskIDs,
		}
		if user, err := s.store.Users().GetByID(ctx, rec.AnnotatorID); err == nil {
			member.Name = user.Name
		}
		members[i] = member
	}
	return members, nil
}

func rosterManageCheck(actor *secondary.UserRecord, project *secondary.ProjectRecord) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if actor.Role == models.RoleManager && project.ManagerID == actor.ID {
		return nil
	}
	return fmt.Errorf("%w: only admins or the project's manager can manage the roster", workflow.ErrNotAuthorized)
}
