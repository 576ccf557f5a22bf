package primary

import "context"

// RosterMember is one annotator on a project roster.
type RosterMember struct {
	AnnotatorID   string
	Name          string
	IsQaReviewer  bool
	ActiveTaskIDs []string
}

// RosterService maintains per-project rosters: who may be assigned, and
// which members review QA. Membership rows are normally created by the
// external invite-acceptance flow; AddMember is its persistence effect.
type RosterService interface {
	AddMember(ctx context.Context, actorID, projectID, annotatorID string) error
	SetQaReviewers(ctx context.Context, actorID, projectID string, annotatorIDs []string) error
	Roster(ctx context.Context, actorID, projectID string) ([]*RosterMember, error)
}
