// Package secondary defines the driven ports: persistence seams and the
// notification sink. Records are the persistence representation; domain
// logic lives in core/workflow and the app services.
package secondary

import (
	"context"
	"encoding/json"
	"time"
)

// TaskRecord is the persistence representation of a task.
type TaskRecord struct {
	ID        string
	ProjectID string
	Category  string
	Tag       string // optional human label

	Data         json.RawMessage
	Annotation   json.RawMessage // nil until submitted
	QaAnnotation json.RawMessage // nil until reviewed
	QaFeedback   string

	AnnotatorDone bool
	QaDone        bool

	AssignedAnnotatorID string
	AssignedQaID        string

	IsReturned   bool
	ReturnReason string
	ReturnedBy   string

	// AccumulatedSeconds is cumulative across return cycles and only
	// resets on a full unassign.
	AccumulatedSeconds   int64
	QaAccumulatedSeconds *int64

	CreatedAt            time.Time
	AnnotatorStartedAt   *time.Time
	AnnotatorCompletedAt *time.Time
	QaStartedAt          *time.Time
	QaCompletedAt        *time.Time

	// Version guards read-validate-mutate sequences; Update rejects a
	// record whose version no longer matches the stored row.
	Version int64
}

// HasAssignment reports whether anyone is currently assigned to the task.
func (t *TaskRecord) HasAssignment() bool {
	return t.AssignedAnnotatorID != "" || t.AssignedQaID != ""
}

// TaskFilters narrow task listings.
type TaskFilters struct {
	ProjectID     string
	AssigneeID    string // matches annotator or QA assignment
	AnnotatorID   string // filters completed listings by annotator
	CompletedOnly bool   // both annotator and QA parts done
}

// TaskRepository persists tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *TaskRecord) error
	GetByID(ctx context.Context, id string) (*TaskRecord, error)
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)
	// Update writes the record if its Version still matches the stored row,
	// bumping the version. A mismatch returns workflow.ErrConflict.
	Update(ctx context.Context, task *TaskRecord) error
	Delete(ctx context.Context, id string) error
}

// RemarkRecord is one immutable entry in a task's remark log.
type RemarkRecord struct {
	ID         string
	TaskID     string
	AuthorID   string
	AuthorRole string
	Type       string
	Message    string
	CreatedAt  time.Time
}

// RemarkRepository appends to and reads the per-task remark log.
// There is deliberately no update or delete.
type RemarkRepository interface {
	Append(ctx context.Context, remark *RemarkRecord) error
	ListByTask(ctx context.Context, taskID string) ([]*RemarkRecord, error)
}

// RosterMemberRecord is one annotator on a project roster.
type RosterMemberRecord struct {
	ProjectID     string
	AnnotatorID   string
	IsQaReviewer  bool
	ActiveTaskIDs []string
}

// RosterRepository is the per-project source of truth for who may be
// assigned to what. Membership rows are created by invite acceptance
// (external); the engine reads membership and mutates active-task sets
// and the QA subset.
type RosterRepository interface {
	// AddMember is idempotent.
	AddMember(ctx context.Context, projectID, annotatorID string) error
	IsMember(ctx context.Context, projectID, annotatorID string) (bool, error)
	Members(ctx context.Context, projectID string) ([]*RosterMemberRecord, error)
	// SetQaReviewers replaces the project's QA subset. Every id must
	// already be a member; the adapter enforces this with a foreign key,
	// services pre-validate for a typed error.
	SetQaReviewers(ctx context.Context, projectID string, annotatorIDs []string) error
	IsQaReviewer(ctx context.Context, projectID, annotatorID string) (bool, error)
	// AddActiveTask and RemoveActiveTask use set semantics: duplicate adds
	// and missing removals are not errors.
	AddActiveTask(ctx context.Context, projectID, annotatorID, taskID string) error
	RemoveActiveTask(ctx context.Context, projectID, annotatorID, taskID string) error
	// RemoveTaskEverywhere drops the task from every member's active set.
	RemoveTaskEverywhere(ctx context.Context, projectID, taskID string) error
	ActiveTasks(ctx context.Context, projectID, annotatorID string) ([]string, error)
}

// TimeRecord tracks labor time for one (task, annotator) pair.
// SessionSeconds is the open session, nil between sessions; FoldedSeconds
// is the cumulative total attributed to this annotator on this task.
type TimeRecord struct {
	TaskID         string
	AnnotatorID    string
	ProjectID      string
	SessionSeconds *int64
	FoldedSeconds  int64
	UpdatedAt      time.Time
}

// TimeRepository persists per-annotator time records. Kept separate from
// tasks so historical attribution across reassignments stays queryable.
type TimeRepository interface {
	// OpenSession creates the record if absent or resets its open session
	// to null.
	OpenSession(ctx context.Context, taskID, annotatorID, projectID string) error
	// CloseSession folds seconds into the cumulative total, clears the open
	// session and returns the new total.
	CloseSession(ctx context.Context, taskID, annotatorID string, seconds int64) (int64, error)
	// Session returns the open session value, nil when no session is open
	// or no record exists.
	Session(ctx context.Context, taskID, annotatorID string) (*int64, error)
	// DiscardTask removes every time record for the task.
	DiscardTask(ctx context.Context, taskID string) error
	ListByAnnotator(ctx context.Context, annotatorID, projectID string) ([]*TimeRecord, error)
}

// UserRecord is the persistence representation of a user.
type UserRecord struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *UserRecord) error
	GetByID(ctx context.Context, id string) (*UserRecord, error)
	List(ctx context.Context) ([]*UserRecord, error)
}

// ProjectRecord is the persistence representation of a project.
type ProjectRecord struct {
	ID        string
	Name      string
	Category  string
	ManagerID string
	CreatedAt time.Time
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *ProjectRecord) error
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)
	List(ctx context.Context) ([]*ProjectRecord, error)
}

// NotificationRecord is one workflow event delivered to a user.
type NotificationRecord struct {
	ID          string
	RecipientID string
	SenderID    string
	Type        string
	Title       string
	Message     string
	TaskID      string
	ProjectID   string
	IsRead      bool
	CreatedAt   time.Time
}

// NotificationRepository persists notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *NotificationRecord) error
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]*NotificationRecord, error)
	MarkRead(ctx context.Context, id string) error
}

// Repositories bundles the persistence seams the workflow engine touches.
type Repositories interface {
	Tasks() TaskRepository
	Remarks() RemarkRepository
	Rosters() RosterRepository
	Times() TimeRepository
	Users() UserRepository
	Projects() ProjectRepository
}

// Store is the transactional entry point. WithTx runs fn against
// repositories bound to a single transaction: every write inside fn commits
// together or not at all. Operations on the same task run their whole
// read-validate-mutate sequence inside one WithTx call.
type Store interface {
	Repositories
	WithTx(ctx context.Context, fn func(Repositories) error) error
}
