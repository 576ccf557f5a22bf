// Package primary defines the driving ports: the service interfaces and
// request/response types consumed by the CLI (and any future transport).
package primary

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/labelhub/internal/models"
)

// Task is the caller-facing view of a task.
type Task struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Category  string `json:"category"`
	Tag       string `json:"tag,omitempty"`
	State     string `json:"state"`

	Data         json.RawMessage `json:"data,omitempty"`
	Annotation   json.RawMessage `json:"annotation,omitempty"`
	QaAnnotation json.RawMessage `json:"qa_annotation,omitempty"`
	QaFeedback   string          `json:"qa_feedback,omitempty"`

	Completed models.CompletedStatus `json:"completed"`

	AssignedAnnotatorID string `json:"assigned_annotator_id,omitempty"`
	AssignedQaID        string `json:"assigned_qa_id,omitempty"`

	IsReturned   bool   `json:"is_returned"`
	ReturnReason string `json:"return_reason,omitempty"`
	ReturnedBy   string `json:"returned_by,omitempty"`

	AccumulatedSeconds   int64  `json:"accumulated_seconds"`
	QaAccumulatedSeconds *int64 `json:"qa_accumulated_seconds,omitempty"`

	CreatedAt            time.Time  `json:"created_at"`
	AnnotatorStartedAt   *time.Time `json:"annotator_started_at,omitempty"`
	AnnotatorCompletedAt *time.Time `json:"annotator_completed_at,omitempty"`
	QaStartedAt          *time.Time `json:"qa_started_at,omitempty"`
	QaCompletedAt        *time.Time `json:"qa_completed_at,omitempty"`

	Remarks []Remark `json:"remarks,omitempty"`
}

// Remark is one immutable entry in a task's remark log.
type Remark struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorRole string    `json:"author_role"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateTaskRequest creates a task within a project.
type CreateTaskRequest struct {
	ActorID   string
	ProjectID string
	Category  string
	Tag       string
	Data      json.RawMessage
}

// AssignAnnotatorRequest assigns an annotator to a task.
type AssignAnnotatorRequest struct {
	ActorID     string
	TaskID      string
	AnnotatorID string
}

// AssignQARequest assigns a QA reviewer to a task.
type AssignQARequest struct {
	ActorID string
	TaskID  string
	QaID    string
}

// SubmitAnnotationRequest submits the annotator's work.
type SubmitAnnotationRequest struct {
	ActorID        string
	TaskID         string
	Annotation     json.RawMessage
	SessionSeconds int64
}

// SubmitQARequest submits the QA review.
type SubmitQARequest struct {
	ActorID          string
	TaskID           string
	QaAnnotation     json.RawMessage
	Feedback         string
	QaSessionSeconds *int64
}

// ReturnRequest sends a task back to its annotator for revision.
type ReturnRequest struct {
	ActorID string
	TaskID  string
	Reason  string
}

// AddRemarkRequest appends a remark to a task.
type AddRemarkRequest struct {
	ActorID string
	TaskID  string
	Message string
	Type    string // defaulted by author role when empty
}

// TaskHistoryEntry is one task in an annotator's completion history.
type TaskHistoryEntry struct {
	TaskID        string
	ProjectID     string
	ProjectName   string
	Category      string
	FoldedSeconds int64
	Completed     bool
}

// TaskHistory summarizes an annotator's completion history.
type TaskHistory struct {
	AnnotatorID    string
	AnnotatorName  string
	TotalTasks     int
	CompletedTasks int
	Entries        []TaskHistoryEntry
}

// WorkflowService orchestrates the task lifecycle from creation through
// QA-approved completion.
type WorkflowService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)
	GetTask(ctx context.Context, actorID, taskID string) (*Task, error)
	ListProjectTasks(ctx context.Context, actorID, projectID string) ([]*Task, error)
	ListMyTasks(ctx context.Context, actorID, projectID string) ([]*Task, error)
	ListCompletedTasks(ctx context.Context, actorID, projectID, annotatorID string) ([]*Task, error)

	AssignAnnotator(ctx context.Context, req AssignAnnotatorRequest) (*Task, error)
	AssignQA(ctx context.Context, req AssignQARequest) (*Task, error)
	SubmitAnnotation(ctx context.Context, req SubmitAnnotationRequest) (*Task, error)
	SubmitQA(ctx context.Context, req SubmitQARequest) (*Task, error)
	ReturnToAnnotator(ctx context.Context, req ReturnRequest) (*Task, error)
	Unassign(ctx context.Context, actorID, taskID string) (*Task, error)
	AddRemark(ctx context.Context, req AddRemarkRequest) (*Remark, error)
	DeleteTask(ctx context.Context, actorID, taskID string) error
	RecordQaTime(ctx context.Context, actorID, taskID string, seconds int64) error

	TaskHistory(ctx context.Context, annotatorID, projectID string) (*TaskHistory, error)
}
