// Package workflow contains the pure business logic for the task lifecycle.
// Guards are pure functions that evaluate preconditions without side effects;
// services gather the facts, guards decide.
package workflow

import (
	"fmt"

	"github.com/example/labelhub/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    error // taxonomy sentinel, set when not allowed
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", r.Kind, r.Reason)
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

func deny(kind error, reason string) GuardResult {
	return GuardResult{Allowed: false, Kind: kind, Reason: reason}
}

// AssignAnnotatorContext provides facts for annotator assignment guards.
type AssignAnnotatorContext struct {
	ActorRole        string
	ActorOwnsProject bool
	AssigneeRole     string
	AssigneeIsMember bool // accepted-invite member of the project roster
}

// CanAssignAnnotator evaluates whether an annotator may be assigned.
// Rules:
// - Actor must be admin or the project's manager
// - Assignee must have the annotator role
// - Assignee must be a member of the project roster
func CanAssignAnnotator(ctx AssignAnnotatorContext) GuardResult {
	if !actorManagesTasks(ctx.ActorRole, ctx.ActorOwnsProject) {
		return deny(ErrNotAuthorized, "only admins or the project's manager can assign tasks")
	}
	if ctx.AssigneeRole != models.RoleAnnotator {
		return deny(ErrNotEligible, "user must have annotator role to be assigned as annotator")
	}
	if !ctx.AssigneeIsMember {
		return deny(ErrNotEligible, "annotator is not part of this project (invite not accepted)")
	}
	return allow()
}

// AssignQAContext provides facts for QA assignment guards.
type AssignQAContext struct {
	ActorRole            string
	ActorOwnsProject     bool
	AssigneeRole         string
	AssigneeIsQaReviewer bool // in the project's QA subset
}

// CanAssignQA evaluates whether a QA reviewer may be assigned.
// Rules:
// - Actor must be admin or the project's manager
// - Assignee must have the annotator role
// - Assignee must be designated as QA reviewer for the project
func CanAssignQA(ctx AssignQAContext) GuardResult {
	if !actorManagesTasks(ctx.ActorRole, ctx.ActorOwnsProject) {
		return deny(ErrNotAuthorized, "only admins or the project's manager can assign tasks")
	}
	if ctx.AssigneeRole != models.RoleAnnotator {
		return deny(ErrNotEligible, "only annotators can be assigned as QA reviewers")
	}
	if !ctx.AssigneeIsQaReviewer {
		return deny(ErrNotEligible, "this annotator is not designated as QA reviewer for this project")
	}
	return allow()
}

// SubmitAnnotationContext provides facts for annotation submission guards.
// AssignedAnnotatorID must be read from the latest persisted task state, not
// a value cached earlier in the request.
type SubmitAnnotationContext struct {
	ActorID             string
	ActorRole           string
	ActorOwnsProject    bool
	AssignedAnnotatorID string
}

// CanSubmitAnnotation evaluates whether the actor may submit an annotation.
func CanSubmitAnnotation(ctx SubmitAnnotationContext) GuardResult {
	switch ctx.ActorRole {
	case models.RoleAdmin:
		return allow()
	case models.RoleManager:
		if ctx.ActorOwnsProject {
			return allow()
		}
	case models.RoleAnnotator:
		if ctx.AssignedAnnotatorID != "" && ctx.ActorID == ctx.AssignedAnnotatorID {
			return allow()
		}
	}
	return deny(ErrNotAuthorized, "not authorized to submit annotation for this task")
}

// SubmitQAContext provides facts for QA submission guards.
type SubmitQAContext struct {
	ActorID           string
	ActorRole         string
	ActorOwnsProject  bool
	AssignedQaID      string
	AnnotatorComplete bool
}

// CanSubmitQA evaluates whether the actor may submit a QA review.
// Managers may only submit while no QA reviewer is assigned. QA completion
// requires a completed annotator part.
func CanSubmitQA(ctx SubmitQAContext) GuardResult {
	authorized := false
	switch ctx.ActorRole {
	case models.RoleAdmin:
		authorized = true
	case models.RoleManager:
		authorized = ctx.AssignedQaID == "" && ctx.ActorOwnsProject
	case models.RoleAnnotator:
		authorized = ctx.AssignedQaID != "" && ctx.ActorID == ctx.AssignedQaID
	}
	if !authorized {
		return deny(ErrNotAuthorized, "not authorized to submit QA for this task")
	}
	if !ctx.AnnotatorComplete {
		return deny(ErrInvalidState, "annotation must be submitted before QA review")
	}
	return allow()
}

// ReturnContext provides facts for return-for-revision guards.
type ReturnContext struct {
	ActorID           string
	ActorRole         string
	ActorOwnsProject  bool
	AssignedQaID      string
	AnnotatorComplete bool
}

// CanReturnToAnnotator evaluates whether a task may be sent back for revision.
// Rules:
// - Actor must be admin, the project's manager, or the assigned QA reviewer
// - The annotator part must be complete
func CanReturnToAnnotator(ctx ReturnContext) GuardResult {
	authorized := false
	switch ctx.ActorRole {
	case models.RoleAdmin:
		authorized = true
	case models.RoleManager:
		authorized = ctx.ActorOwnsProject
	case models.RoleAnnotator:
		authorized = ctx.AssignedQaID != "" && ctx.ActorID == ctx.AssignedQaID
	}
	if !authorized {
		return deny(ErrNotAuthorized, "not authorized to return this task")
	}
	if !ctx.AnnotatorComplete {
		return deny(ErrInvalidState, "task must be completed by annotator before it can be returned")
	}
	return allow()
}

// UnassignContext provides facts for unassignment guards.
type UnassignContext struct {
	ActorRole        string
	ActorOwnsProject bool
}

// CanUnassign evaluates whether a task may be fully unassigned.
// Unassignment is manager-only and scoped to the owning project.
func CanUnassign(ctx UnassignContext) GuardResult {
	if ctx.ActorRole != models.RoleManager {
		return deny(ErrNotAuthorized, "only managers can unassign tasks")
	}
	if !ctx.ActorOwnsProject {
		return deny(ErrNotAuthorized, "not authorized to unassign this task")
	}
	return allow()
}

// RemarkContext provides facts for remark guards.
type RemarkContext struct {
	ActorID             string
	ActorRole           string
	ActorOwnsProject    bool
	AssignedAnnotatorID string
	AssignedQaID        string
	Message             string
}

// CanAddRemark evaluates whether the actor may append a remark.
func CanAddRemark(ctx RemarkContext) GuardResult {
	if ctx.Message == "" {
		return deny(ErrInvalidArgument, "remark message cannot be empty")
	}
	switch ctx.ActorRole {
	case models.RoleAdmin:
		return allow()
	case models.RoleManager:
		if ctx.ActorOwnsProject {
			return allow()
		}
	case models.RoleAnnotator:
		if ctx.ActorID == ctx.AssignedAnnotatorID || (ctx.AssignedQaID != "" && ctx.ActorID == ctx.AssignedQaID) {
			return allow()
		}
	}
	return deny(ErrNotAuthorized, "not authorized to add remarks to this task")
}

// DeleteTaskContext provides facts for task deletion guards.
type DeleteTaskContext struct {
	ActorRole        string
	ActorOwnsProject bool
	HasAssignment    bool // annotator or QA currently assigned
}

// CanDeleteTask evaluates whether a task may be deleted.
// Deletion is manager-only and rejected while the task is assigned.
func CanDeleteTask(ctx DeleteTaskContext) GuardResult {
	if ctx.ActorRole != models.RoleManager {
		return deny(ErrNotAuthorized, "only managers can delete tasks")
	}
	if !ctx.ActorOwnsProject {
		return deny(ErrNotAuthorized, "not authorized to delete this task")
	}
	if ctx.HasAssignment {
		return deny(ErrInvalidState, "cannot delete assigned task, unassign it first")
	}
	return allow()
}

// CreateTaskContext provides facts for task creation guards.
type CreateTaskContext struct {
	ActorRole        string
	ActorOwnsProject bool
	ProjectCategory  string
	TaskCategory     string
}

// CanCreateTask evaluates whether a task can be created.
// Rules:
// - Actor must be admin or the project's manager
// - Task category must match the project's category
func CanCreateTask(ctx CreateTaskContext) GuardResult {
	if !actorManagesTasks(ctx.ActorRole, ctx.ActorOwnsProject) {
		return deny(ErrNotAuthorized, "only managers and admins can create tasks")
	}
	if ctx.ProjectCategory != ctx.TaskCategory {
		return deny(ErrInvalidArgument, "task category must match project's category")
	}
	return allow()
}

// RecordQaTimeContext provides facts for QA time autosave guards.
type RecordQaTimeContext struct {
	ActorID      string
	ActorRole    string
	AssignedQaID string
}

// CanRecordQaTime evaluates whether the actor may update QA time on a task.
// Annotators may only update time on tasks they review; admins and managers
// pass through.
func CanRecordQaTime(ctx RecordQaTimeContext) GuardResult {
	if ctx.ActorRole == models.RoleAnnotator && ctx.ActorID != ctx.AssignedQaID {
		return deny(ErrNotAuthorized, "not authorized to update QA time for this task")
	}
	return allow()
}

// DefaultRemarkType picks the remark type for an author when none is given.
func DefaultRemarkType(actorRole, actorID, assignedAnnotatorID string) string {
	switch actorRole {
	case models.RoleAdmin, models.RoleManager:
		return models.RemarkManagerNote
	case models.RoleAnnotator:
		if actorID == assignedAnnotatorID {
			return models.RemarkAnnotatorReply
		}
	}
	return models.RemarkQaNote
}

func actorManagesTasks(role string, ownsProject bool) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		return ownsProject
	}
	return false
}
