package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/labelhub/internal/category"
	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/ctxutil"
	"github.com/example/labelhub/internal/models"
	"github.com/example/labelhub/internal/ports/primary"
	"github.com/example/labelhub/internal/ports/secondary"
)

// WorkflowServiceImpl implements the WorkflowService interface. Every
// mutating operation runs its read-validate-mutate sequence inside one
// store transaction, so task, roster and time record changes land together
// or not at all. Notifications are sent after a successful commit and
// never affect the outcome.
type WorkflowServiceImpl struct {
	store secondary.Store
	sink  secondary.NotificationSink
}

// NewWorkflowService creates a new WorkflowService with injected dependencies.
func NewWorkflowService(store secondary.Store, sink secondary.NotificationSink) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{store: store, sink: sink}
}

// CreateTask creates a new task in a project. Task data is validated
// strictly against the category schema; invalid data is rejected here,
// unlike annotation submission.
func (s *WorkflowServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	actor, err := s.actor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}
	cat, err := category.Parse(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrInvalidArgument, err)
	}

	var created *secondary.TaskRecord
	err = s.store.WithTx(ctx, func(r secondary.Repositories) error {
		project, err := r.Projects().GetByID(ctx, req.ProjectID)
		if err != nil {
			return err
		}

		result := workflow.CanCreateTask(workflow.CreateTaskContext{
			ActorRole:        actor.Role,
			ActorOwnsProject: project.ManagerID == actor.ID,
			ProjectCategory:  project.Category,
			TaskCategory:     string(cat),
		})
		if err := result.Error(); err != nil {
			return err
		}

		data, err := category.ValidateData(cat, req.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", workflow.ErrInvalidArgument, err)
		}

		created = &secondary.TaskRecord{
			ID:        uuid.NewString(),
			ProjectID: project.ID,
			Category:  string(cat),
			Tag:       req.Tag,
			Data:      data,
			CreatedAt: time.Now().UTC(),
		}
		return r.Tasks().Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	return recordToTask(created, nil), nil
}

// GetTask retrieves a task by ID if the actor has access to it.
func (s *WorkflowServiceImpl) GetTask(ctx context.Context, actorID, taskID string) (*primary.Task, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.Projects().GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.checkProjectAccess(ctx, actor, project); err != nil {
		return nil, err
	}

	remarks, err := s.store.Remarks().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load remarks: %w", err)
	}
	return recordToTask(task, remarks), nil
}

// ListProjectTasks lists every task in a project.
func (s *WorkflowServiceImpl) ListProjectTasks(ctx context.Context, actorID, projectID string) ([]*primary.Task, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.checkProjectAccess(ctx, actor, project); err != nil {
		return nil, err
	}
	return s.listTasks(ctx, secondary.TaskFilters{ProjectID: projectID})
}

// ListMyTasks lists tasks in a project assigned to the calling annotator,
// as annotator or as QA reviewer.
func (s *WorkflowServiceImpl) ListMyTasks(ctx context.Context, actorID, projectID string) ([]*primary.Task, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAnnotator {
		return nil, fmt.Errorf("%w: only annotators can view their assigned tasks", workflow.ErrNotAuthorized)
	}
	project, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.checkProjectAccess(ctx, actor, project); err != nil {
		return nil, err
	}
	return s.listTasks(ctx, secondary.TaskFilters{ProjectID: projectID, AssigneeID: actor.ID})
}

// ListCompletedTasks lists tasks whose annotator and QA parts are both done.
func (s *WorkflowServiceImpl) ListCompletedTasks(ctx context.Context, actorID, projectID, annotatorID string) ([]*primary.Task, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && !(actor.Role == models.RoleManager && project.ManagerID == actor.ID) {
		return nil, fmt.Errorf("%w: not authorized to view completed tasks for this project", workflow.ErrNotAuthorized)
	}
	return s.listTasks(ctx, secondary.TaskFilters{
		ProjectID:     projectID,
		CompletedOnly: true,
		AnnotatorID:   annotatorID,
	})
}

// AssignAnnotator assigns an annotator to a task. Reassignment moves the
// task between active sets and resets the open time session; accumulated
// time is untouched.
func (s *WorkflowServiceImpl) AssignAnnotator(ctx context.Context, req primary.AssignAnnotatorRequest) (*primary.Task, error) {
	actor, err := s.actor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}

	var (
		updated *secondary.TaskRecord
		project *secondary.ProjectRecord
	)
	err = s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		project, err = r.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}
		assignee, err := r.Users().GetByID(ctx, req.AnnotatorID)
		if err != nil {
			return err
		}
		isMember, err := r.Rosters().IsMember(ctx, project.ID, assignee.ID)
		if err != nil {
			return err
		}

		result := workflow.CanAssignAnnotator(workflow.AssignAnnotatorContext{
			ActorRole:        actor.Role,
			ActorOwnsProject: project.ManagerID == actor.ID,
			AssigneeRole:     assignee.Role,
			AssigneeIsMember: isMember,
		})
		if err := result.Error(); err != nil {
			return err
		}

		if prev := task.AssignedAnnotatorID; prev != "" && prev != assignee.ID {
			if err := r.Rosters().RemoveActiveTask(ctx, project.ID, prev, task.ID); err != nil {
				return err
			}
		}

		task.AssignedAnnotatorID = assignee.ID
		if task.AnnotatorStartedAt == nil {
			now := time.Now().UTC()
			task.AnnotatorStartedAt = &now
		}

		if err := r.Rosters().AddActiveTask(ctx, project.ID, assignee.ID, task.ID); err != nil {
			return err
		}
		if err := r.Times().OpenSession(ctx, task.ID, assignee.ID, project.ID); err != nil {
			return err
		}
		if err := r.Tasks().Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &secondary.NotificationRecord{
		RecipientID: updated.AssignedAnnotatorID,
		SenderID:    actor.ID,
		Type:        models.NotifyTaskAssigned,
		Title:       "New Task Assigned",
		Message:     fmt.Sprintf("You have been assigned to task: %s", taskName(updated, project)),
		TaskID:      updated.ID,
		ProjectID:   project.ID,
	})
	return recordToTask(updated, nil), nil
}

// AssignQA assigns a QA reviewer to a task.
func (s *WorkflowServiceImpl) AssignQA(ctx context.Context, req primary.AssignQARequest) (*primary.Task, error) {
	actor, err := s.actor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}

	var (
		updated *secondary.TaskRecord
		project *secondary.ProjectRecord
	)
	err = s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		project, err = r.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}
		assignee, err := r.Users().GetByID(ctx, req.QaID)
		if err != nil {
			return err
		}
		isQa, err := r.Rosters().IsQaReviewer(ctx, project.ID, assignee.ID)
		if err != nil {
			return err
		}

		result := workflow.CanAssignQA(workflow.AssignQAContext{
			ActorRole:            actor.Role,
			ActorOwnsProject:     project.ManagerID == actor.ID,
			AssigneeRole:         assignee.Role,
			AssigneeIsQaReviewer: isQa,
		})
		if err := result.Error(); err != nil {
			return err
		}

		task.AssignedQaID = assignee.ID
		if task.QaStartedAt == nil {
			now := time.Now().UTC()
			task.QaStartedAt = &now
		}
		if err := r.Tasks().Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &secondary.NotificationRecord{
		RecipientID: updated.AssignedQaID,
		SenderID:    actor.ID,
		Type:        models.NotifyQaAssigned,
		Title:       "QA Review Assigned",
		Message:     fmt.Sprintf("You have been assigned to review task: %s", taskName(updated, project)),
		TaskID:      updated.ID,
		ProjectID:   project.ID,
	})
	return recordToTask(updated, nil), nil
}

// SubmitAnnotation stores the annotator's work and folds the session time
// into the task's accumulated total. The assignment is re-checked against
// the freshly read task inside the transaction, so a submission racing a
// reassignment loses cleanly instead of overwriting it. An annotation that
// fails schema validation is stored raw rather than rejected.
func (s *WorkflowServiceImpl) SubmitAnnotation(ctx context.Context, req primary.SubmitAnnotationRequest) (*primary.Task, error) {
	actor, err := s.actor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}
	if req.SessionSeconds < 0 {
		return nil, fmt.Errorf("%w: session seconds cannot be negative", workflow.ErrInvalidArgument)
	}

	var (
		updated *secondary.TaskRecord
		project *secondary.ProjectRecord
	)
	err = s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		project, err = r.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}

		result := workflow.CanSubmitAnnotation(workflow.SubmitAnnotationContext{
			ActorID:             actor.ID,
			ActorRole:           actor.Role,
			ActorOwnsProject:    project.ManagerID == actor.ID,
			AssignedAnnotatorID: task.AssignedAnnotatorID,
		})
		if err := result.Error(); err != nil {
			return err
		}

		annotation, _ := category.ValidateAnnotation(category.Category(task.Category), req.Annotation)

		now := time.Now().UTC()
		task.Annotation = annotation
		task.AnnotatorDone = true
		task.IsReturned = false
		task.AnnotatorCompletedAt = &now

		if task.AssignedAnnotatorID != "" {
			if err := r.Rosters().RemoveActiveTask(ctx, project.ID, task.AssignedAnnotatorID, task.ID); err != nil {
				return err
			}
			task.AccumulatedSeconds += req.SessionSeconds
			if _, err := r.Times().CloseSession(ctx, task.ID, task.AssignedAnnotatorID, req.SessionSeconds); err != nil {
				return err
			}
		}

		if err := r.Tasks().Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := taskName(updated, project)
	s.notify(ctx, &secondary.NotificationRecord{
		RecipientID: project.ManagerID,
		SenderID:    actor.ID,
		Type:        models.NotifyTaskCompleted,
		Title:       "Task Completed",
		Message:     fmt.Sprintf("Task completed: %s", name),
		TaskID:      updated.ID,
		ProjectID:   project.ID,
	})
	if updated.AssignedQaID != "" {
		s.notify(ctx, &secondary.NotificationRecord{
			RecipientID: updated.AssignedQaID,
			SenderID:    actor.ID,
			Type:        models.NotifyAnnotationSubmitted,
			Title:       "Annotation Submitted for Review",
			Message:     fmt.Sprintf("Annotation submitted for task: %s. Ready for QA review.", name),
			TaskID:      updated.ID,
			ProjectID:   project.ID,
		})
	}
	return recordToTask(updated, nil), nil
}

// SubmitQA stores the QA review. The annotator is notified only when no
// feedback was given, which doubles as the approval signal.
func (s *WorkflowServiceImpl) SubmitQA(ctx context.Context, req primary.SubmitQARequest) (*primary.Task, error) {
	actor, err := s.actor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}

	var (
		updated *secondary.TaskRecord
		project *secondary.ProjectRecord
	)
	err = s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		project, err = r.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}

		result := workflow.CanSubmitQA(workflow.SubmitQAContext{
			ActorID:           actor.ID,
			ActorRole:         actor.Role,
			ActorOwnsProject:  project.ManagerID == actor.ID,
			AssignedQaID:      task.AssignedQaID,
			AnnotatorComplete: task.AnnotatorDone,
		})
		if err := result.Error(); err != nil {
			return err
		}

		now := time.Now().UTC()
		task.QaAnnotation = req.QaAnnotation
		task.QaFeedback = req.Feedback
		task.QaDone = true
		task.QaCompletedAt = &now
		if req.QaSessionSeconds != nil {
			task.QaAccumulatedSeconds = req.QaSessionSeconds
		}

		if err := r.Tasks().Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := taskName(updated, project)
	s.notify(ctx, &secondary.NotificationRecord{
		RecipientID: project.ManagerID,
		SenderID:    actor.ID,
		Type:        models.NotifyQaCompleted,
		Title:       "QA Review Completed",
		Message:     fmt.Sprintf("QA review completed for task: %s", name),
		TaskID:      updated.ID,
		ProjectID:   project.ID,
	})
	if updated.AssignedAnnotatorID != "" && req.Feedback == "" {
		s.notify(ctx, &secondary.NotificationRecord{
			RecipientID: updated.AssignedAnnotatorID,
			SenderID:    actor.ID,
			Type:        models.NotifyQaApproved,
			Title:       "Task Approved",
			Message:     fmt.Sprintf("Your annotation for task: %s has been approved by QA.", name),
			TaskID:      updated.ID,
			ProjectID:   project.ID,
		})
	}
	return recordToTask(updated, nil), nil
}

// ReturnToAnnotator sends a completed task back for revision. Any open time
// session is folded into the accumulated total first, then a fresh session
// is opened, so time carries over across return cycles. QA content is
// cleared; the existing annotator assignment is preserved.
func (s *WorkflowServiceImpl) ReturnToAnnotator(ctx context.Context, req primary.ReturnRequest) (*primary.Task, error) {
	actor, err := s.actor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}

	var (
		updated *secondary.TaskRecord
		project *secondary.ProjectRecord
	)
	err = s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		project, err = r.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}

		result := workflow.CanReturnToAnnotator(workflow.ReturnContext{
			ActorID:           actor.ID,
			ActorRole:         actor.Role,
			ActorOwnsProject:  project.ManagerID == actor.ID,
			AssignedQaID:      task.AssignedQaID,
			AnnotatorComplete: task.AnnotatorDone,
		})
		if err := result.Error(); err != nil {
			return err
		}

		if task.AssignedAnnotatorID != "" {
			session, err := r.Times().Session(ctx, task.ID, task.AssignedAnnotatorID)
			if err != nil {
				return err
			}
			if session != nil {
				task.AccumulatedSeconds += *session
			}
			if err := r.Rosters().AddActiveTask(ctx, project.ID, task.AssignedAnnotatorID, task.ID); err != nil {
				return err
			}
			if err := r.Times().OpenSession(ctx, task.ID, task.AssignedAnnotatorID, project.ID); err != nil {
				return err
			}
		}

		reason := strings.TrimSpace(req.Reason)
		message := reason
		if message == "" {
			message = "Task returned for further revisions"
		}

		task.AnnotatorDone = false
		task.QaDone = false
		task.QaAnnotation = nil
		task.QaFeedback = ""
		task.QaCompletedAt = nil
		task.AnnotatorCompletedAt = nil
		task.IsReturned = true
		task.ReturnReason = reason
		task.ReturnedBy = actor.ID

		remark := &secondary.RemarkRecord{
			ID:         uuid.NewString(),
			TaskID:     task.ID,
			AuthorID:   actor.ID,
			AuthorRole: actor.Role,
			Type:       models.RemarkQaReturn,
			Message:    message,
			CreatedAt:  time.Now().UTC(),
		}
		if err := r.Remarks().Append(ctx, remark); err != nil {
			return err
		}
		if err := r.Tasks().Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.AssignedAnnotatorID != "" {
		s.notify(ctx, &secondary.NotificationRecord{
			RecipientID: updated.AssignedAnnotatorID,
			SenderID:    actor.ID,
			Type:        models.NotifyTaskReturned,
			Title:       "Task Returned for Revision",
			Message:     fmt.Sprintf("Task returned for revision: %s. Please review feedback and resubmit.", taskName(updated, project)),
			TaskID:      updated.ID,
			ProjectID:   project.ID,
		})
	}
	return recordToTask(updated, nil), nil
}

// Unassign performs a full restart of the task: both assignments, all
// annotation and QA content, completion flags, timestamps and accumulated
// time are cleared. This is the only operation that discards cumulative
// time.
func (s *WorkflowServiceImpl) Unassign(ctx context.Context, actorID, taskID string) (*primary.Task, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var updated *secondary.TaskRecord
	err = s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		project, err := r.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}

		result := workflow.CanUnassign(workflow.UnassignContext{
			ActorRole:        actor.Role,
			ActorOwnsProject: project.ManagerID == actor.ID,
		})
		if err := result.Error(); err != nil {
			return err
		}

		task.AssignedAnnotatorID = ""
		task.AssignedQaID = ""
		task.Annotation = nil
		task.QaAnnotation = nil
		task.QaFeedback = ""
		task.AnnotatorDone = false
		task.QaDone = false
		task.IsReturned = false
		task.ReturnReason = ""
		task.ReturnedBy = ""
		task.AccumulatedSeconds = 0
		task.QaAccumulatedSeconds = nil
		task.AnnotatorStartedAt = nil
		task.AnnotatorCompletedAt = nil
		task.QaStartedAt = nil
		task.QaCompletedAt = nil

		if err := r.Rosters().RemoveTaskEverywhere(ctx, project.ID, task.ID); err != nil {
			return err
		}
		if err := r.Times().DiscardTask(ctx, task.ID); err != nil {
			return err
		}
		if err := r.Tasks().Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recordToTask(updated, nil), nil
}

// AddRemark appends an immutable remark to a task's log.
func (s *WorkflowServiceImpl) AddRemark(ctx context.Context, req primary.AddRemarkRequest) (*primary.Remark, error) {
	actor, err := s.actor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}
	message := strings.TrimSpace(req.Message)

	var created *secondary.RemarkRecord
	err = s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		project, err := r.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}

		result := workflow.CanAddRemark(workflow.RemarkContext{
			ActorID:             actor.ID,
			ActorRole:           actor.Role,
			ActorOwnsProject:    project.ManagerID == actor.ID,
			AssignedAnnotatorID: task.AssignedAnnotatorID,
			AssignedQaID:        task.AssignedQaID,
			Message:             message,
		})
		if err := result.Error(); err != nil {
			return err
		}

		remarkType := req.Type
		if remarkType == "" {
			remarkType = workflow.DefaultRemarkType(actor.Role, actor.ID, task.AssignedAnnotatorID)
		}

		created = &secondary.RemarkRecord{
			ID:         uuid.NewString(),
			TaskID:     task.ID,
			AuthorID:   actor.ID,
			AuthorRole: actor.Role,
			Type:       remarkType,
			Message:    message,
			CreatedAt:  time.Now().UTC(),
		}
		return r.Remarks().Append(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	return &primary.Remark{
		ID:         created.ID,
		AuthorID:   created.AuthorID,
		AuthorRole: created.AuthorRole,
		Type:       created.Type,
		Message:    created.Message,
		CreatedAt:  created.CreatedAt,
	}, nil
}

// DeleteTask removes an unassigned task and its roster/time footprint.
func (s *WorkflowServiceImpl) DeleteTask(ctx context.Context, actorID, taskID string) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}

	return s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		project, err := r.Projects().GetByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}

		result := workflow.CanDeleteTask(workflow.DeleteTaskContext{
			ActorRole:        actor.Role,
			ActorOwnsProject: project.ManagerID == actor.ID,
			HasAssignment:    task.HasAssignment(),
		})
		if err := result.Error(); err != nil {
			return err
		}

		if err := r.Rosters().RemoveTaskEverywhere(ctx, project.ID, task.ID); err != nil {
			return err
		}
		if err := r.Times().DiscardTask(ctx, task.ID); err != nil {
			return err
		}
		return r.Tasks().Delete(ctx, task.ID)
	})
}

// RecordQaTime autosaves QA time on a task outside submission.
func (s *WorkflowServiceImpl) RecordQaTime(ctx context.Context, actorID, taskID string, seconds int64) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if seconds < 0 {
		return fmt.Errorf("%w: seconds cannot be negative", workflow.ErrInvalidArgument)
	}

	return s.store.WithTx(ctx, func(r secondary.Repositories) error {
		task, err := r.Tasks().GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		result := workflow.CanRecordQaTime(workflow.RecordQaTimeContext{
			ActorID:      actor.ID,
			ActorRole:    actor.Role,
			AssignedQaID: task.AssignedQaID,
		})
		if err := result.Error(); err != nil {
			return err
		}

		task.QaAccumulatedSeconds = &seconds
		return r.Tasks().Update(ctx, task)
	})
}

// TaskHistory returns the annotator's per-task time attribution, joined
// with task and project details. Tasks deleted since the time record was
// written are skipped.
func (s *WorkflowServiceImpl) TaskHistory(ctx context.Context, annotatorID, projectID string) (*primary.TaskHistory, error) {
	annotator, err := s.actor(ctx, annotatorID)
	if err != nil {
		return nil, err
	}
	if annotator.Role != models.RoleAnnotator {
		return nil, fmt.Errorf("%w: task history is for annotators only", workflow.ErrNotAuthorized)
	}

	records, err := s.store.Times().ListByAnnotator(ctx, annotatorID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}

	history := &primary.TaskHistory{
		AnnotatorID:   annotator.ID,
		AnnotatorName: annotator.Name,
	}
	for _, rec := range records {
		task, err := s.store.Tasks().GetByID(ctx, rec.TaskID)
		if err != nil {
			if errors.Is(err, workflow.ErrNotFound) {
				continue
			}
			return nil, err
		}
		entry := primary.TaskHistoryEntry{
			TaskID:        rec.TaskID,
			ProjectID:     rec.ProjectID,
			Category:      task.Category,
			FoldedSeconds: rec.FoldedSeconds,
			Completed:     task.AnnotatorDone && task.AssignedAnnotatorID == annotatorID,
		}
		if project, err := s.store.Projects().GetByID(ctx, rec.ProjectID); err == nil {
			entry.ProjectName = project.Name
		}
		history.Entries = append(history.Entries, entry)
		history.TotalTasks++
		if entry.Completed {
			history.CompletedTasks++
		}
	}
	return history, nil
}

func (s *WorkflowServiceImpl) listTasks(ctx context.Context, filters secondary.TaskFilters) ([]*primary.Task, error) {
	records, err := s.store.Tasks().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks := make([]*primary.Task, len(records))
	for i, rec := range records {
		tasks[i] = recordToTask(rec, nil)
	}
	return tasks, nil
}

// actor resolves the acting user. An empty id falls back to the actor
// carried on the context, if any.
func (s *WorkflowServiceImpl) actor(ctx context.Context, actorID string) (*secondary.UserRecord, error) {
	if actorID == "" {
		actorID = ctxutil.ActorFromContext(ctx)
	}
	if actorID == "" {
		return nil, fmt.Errorf("%w: no actor identity provided", workflow.ErrNotAuthorized)
	}
	return s.store.Users().GetByID(ctx, actorID)
}

// checkProjectAccess enforces read access: admins see everything, managers
// see their own projects, annotators see projects they are rostered on.
func (s *WorkflowServiceImpl) checkProjectAccess(ctx context.Context, actor *secondary.UserRecord, project *secondary.ProjectRecord) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleManager:
		if project.ManagerID == actor.ID {
			return nil
		}
	case models.RoleAnnotator:
		isMember, err := s.store.Rosters().IsMember(ctx, project.ID, actor.ID)
		if err != nil {
			return err
		}
		if isMember {
			return nil
		}
	}
	return fmt.Errorf("%w: not authorized to view tasks for this project", workflow.ErrNotAuthorized)
}

// notify delivers a workflow event. Failures are swallowed by contract:
// notification delivery never affects a committed transition.
func (s *WorkflowServiceImpl) notify(ctx context.Context, n *secondary.NotificationRecord) {
	if n.RecipientID == "" {
		return
	}
	_ = s.sink.Send(ctx, n)
}

func taskName(task *secondary.TaskRecord, project *secondary.ProjectRecord) string {
	if task.Tag != "" {
		return task.Tag
	}
	if project != nil && project.Name != "" {
		return fmt.Sprintf("Task in %s", project.Name)
	}
	return "Task"
}

// recordToTask converts a persistence record to the caller-facing view.
func recordToTask(rec *secondary.TaskRecord, remarks []*secondary.RemarkRecord) *primary.Task {
	task := &primary.Task{
		ID:        rec.ID,
		ProjectID: rec.ProjectID,
		Category:  rec.Category,
		Tag:       rec.Tag,
		State: workflow.StateOf(workflow.Snapshot{
			AssignedAnnotatorID: rec.AssignedAnnotatorID,
			AssignedQaID:        rec.AssignedQaID,
			AnnotatorComplete:   rec.AnnotatorDone,
			QaComplete:          rec.QaDone,
		}),
		Data:         rec.Data,
		Annotation:   rec.Annotation,
		QaAnnotation: rec.QaAnnotation,
		QaFeedback:   rec.QaFeedback,
		Completed: models.CompletedStatus{
			AnnotatorPart: rec.AnnotatorDone,
			QaPart:        rec.QaDone,
		},
		AssignedAnnotatorID:  rec.AssignedAnnotatorID,
		AssignedQaID:         rec.AssignedQaID,
		IsReturned:           rec.IsReturned,
		ReturnReason:         rec.ReturnReason,
		ReturnedBy:           rec.ReturnedBy,
		AccumulatedSeconds:   rec.AccumulatedSeconds,
		QaAccumulatedSeconds: rec.QaAccumulatedSeconds,
		CreatedAt:            rec.CreatedAt,
		AnnotatorStartedAt:   rec.AnnotatorStartedAt,
		AnnotatorCompletedAt: rec.AnnotatorCompletedAt,
		QaStartedAt:          rec.QaStartedAt,
		QaCompletedAt:        rec.QaCompletedAt,
	}
	for _, r := range remarks {
		task.Remarks = append(task.Remarks, primary.Remark{
			ID:         r.ID,
			AuthorID:   r.AuthorID,
			AuthorRole: r.AuthorRole,
			Type:       r.Type,
			Message:    r.Message,
			CreatedAt:  r.CreatedAt,
		})
	}
	return task
}
