package models

// Notification type constants covering the workflow milestones.
const (
	NotifyTaskAssigned        = "task_assigned"
	NotifyQaAssigned          = "qa_assigned"
	NotifyTaskCompleted       = "task_completed"
	NotifyAnnotationSubmitted = "annotation_submitted"
	NotifyQaCompleted         = "qa_completed"
	NotifyQaApproved          = "qa_approved"
	NotifyTaskReturned        = "task_returned"
)
