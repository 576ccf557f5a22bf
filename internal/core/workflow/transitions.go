package workflow

import "github.com/example/labelhub/internal/models"

// Snapshot carries the task fields that determine lifecycle state.
type Snapshot struct {
	AssignedAnnotatorID string
	AssignedQaID        string
	AnnotatorComplete   bool
	QaComplete          bool
}

// StateOf derives the lifecycle state from a task snapshot. State is never
// stored; it is a function of assignment and completion fields, so a return
// for revision lands the task back in annotator_assigned without special
// casing.
func StateOf(s Snapshot) string {
	switch {
	case s.QaComplete:
		return models.TaskStateQaCompleted
	case s.AnnotatorComplete && s.AssignedQaID != "":
		return models.TaskStateQaAssigned
	case s.AnnotatorComplete:
		return models.TaskStateAnnotatorSubmitted
	case s.AssignedAnnotatorID != "":
		return models.TaskStateAnnotatorAssigned
	default:
		return models.TaskStateCreated
	}
}
