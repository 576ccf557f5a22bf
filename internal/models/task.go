package models

// Task lifecycle states, derived from assignment and completion fields.
// A task never stores its state directly; see core/workflow.StateOf.
const (
	TaskStateCreated            = "created"
	TaskStateAnnotatorAssigned  = "annotator_assigned"
	TaskStateAnnotatorSubmitted = "annotator_submitted"
	TaskStateQaAssigned         = "qa_assigned"
	TaskStateQaCompleted        = "qa_completed"
)

// Remark type constants. Remarks are append-only; entries are never edited
// or removed once written.
const (
	RemarkManagerNote    = "manager_note"
	RemarkAnnotatorReply = "annotator_reply"
	RemarkQaNote         = "qa_note"
	RemarkQaReturn       = "qa_return"
)

// CompletedStatus tracks the two halves of task completion.
// QaPart true implies AnnotatorPart true.
type CompletedStatus struct {
	AnnotatorPart bool `json:"annotator_part"`
	QaPart        bool `json:"qa_part"`
}
