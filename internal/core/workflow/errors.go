package workflow

import "errors"

// Error taxonomy for workflow operations. Services wrap these sentinels
// with operation detail; callers classify with errors.Is.
var (
	// ErrNotFound indicates a referenced task, project or user is absent.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized indicates the actor lacks permission for the operation.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNotEligible indicates an assignment eligibility failure
	// (role or project membership).
	ErrNotEligible = errors.New("not eligible")
	// ErrInvalidState indicates a precondition on completion flags is unmet.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict indicates a concurrent modification race was lost.
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument indicates malformed operation input.
	ErrInvalidArgument = errors.New("invalid argument")
)
