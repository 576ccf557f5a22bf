// Package models contains domain types and constants for labelhub entities.
// For persistence, use the repository interfaces in ports/secondary.
package models

// User role constants
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleAnnotator = "annotator"
)

// User represents a registered user.
type User struct {
	ID   string
	Name string
	Role string
}

// ValidRole reports whether s is one of the known user roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleManager, RoleAnnotator:
		return true
	}
	return false
}
