// internal/models/common.go
package models

// Enums
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTeacher UserRole = "teacher"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleStudent, UserRoleTeacher, UserRoleAdmin:
		return true
	}
	return false
}

// CanCurate reports whether the role may create and own exhibitions.
func (r UserRole) CanCurate() bool {
	return r == UserRoleTeacher || r == UserRoleAdmin
}

type ExhibitionStatus string

const (
	ExhibitionStatusDraft    ExhibitionStatus = "draft"
	ExhibitionStatusActive   ExhibitionStatus = "active"
	ExhibitionStatusArchived ExhibitionStatus = "archived"
)

func (s ExhibitionStatus) Valid() bool {
	switch s {
	case ExhibitionStatusDraft, ExhibitionStatusActive, ExhibitionStatusArchived:
		return true
	}
	return false
}
