// internal/models/user.go
package models

import (
	"time"
)

// User is an account holder. Student ids are 8 digits, teacher ids are 7
// digits; the administrator uses the reserved literal id "admin".
//
// The password is stored and compared in plaintext, matching the behavior of
// the deployed system. It is never serialized into API responses.
type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:64"`
	Name     string   `json:"name" gorm:"size:100;not null"`
	Password string   `json:"-" gorm:"size:255;not null"`
	Role     UserRole `json:"userType" gorm:"column:user_type;type:varchar(20);not null"`
	Joined   time.Time `json:"joined"`
	Avatar   *string  `json:"avatar,omitempty" gorm:"size:500"`

	// Relationships
	Artworks []Artwork `json:"-" gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
}

func (u *User) CheckPassword(password string) bool {
	return u.Password == password
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
