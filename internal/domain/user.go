package domain

import "time"

// Role distinguishes regular users from catalog administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account holder.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`    // unique
	PasswordHash string    `bson:"passwordHash" json:"-"` // never exposed via JSON
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// Mirror of the active enrollment, kept for older clients. Written after the
	// enrollment transaction commits and never read for decisions.
	CurrentProgramID        string     `bson:"currentProgramId,omitempty" json:"currentProgramId,omitempty"`
	CurrentProgramStartDate *time.Time `bson:"currentProgramStartDate,omitempty" json:"currentProgramStartDate,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
