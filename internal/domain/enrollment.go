package domain

import "time"

// ProgramStatus is the lifecycle status of a user's relationship to a program.
type ProgramStatus string

const (
	StatusStarted   ProgramStatus = "started"
	StatusSaved     ProgramStatus = "saved"
	StatusCompleted ProgramStatus = "completed"
)

// IsValid reports whether s is one of the known statuses.
func (s ProgramStatus) IsValid() bool {
	switch s {
	case StatusStarted, StatusSaved, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s ProgramStatus) String() string {
	return string(s)
}

// Enrollment links a user to one training program they have started, saved or completed.
// There is at most one Enrollment per (UserID, ProgramID) and at most one with IsActive per user.
type Enrollment struct {
	ID                string        `bson:"_id" json:"id"`
	UserID            string        `bson:"userId" json:"userId"`
	ProgramID         string        `bson:"programId" json:"programId"`
	Status            ProgramStatus `bson:"status" json:"status"`
	IsActive          bool          `bson:"isActive" json:"isActive"`
	StartDate         *time.Time    `bson:"startDate,omitempty" json:"startDate,omitempty"`
	LastInteractionAt time.Time     `bson:"lastInteractionAt" json:"lastInteractionAt"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
}
