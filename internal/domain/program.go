// internal/domain/program.go
package domain

import "time"

// Difficulty levels accepted for a program.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Program is a training program definition from the catalog.
type Program struct {
	ID                 string          `bson:"_id" json:"id"`
	AuthorID           string          `bson:"authorId" json:"authorId"`
	Title              string          `bson:"title" json:"title"`
	Description        string          `bson:"description,omitempty" json:"description,omitempty"`
	IsPublic           bool            `bson:"isPublic" json:"isPublic"`
	Difficulty         string          `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	TargetMuscleGroups string          `bson:"targetMuscleGroups,omitempty" json:"targetMuscleGroups,omitempty"` // comma separated
	DurationWeeks      *int            `bson:"durationWeeks,omitempty" json:"durationWeeks,omitempty"`
	ImageKey           string          `bson:"imageKey,omitempty" json:"-"`                  // object key of the cover image
	ImageURL           string          `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"` // external URL or presigned download URL
	Details            []ProgramDetail `bson:"details" json:"details"`
	CreatedAt          time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// ProgramDetail is one exercise prescribed on a program day.
type ProgramDetail struct {
	ExerciseID string `bson:"exerciseId" json:"exerciseId"`
	DayNumber  int    `bson:"dayNumber" json:"dayNumber"`
	Sets       int    `bson:"sets" json:"sets"`
	Reps       int    `bson:"reps" json:"reps"`
	RestTime   *int   `bson:"restTime,omitempty" json:"restTime,omitempty"` // seconds
	Order      int    `bson:"order" json:"order"`
	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DayCount returns the highest program day referenced by the details.
func (p *Program) DayCount() int {
	days := 0
	for _, d := range p.Details {
		if d.DayNumber > days {
			days = d.DayNumber
		}
	}
	return days
}
