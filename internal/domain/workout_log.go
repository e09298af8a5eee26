package domain

import "time"

// CalendarDateLayout is the layout of a CalendarDate.
const CalendarDateLayout = "2006-01-02"

// CalendarDate is the date portion of a timestamp, e.g. "2024-01-01".
type CalendarDate string

// CalendarDateOf returns the calendar date of t in loc (t's own location when loc is nil).
func CalendarDateOf(t time.Time, loc *time.Location) CalendarDate {
	if loc != nil {
		t = t.In(loc)
	}
	return CalendarDate(t.Format(CalendarDateLayout))
}

func (d CalendarDate) String() string {
	return string(d)
}

// WorkoutLogEntry records one completed workout session of a program day.
// A user logs at most one entry per program and calendar day.
type WorkoutLogEntry struct {
	ID              string       `bson:"_id" json:"id"`
	UserID          string       `bson:"userId" json:"userId"`
	ProgramID       string       `bson:"programId" json:"programId"`
	DayNumber       int          `bson:"dayNumber" json:"dayNumber"`
	CompletedAt     time.Time    `bson:"completedAt" json:"completedAt"`
	CompletedDate   CalendarDate `bson:"completedDate" json:"completedDate"`
	DurationMinutes *int         `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Notes           *string      `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updatedAt" json:"updatedAt"`
}
