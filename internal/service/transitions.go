package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"time"
)

// Every change to an enrollment's status goes through the functions below.
//
//	(none)    --start--> started (active)
//	(none)    --save---> saved
//	(none)    --log----> started (active)
//	saved     --start--> started (active)
//	saved     --save---> (deleted) when never started
//	saved     --save---> started when StartDate is set (isActive kept)
//	saved     --log----> started (active)
//	started   --save---> saved (isActive kept)
//	started   --done---> completed (inactive)
//	completed --start--> started (active)
//	completed --save---> saved (isActive kept)

func newEnrollment(userID, programID string, status domain.ProgramStatus, now time.Time) *domain.Enrollment {
	return &domain.Enrollment{
		UserID:            userID,
		ProgramID:         programID,
		Status:            status,
		LastInteractionAt: now,
		CreatedAt:         now,
	}
}

// markStarted makes e the user's active program. StartDate is set only once.
// The caller must deactivate the user's other enrollments first.
func markStarted(e *domain.Enrollment, now time.Time) {
	e.Status = domain.StatusStarted
	e.IsActive = true
	if e.StartDate == nil {
		start := now
		e.StartDate = &start
	}
	e.LastInteractionAt = now
}

// saveOutcome is what a save toggle does to an existing enrollment.
type saveOutcome int

const (
	saveBookmark saveOutcome = iota // status becomes saved
	saveRemove                      // the saved-only enrollment is deleted
	saveUnmark                      // a once-started enrollment drops the bookmark
)

// toggleSave applies the save toggle to an existing enrollment. IsActive and
// StartDate are left alone. Only an enrollment that was never started may be
// removed; one with a StartDate goes back to started so its progress stays.
func toggleSave(e *domain.Enrollment, now time.Time) saveOutcome {
	if e.Status == domain.StatusSaved {
		if e.StartDate == nil {
			return saveRemove
		}
		e.Status = domain.StatusStarted
		e.LastInteractionAt = now
		return saveUnmark
	}
	e.Status = domain.StatusSaved
	e.LastInteractionAt = now
	return saveBookmark
}

// recordActivity touches e after a logged workout and reports whether it
// must become the active program. Only a saved program is promoted.
func recordActivity(e *domain.Enrollment, now time.Time) (promote bool) {
	e.LastInteractionAt = now
	return e.Status == domain.StatusSaved
}

// markCompleted finishes a started program.
func markCompleted(e *domain.Enrollment, now time.Time) error {
	if e.Status != domain.StatusStarted {
		return ErrInvalidTransition
	}
	e.Status = domain.StatusCompleted
	e.IsActive = false
	e.LastInteractionAt = now
	return nil
}
