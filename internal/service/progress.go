package service

import "time"

// daysPerWeek is the fixed cadence used for week numbers, whatever the
// program's real number of training days per week.
const daysPerWeek = 7

// CurrentWeek is the 1-based week a user is in after completed workouts.
func CurrentWeek(completed int64) int {
	if completed < 0 {
		completed = 0
	}
	return int(completed/daysPerWeek) + 1
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}
