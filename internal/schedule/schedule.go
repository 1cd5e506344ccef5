// Package schedule tracks the check-in/check-out selection that drives
// stay-length pricing.
package schedule

import (
	"fmt"
	"math"
	"time"
)

// Selection holds the chosen stay dates. Invariants: CheckOut is
// always after CheckIn, and Nights always matches the displayed dates
// (recomputed synchronously on every change).
type Selection struct {
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
}

// Default returns the initial selection: check-in today, check-out
// tomorrow, one night.
func Default(now time.Time) Selection {
	checkIn := day(now)
	return Selection{
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, 1),
		Nights:   1,
	}
}

// SetCheckIn moves the check-in date. If the new check-in lands on or
// after the current check-out, check-out auto-advances to the next
// day.
func (s *Selection) SetCheckIn(t time.Time) {
	s.CheckIn = day(t)
	if !s.CheckOut.After(s.CheckIn) {
		s.CheckOut = s.CheckIn.AddDate(0, 0, 1)
	}
	s.recompute()
}

// SetCheckOut moves the check-out date. Dates on or before the current
// check-in are rejected.
func (s *Selection) SetCheckOut(t time.Time) error {
	t = day(t)
	if !t.After(s.CheckIn) {
		return fmt.Errorf("check-out %s must be after check-in %s",
			t.Format("2006-01-02"), s.CheckIn.Format("2006-01-02"))
	}
	s.CheckOut = t
	s.recompute()
	return nil
}

// recompute derives nights from the current dates. A non-positive
// result leaves the previous value in place.
func (s *Selection) recompute() {
	nights := int(math.Ceil(s.CheckOut.Sub(s.CheckIn).Hours() / 24))
	if nights > 0 {
		s.Nights = nights
	}
}

// day truncates a timestamp to midnight UTC.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
