package domain

import "time"

// WeekSchedule maps a weekday name (Sunday..Saturday) to the staff
// member's working ranges for that day, each formatted
// "h:mm A - h:mm A" (e.g. "9:00 AM - 5:00 PM").
// A nil (or absent) entry means the day is not a working day.
type WeekSchedule map[string][]string

// WeekdayNames in calendar order, week starting on Sunday.
// These are the exact keys used on the wire.
var WeekdayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// WeekdayName returns the wire key for a weekday
func WeekdayName(d time.Weekday) string {
	return WeekdayNames[int(d)]
}

// IsWorkingDay returns true if the schedule has ranges for the weekday
func (s WeekSchedule) IsWorkingDay(d time.Weekday) bool {
	ranges, ok := s[WeekdayName(d)]
	return ok && len(ranges) > 0
}

// TimeInterval is a resolved time span anchored to concrete calendar
// dates. Derived from schedule strings or appointments, never persisted
// as-is.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports strict interval intersection: touching endpoints do
// not count as an overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains reports half-open containment of the candidate: the
// candidate's start must fall in [i.Start, i.End) and its end in
// (i.Start, i.End].
func (i TimeInterval) Contains(candidate TimeInterval) bool {
	startInside := !candidate.Start.Before(i.Start) && candidate.Start.Before(i.End)
	endInside := candidate.End.After(i.Start) && !candidate.End.After(i.End)
	return startInside && endInside
}

// IsValid reports whether the interval has positive length
func (i TimeInterval) IsValid() bool {
	return i.Start.Before(i.End)
}

// DurationMinutes returns the interval length in whole minutes
func (i TimeInterval) DurationMinutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}
