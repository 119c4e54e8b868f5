package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ClockFormat is the wire format for a time of day (12-hour clock).
// Example: "9:00 AM", "5:30 PM".
const ClockFormat = "3:04 PM"

// RangeSeparator separates the endpoints of a time range on the wire.
const RangeSeparator = " - "

var (
	// ErrInvalidClockTime is returned when a time string cannot be parsed
	ErrInvalidClockTime = errors.New("types: invalid clock time")

	// ErrInvalidRange is returned when a range string is malformed
	ErrInvalidRange = errors.New("types: invalid time range")

	// ErrMinutesOutOfRange is returned when arithmetic leaves the day
	ErrMinutesOutOfRange = errors.New("types: minutes out of day range")
)

// ClockTime is a time of day stored as minutes since midnight.
// The zero value is 12:00 AM; use IsZero to detect an unset value
// only in contexts where midnight cannot legitimately occur.
type ClockTime struct {
	minutes int
	set     bool
}

// NewClockTime truncates a timestamp to its time-of-day component.
func NewClockTime(t time.Time) ClockTime {
	return ClockTime{minutes: t.Hour()*60 + t.Minute(), set: true}
}

// NewClockTimeFromMinutes builds a ClockTime from minutes since midnight.
func NewClockTimeFromMinutes(m int) (ClockTime, error) {
	if m < 0 || m >= 24*60 {
		return ClockTime{}, fmt.Errorf("%w: %d", ErrMinutesOutOfRange, m)
	}
	return ClockTime{minutes: m, set: true}, nil
}

// ParseClockTime parses a 12-hour clock string like "9:00 AM".
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse(ClockFormat, strings.TrimSpace(s))
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q: %v", ErrInvalidClockTime, s, err)
	}
	return NewClockTime(t), nil
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.minutes
}

// IsZero reports whether the value was never set.
func (c ClockTime) IsZero() bool {
	return !c.set
}

// IsBefore reports whether c is strictly earlier than other.
func (c ClockTime) IsBefore(other ClockTime) bool {
	return c.minutes < other.minutes
}

// IsAfter reports whether c is strictly later than other.
func (c ClockTime) IsAfter(other ClockTime) bool {
	return c.minutes > other.minutes
}

// AddMinutes returns the clock time shifted forward by m minutes.
// Crossing midnight is an error: the scheduling domain never wraps a day.
func (c ClockTime) AddMinutes(m int) (ClockTime, error) {
	return NewClockTimeFromMinutes(c.minutes + m)
}

// OnDate anchors the clock time to a concrete calendar date.
func (c ClockTime) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.minutes/60, c.minutes%60, 0, 0, date.Location())
}

// String formats the time in the 12-hour wire format, e.g. "9:00 AM".
func (c ClockTime) String() string {
	return time.Date(0, 1, 1, c.minutes/60, c.minutes%60, 0, 0, time.UTC).Format(ClockFormat)
}

// Range is a pair of clock times, start strictly before end.
type Range struct {
	Start ClockTime
	End   ClockTime
}

// ParseRange parses a wire range string like "9:00 AM - 5:00 PM".
// The separator must be exactly " - ".
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, RangeSeparator)
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("%w: %q: missing %q separator", ErrInvalidRange, s, RangeSeparator)
	}

	start, err := ParseClockTime(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: bad start: %v", ErrInvalidRange, s, err)
	}

	end, err := ParseClockTime(parts[1])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: bad end: %v", ErrInvalidRange, s, err)
	}

	if !start.IsBefore(end) {
		return Range{}, fmt.Errorf("%w: %q: start is not before end", ErrInvalidRange, s)
	}

	return Range{Start: start, End: end}, nil
}

// String reproduces the wire form, e.g. "9:00 AM - 5:00 PM".
func (r Range) String() string {
	return r.Start.String() + RangeSeparator + r.End.String()
}
