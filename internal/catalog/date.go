package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateError reports a value that does not carry a valid YYYY-MM-DD date.
type DateError struct {
	Value  string
	Reason string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Value, e.Reason)
}

// ParseDate extracts the date portion of a timestamp such as
// "2026-10-14T08:30:00Z" or a bare "2026-10-14".
func ParseDate(value string) (Date, error) {
	datePart, _, _ := strings.Cut(value, "T")
	fields := strings.Split(datePart, "-")
	if len(fields) != 3 {
		return Date{}, &DateError{Value: value, Reason: "want three dash-separated fields"}
	}

	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Date{}, &DateError{Value: value, Reason: fmt.Sprintf("field %q is not an integer", f)}
		}
		nums[i] = n
	}

	d := Date{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if d.Year < 1 || d.Year > 9999 {
		return Date{}, &DateError{Value: value, Reason: "year out of range"}
	}
	// time.Date normalises overflow, so a mismatch means the date does not exist.
	t := d.time()
	if t.Year() != d.Year || t.Month() != d.Month || t.Day() != d.Day {
		return Date{}, &DateError{Value: value, Reason: "no such calendar date"}
	}
	return d, nil
}

// Today returns the local calendar date of now.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.time().Before(other.time())
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d == Date{} }

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
