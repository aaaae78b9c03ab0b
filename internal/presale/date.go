package presale

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate reports day/month/hour/minute values that do not form a
// valid calendar date-time. Callers treat it as "no presale found" for the
// entry rather than aborting the run.
var ErrInvalidDate = errors.New("invalid calendar date")

// ResolveDate turns a partial date (day, month, hour, minute, but no year,
// as announced in feed prose) plus the entry's publication date into an
// absolute date-time in loc.
//
// Announcements only ever refer to upcoming presales, so when day/month fall
// strictly before the publication date (compared at date granularity) the
// date must belong to the following year; otherwise the publication year is
// used.
func ResolveDate(day, month, hour, minute int, anchor time.Time, loc *time.Location) (time.Time, error) {
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: day %d, month %d out of range", ErrInvalidDate, day, month)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: time %d:%02d out of range", ErrInvalidDate, hour, minute)
	}

	year := anchor.Year()
	trial := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if trial.Day() != day || trial.Month() != time.Month(month) {
		// time.Date normalized the values, so the day does not exist in
		// this month (e.g. 31.4. or 30.2.).
		return time.Time{}, fmt.Errorf("%w: %d.%d.%d does not exist", ErrInvalidDate, day, month, year)
	}

	anchorDate := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	if trial.Before(anchorDate) {
		year++
	}

	resolved := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if resolved.Day() != day || resolved.Month() != time.Month(month) {
		// 29.2. can be valid in the anchor year yet invalid after rollover.
		return time.Time{}, fmt.Errorf("%w: %d.%d.%d does not exist", ErrInvalidDate, day, month, year)
	}

	return resolved, nil
}
