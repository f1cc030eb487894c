package calc

import "time"

// AgeResult is an exact calendar age.
type AgeResult struct {
	Years       int   `json:"years"`
	Months      int   `json:"months"`
	Days        int   `json:"days"`
	TotalMonths int   `json:"total_months"`
	TotalDays   int64 `json:"total_days"`
}

// AgeDelta computes the calendar difference between a birth date and a
// reference date using the borrow algorithm: a negative day component borrows
// the length of the month preceding the reference date (clamping birth days
// past that month's end), a negative month component borrows twelve months
// from the years.
func AgeDelta(dob, target time.Time) (AgeResult, error) {
	dob = truncateToDay(dob)
	target = truncateToDay(target)
	if dob.After(target) {
		return AgeResult{}, ErrInvertedDates
	}

	years := target.Year() - dob.Year()
	months := int(target.Month()) - int(dob.Month())
	days := target.Day() - dob.Day()

	if days < 0 {
		months--
		// Borrow the month preceding the reference date. A birth day past
		// that month's end clamps to it, so the day component stays >= 0.
		borrowed := daysInPreviousMonth(target)
		anchor := dob.Day()
		if anchor > borrowed {
			anchor = borrowed
		}
		days = target.Day() + borrowed - anchor
	}
	if months < 0 {
		years--
		months += 12
	}

	return AgeResult{
		Years:       years,
		Months:      months,
		Days:        days,
		TotalMonths: years*12 + months,
		TotalDays:   int64(target.Sub(dob).Hours() / 24),
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysInPreviousMonth returns the length of the month before t's month.
// Day 0 of the current month normalizes to the last day of the previous one.
func daysInPreviousMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
}
