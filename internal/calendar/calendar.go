// Package calendar computes the week structure of a month for a
// configurable week start day. It is pure and side-effect free.
package calendar

import "time"

// Day is one slot in a calendar week.
type Day struct {
	Date    time.Time
	InMonth bool
}

// Week is a 7-day run aligned to the configured week start.
type Week struct {
	Start time.Time
	End   time.Time
	Days  [7]Day
	Num   int
}

// FirstInMonthDay returns the day-of-month of the first in-month slot.
func (w *Week) FirstInMonthDay() int {
	for _, d := range w.Days {
		if d.InMonth {
			return d.Date.Day()
		}
	}
	return w.Days[0].Date.Day()
}

// LastInMonthDay returns the day-of-month of the last in-month slot.
func (w *Week) LastInMonthDay() int {
	for i := len(w.Days) - 1; i >= 0; i-- {
		if w.Days[i].InMonth {
			return w.Days[i].Date.Day()
		}
	}
	return w.Days[6].Date.Day()
}

// DayHeaders returns the seven single-letter weekday headers starting
// at weekStartDay (0 = Sunday).
func DayHeaders(weekStartDay int) []string {
	all := []string{"S", "M", "T", "W", "T", "F", "S"}
	out := make([]string, 7)
	for i := 0; i < 7; i++ {
		out[i] = all[((weekStartDay+i)%7+7)%7]
	}
	return out
}

// WeeksInMonth returns the ordered weeks covering the given month.
// Each week runs 7 days from the configured start day; only weeks
// containing at least one in-month day are included, and out-of-month
// slots are flagged.
func WeeksInMonth(year int, month time.Month, weekStartDay int) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	offset := weekStartDay - int(first.Weekday())
	if offset > 0 {
		offset -= 7
	}
	cur := first.AddDate(0, 0, offset)

	var weeks []Week
	for !cur.After(last) {
		var w Week
		w.Start = cur
		w.End = cur.AddDate(0, 0, 6)
		inMonth := false
		for i := 0; i < 7; i++ {
			d := cur.AddDate(0, 0, i)
			w.Days[i] = Day{Date: d, InMonth: d.Month() == month}
			inMonth = inMonth || w.Days[i].InMonth
		}
		if inMonth {
			w.Num = len(weeks) + 1
			weeks = append(weeks, w)
		}
		cur = cur.AddDate(0, 0, 7)
	}
	return weeks
}
