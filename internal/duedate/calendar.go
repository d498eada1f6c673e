package duedate

import "time"

// MonthDay is a recurring calendar target within any year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddCalendarDays shifts d by n plain calendar days.
func AddCalendarDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// AddWorkingDays walks n working days from d, stepping one calendar day at a
// time in the sign direction and skipping Saturdays and Sundays. The anchor
// itself is never counted; the walk starts by stepping.
func AddWorkingDays(d time.Time, n int) time.Time {
	if n == 0 {
		return d
	}
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, step)
		if !IsWeekend(d) {
			remaining--
		}
	}
	return d
}

func dateOnly(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// NextMonthDay returns the target month/day in the anchor's year when that
// date is on or after the anchor, otherwise in the following year.
func NextMonthDay(d time.Time, month time.Month, day int) time.Time {
	anchor := dateOnly(d)
	candidate := time.Date(d.Year(), month, day, 0, 0, 0, 0, d.Location())
	if candidate.Before(anchor) {
		candidate = time.Date(d.Year()+1, month, day, 0, 0, 0, 0, d.Location())
	}
	return candidate
}

// NextFromCandidates picks the earliest qualifying month/day target across the
// anchor's year and the next.
func NextFromCandidates(d time.Time, candidates []MonthDay) time.Time {
	anchor := dateOnly(d)
	var best time.Time
	for _, c := range candidates {
		for _, year := range [2]int{d.Year(), d.Year() + 1} {
			candidate := time.Date(year, c.Month, c.Day, 0, 0, 0, 0, d.Location())
			if candidate.Before(anchor) {
				continue
			}
			if best.IsZero() || candidate.Before(best) {
				best = candidate
			}
		}
	}
	return best
}

// NthWorkingDay scans forward from the 1st of the given month, counting
// non-weekend days, and returns the date when the count reaches n.
func NthWorkingDay(year int, month time.Month, n int, loc *time.Location) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	count := 0
	for {
		if !IsWeekend(d) {
			count++
			if count >= n {
				return d
			}
		}
		d = d.AddDate(0, 0, 1)
	}
}

// SecondWorkingDayOfNextMonth rolls to the month after the anchor's and
// returns its second working day.
func SecondWorkingDayOfNextMonth(d time.Time) time.Time {
	year, month := d.Year(), d.Month()
	if month == time.December {
		year++
		month = time.January
	} else {
		month++
	}
	return NthWorkingDay(year, month, 2, d.Location())
}

// SecondWorkingDayOfNextQuarter returns the second working day of the first
// month of the quarter after the anchor's, wrapping the year from Q4.
func SecondWorkingDayOfNextQuarter(d time.Time) time.Time {
	quarter := (int(d.Month()) - 1) / 3
	month := (quarter+1)*3 + 1
	year := d.Year()
	if month > 12 {
		month -= 12
		year++
	}
	return NthWorkingDay(year, time.Month(month), 2, d.Location())
}

// EndOfMonth returns the last calendar day of the anchor's month.
func EndOfMonth(d time.Time) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	return first.AddDate(0, 1, -1)
}

// NextSemiMonthly returns the next 2nd or 17th of the month on or after the
// anchor, rolling into the next month past the 17th.
func NextSemiMonthly(d time.Time) time.Time {
	anchor := dateOnly(d)
	switch {
	case anchor.Day() <= 2:
		return time.Date(anchor.Year(), anchor.Month(), 2, 0, 0, 0, 0, anchor.Location())
	case anchor.Day() <= 17:
		return time.Date(anchor.Year(), anchor.Month(), 17, 0, 0, 0, 0, anchor.Location())
	default:
		next := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location()).AddDate(0, 1, 0)
		return time.Date(next.Year(), next.Month(), 2, 0, 0, 0, 0, anchor.Location())
	}
}
