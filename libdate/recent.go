package libdate

import "time"

// recent resolves the N captured by a "近N..." rule and hands it to span,
// which returns the closed range to render.
func recent(anchor time.Time, m Match, span func(anchor time.Time, n int) (time.Time, time.Time)) (string, error) {
	n, err := count(m.Tokens[0])
	if err != nil {
		return "", err
	}
	start, end := span(anchor, n)
	return formatSpan(start, end)
}

// The rolling windows below all end on the anchor itself.

func resolveRecentNYear(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		return addMonthsClamped(a, -12*n), a
	})
}

func resolveRecentNMonth(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		return addMonthsClamped(a, -n), a
	})
}

func resolveRecentNWeek(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		return a.AddDate(0, 0, -7*n), a
	})
}

func resolveRecentNDay(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		return a.AddDate(0, 0, -n), a
	})
}

func resolveRecentNDayWithoutToday(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		return a.AddDate(0, 0, -n), a.AddDate(0, 0, -1)
	})
}

// The "complete" windows end on the last period boundary at or before the
// anchor: the anchor counts only when it closes its own period.

func resolveRecentNCompleteYear(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		end := civil(a.Year()-1, time.December, 31)
		if a.Month() == time.December && a.Day() == 31 {
			end = a
		}
		return addMonthsClamped(end, -12*n).AddDate(0, 0, 1), end
	})
}

func resolveRecentNCompleteQuarter(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		end := quarterEnd(a.Year(), quarterOf(a.Month())-1)
		if isQuarterEnd(a) {
			end = a
		}
		return addMonthsClamped(end, -3*n).AddDate(0, 0, 2), end
	})
}

func resolveRecentNCompleteMonth(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		return civil(a.Year(), a.Month()-time.Month(n), 1), civil(a.Year(), a.Month(), 0)
	})
}

func resolveRecentNCompleteWeek(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		end := a
		if wd := isoWeekday(a); wd != 6 {
			end = a.AddDate(0, 0, -(wd + 1))
		}
		return end.AddDate(0, 0, 1-7*n), end
	})
}

// resolveRecentNQuarterWithCurrent counts the anchor's own quarter as the
// last of the N, so the range ends on the current quarter's closing day.
func resolveRecentNQuarterWithCurrent(anchor time.Time, m Match) (string, error) {
	return recent(anchor, m, func(a time.Time, n int) (time.Time, time.Time) {
		end := quarterEnd(a.Year(), quarterOf(a.Month()))
		return civil(end.Year(), end.Month()+1-time.Month(3*n), 1), end
	})
}
