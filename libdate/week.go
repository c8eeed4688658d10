package libdate

import (
	"fmt"
	"time"
)

func weekTerm(token string) (WeekTerm, error) {
	term, ok := ParseWeekTerm(token)
	if !ok {
		return 0, fmt.Errorf("unknown week term %q", token)
	}
	return term, nil
}

// resolveWeekDay handles "本周第N天": Monday of the anchor's week is day 1.
func resolveWeekDay(anchor time.Time, m Match) (string, error) {
	n, err := count(m.Tokens[0])
	if err != nil {
		return "", err
	}
	return formatDay(mondayOf(anchor).AddDate(0, 0, n-1))
}

// resolveGeneralWeekSpecificDay handles "上周星期3".
func resolveGeneralWeekSpecificDay(anchor time.Time, m Match) (string, error) {
	term, err := weekTerm(m.Tokens[0])
	if err != nil {
		return "", err
	}
	n, err := count(m.Tokens[1])
	if err != nil {
		return "", err
	}
	return formatDay(mondayOf(anchor).AddDate(0, 0, 7*term.Offset()+n-1))
}

func resolveGeneralWeek(anchor time.Time, m Match) (string, error) {
	term, err := weekTerm(m.Tokens[0])
	if err != nil {
		return "", err
	}
	monday := mondayOf(anchor).AddDate(0, 0, 7*term.Offset())
	return formatSpan(monday, monday.AddDate(0, 0, 6))
}

// period is a closed run of days such as a month or a year.
type period struct {
	first, last time.Time
}

func yearPeriod(year int) (period, error) {
	first, err := newDate(year, 1, 1)
	if err != nil {
		return period{}, err
	}
	return period{first: first, last: civil(year, 12, 31)}, nil
}

func monthPeriod(year, month int) (period, error) {
	first, err := newDate(year, month, 1)
	if err != nil {
		return period{}, err
	}
	return period{first: first, last: lastOfMonth(first)}, nil
}

// week returns week n counted in 7-day blocks from the period's first day.
// The final block is cut off at the period's last day.
func (p period) week(n int) (string, error) {
	start := p.first.AddDate(0, 0, 7*(n-1))
	end := start.AddDate(0, 0, 6)
	if end.After(p.last) {
		end = p.last
	}
	return formatSpan(start, end)
}

// completeWeek returns Monday-Sunday week n, counted from the first Monday on
// or after the period's first day. A week that would end after the period's
// last day does not exist.
func (p period) completeWeek(n int) (string, error) {
	firstMonday := p.first.AddDate(0, 0, (7-isoWeekday(p.first))%7)
	start := firstMonday.AddDate(0, 0, 7*(n-1))
	end := start.AddDate(0, 0, 6)
	if end.After(p.last) {
		return "", ErrNoCompletePeriod
	}
	return formatSpan(start, end)
}

// lastWeek runs from the last Monday of the period through its last day.
func (p period) lastWeek() (string, error) {
	return formatSpan(mondayOf(p.last), p.last)
}

// lastCompleteWeek is the Monday-Sunday week ending on the period's last Sunday.
func (p period) lastCompleteWeek() (string, error) {
	sunday := p.last.AddDate(0, 0, -((isoWeekday(p.last) + 1) % 7))
	return formatSpan(sunday.AddDate(0, 0, -6), sunday)
}

func specificYearPeriod(m Match) (period, error) {
	y, err := count(m.Tokens[0])
	if err != nil {
		return period{}, err
	}
	return yearPeriod(y)
}

func generalYearPeriod(anchor time.Time, m Match) (period, error) {
	y, err := yearOf(anchor, m.Tokens[0])
	if err != nil {
		return period{}, err
	}
	return yearPeriod(y)
}

func specificYearMonthPeriod(m Match) (period, error) {
	y, err := count(m.Tokens[0])
	if err != nil {
		return period{}, err
	}
	mo, err := count(m.Tokens[1])
	if err != nil {
		return period{}, err
	}
	return monthPeriod(y, mo)
}

func generalYearMonthPeriod(anchor time.Time, m Match) (period, error) {
	y, err := yearOf(anchor, m.Tokens[0])
	if err != nil {
		return period{}, err
	}
	mo, err := count(m.Tokens[1])
	if err != nil {
		return period{}, err
	}
	return monthPeriod(y, mo)
}

func generalMonthPeriod(anchor time.Time, m Match) (period, error) {
	y, mo, err := monthOf(anchor, m.Tokens[0])
	if err != nil {
		return period{}, err
	}
	return monthPeriod(y, int(mo))
}

// weekIn resolves a period from the match and applies fn to the week number
// captured at index i.
func weekIn(p period, err error, m Match, i int, fn func(period, int) (string, error)) (string, error) {
	if err != nil {
		return "", err
	}
	n, err := count(m.Tokens[i])
	if err != nil {
		return "", err
	}
	return fn(p, n)
}

func resolveSpecificYearWeek(_ time.Time, m Match) (string, error) {
	p, err := specificYearPeriod(m)
	return weekIn(p, err, m, 1, period.week)
}

func resolveGeneralYearWeek(anchor time.Time, m Match) (string, error) {
	p, err := generalYearPeriod(anchor, m)
	return weekIn(p, err, m, 1, period.week)
}

func resolveSpecificYearMonthWeek(_ time.Time, m Match) (string, error) {
	p, err := specificYearMonthPeriod(m)
	return weekIn(p, err, m, 2, period.week)
}

func resolveGeneralYearMonthWeek(anchor time.Time, m Match) (string, error) {
	p, err := generalYearMonthPeriod(anchor, m)
	return weekIn(p, err, m, 2, period.week)
}

func resolveGeneralMonthWeek(anchor time.Time, m Match) (string, error) {
	p, err := generalMonthPeriod(anchor, m)
	return weekIn(p, err, m, 1, period.week)
}

func resolveSpecificYearCompleteWeek(_ time.Time, m Match) (string, error) {
	p, err := specificYearPeriod(m)
	return weekIn(p, err, m, 1, period.completeWeek)
}

func resolveGeneralYearCompleteWeek(anchor time.Time, m Match) (string, error) {
	p, err := generalYearPeriod(anchor, m)
	return weekIn(p, err, m, 1, period.completeWeek)
}

func resolveSpecificYearMonthCompleteWeek(_ time.Time, m Match) (string, error) {
	p, err := specificYearMonthPeriod(m)
	return weekIn(p, err, m, 2, period.completeWeek)
}

func resolveGeneralYearMonthCompleteWeek(anchor time.Time, m Match) (string, error) {
	p, err := generalYearMonthPeriod(anchor, m)
	return weekIn(p, err, m, 2, period.completeWeek)
}

func resolveGeneralMonthCompleteWeek(anchor time.Time, m Match) (string, error) {
	p, err := generalMonthPeriod(anchor, m)
	return weekIn(p, err, m, 1, period.completeWeek)
}

func resolveSpecificYearMonthLastWeek(_ time.Time, m Match) (string, error) {
	p, err := specificYearMonthPeriod(m)
	if err != nil {
		return "", err
	}
	return p.lastWeek()
}

func resolveGeneralMonthLastWeek(anchor time.Time, m Match) (string, error) {
	p, err := generalMonthPeriod(anchor, m)
	if err != nil {
		return "", err
	}
	return p.lastWeek()
}

func resolveGeneralMonthLastCompleteWeek(anchor time.Time, m Match) (string, error) {
	p, err := generalMonthPeriod(anchor, m)
	if err != nil {
		return "", err
	}
	return p.lastCompleteWeek()
}
