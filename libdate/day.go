package libdate

import (
	"fmt"
	"time"
)

// resolveIdentity passes fully specified literals through unchanged.
func resolveIdentity(_ time.Time, m Match) (string, error) {
	return m.Expression, nil
}

func yearOf(anchor time.Time, token string) (int, error) {
	term, ok := ParseYearTerm(token)
	if !ok {
		return 0, fmt.Errorf("unknown year term %q", token)
	}
	return anchor.Year() + term.Offset(), nil
}

func monthTerm(token string) (MonthTerm, error) {
	term, ok := ParseMonthTerm(token)
	if !ok {
		return 0, fmt.Errorf("unknown month term %q", token)
	}
	return term, nil
}

// monthOf resolves a month term with calendar-month arithmetic.
func monthOf(anchor time.Time, token string) (int, time.Month, error) {
	term, err := monthTerm(token)
	if err != nil {
		return 0, 0, err
	}
	y, m := shiftMonth(anchor.Year(), anchor.Month(), term.Offset())
	return y, m, nil
}

func resolveGeneralYear(anchor time.Time, m Match) (string, error) {
	y, err := yearOf(anchor, m.Tokens[0])
	if err != nil {
		return "", err
	}
	return yearLiteral(y), nil
}

func resolveSpecificYear(_ time.Time, m Match) (string, error) {
	y, err := count(m.Tokens[0])
	if err != nil {
		return "", err
	}
	return yearLiteral(y), nil
}

// resolveGeneralYearSuffix resolves the year term and keeps the rest of the
// captured literal ("02月29日", "02月", "第1季度") as written.
func resolveGeneralYearSuffix(anchor time.Time, m Match) (string, error) {
	y, err := yearOf(anchor, m.Tokens[0])
	if err != nil {
		return "", err
	}
	return yearLiteral(y) + m.Tokens[1], nil
}

// monthLiteral renders a bare month term as "YYYY年MM月". Relative months are
// located by stepping thirty days per month of offset from the anchor and
// taking the month that lands in, not by calendar-month arithmetic; near month
// ends this can land one month off (2024-03-31 minus 30 days is still March).
func monthLiteral(anchor time.Time, term MonthTerm) (string, error) {
	var t time.Time
	switch term {
	case ThisMonth:
		t = anchor
	case LastYearThisMonth:
		t = civil(anchor.Year()-1, anchor.Month(), 1)
	default:
		t = anchor.AddDate(0, 0, term.approxDays())
	}
	return formatMonth(t)
}

func resolveGeneralMonth(anchor time.Time, m Match) (string, error) {
	term, err := monthTerm(m.Tokens[0])
	if err != nil {
		return "", err
	}
	return monthLiteral(anchor, term)
}

func resolveGeneralMonthDay(anchor time.Time, m Match) (string, error) {
	month, err := resolveGeneralMonth(anchor, m)
	if err != nil {
		return "", err
	}
	return month + m.Tokens[1], nil
}

func resolveGeneralDay(anchor time.Time, m Match) (string, error) {
	term, ok := ParseDayTerm(m.Tokens[0])
	if !ok {
		return "", fmt.Errorf("unknown day term %q", m.Tokens[0])
	}
	if months := term.Months(); months != 0 {
		y, mo := shiftMonth(anchor.Year(), anchor.Month(), months)
		d, err := newDate(y, int(mo), anchor.Day())
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", term, err)
		}
		return formatDay(d)
	}
	return formatDay(anchor.AddDate(0, 0, term.Days()))
}

// resolveGeneralYearMonthLastDay handles "今年02月最后一天".
func resolveGeneralYearMonthLastDay(anchor time.Time, m Match) (string, error) {
	y, err := yearOf(anchor, m.Tokens[0])
	if err != nil {
		return "", err
	}
	month, err := count(m.Tokens[1])
	if err != nil {
		return "", err
	}
	first, err := newDate(y, month, 1)
	if err != nil {
		return "", err
	}
	return formatDay(lastOfMonth(first))
}

func resolveGeneralMonthLastDay(anchor time.Time, m Match) (string, error) {
	y, mo, err := monthOf(anchor, m.Tokens[0])
	if err != nil {
		return "", err
	}
	return formatDay(civil(y, mo+1, 0))
}
