package libdate

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	dayLayout   = "2006年01月02日"
	monthLayout = "2006年01月"

	// Years outside this range have no four-digit literal form.
	minYear = 1
	maxYear = 9999

	// Upper bound on any count captured from an expression (week number, N of
	// "recent N"). Larger counts always leave the representable calendar.
	maxCount = 4_000_000
)

// ErrNoCompletePeriod reports that a matched expression names a period that
// does not exist, e.g. a complete week that would run past the end of its month.
var ErrNoCompletePeriod = errors.New("no complete period")

// Anchor truncates t to its calendar date, expressed as midnight UTC.
// All resolver arithmetic runs on anchored values so that day steps never
// cross a DST transition.
func Anchor(t time.Time) time.Time {
	y, m, d := t.Date()
	return civil(y, m, d)
}

func civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// newDate builds a date without normalization: fields that time.Date would
// silently roll over (month 13, Feb 30) are reported as errors.
func newDate(year, month, day int) (time.Time, error) {
	if year < minYear || year > maxYear {
		return time.Time{}, fmt.Errorf("year %d out of range", year)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if n := daysIn(year, time.Month(month)); day < 1 || day > n {
		return time.Time{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	return civil(year, time.Month(month), day), nil
}

func daysIn(year int, month time.Month) int {
	return civil(year, month+1, 0).Day()
}

func lastOfMonth(t time.Time) time.Time {
	return civil(t.Year(), t.Month()+1, 0)
}

// shiftMonth moves a year/month pair by delta calendar months.
func shiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := civil(year, month+time.Month(delta), 1)
	return t.Year(), t.Month()
}

// addMonthsClamped shifts t by whole calendar months, clamping the day to the
// length of the target month (Mar 31 minus one month is Feb 29 in 2024).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m := shiftMonth(t.Year(), t.Month(), months)
	d := t.Day()
	if n := daysIn(y, m); d > n {
		d = n
	}
	return civil(y, m, d)
}

// isoWeekday numbers weekdays from Monday=0 to Sunday=6.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func mondayOf(t time.Time) time.Time {
	return t.AddDate(0, 0, -isoWeekday(t))
}

func quarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// quarterEnd returns the closing day of quarter q. q=0 is the last quarter of
// the previous year.
func quarterEnd(year, q int) time.Time {
	return civil(year, time.Month(3*q)+1, 0)
}

func isQuarterEnd(t time.Time) bool {
	return t.Equal(quarterEnd(t.Year(), quarterOf(t.Month())))
}

func checkYear(t time.Time) error {
	if y := t.Year(); y < minYear || y > maxYear {
		return fmt.Errorf("year %d out of range", y)
	}
	return nil
}

func formatDay(t time.Time) (string, error) {
	if err := checkYear(t); err != nil {
		return "", err
	}
	return t.Format(dayLayout), nil
}

func formatMonth(t time.Time) (string, error) {
	if err := checkYear(t); err != nil {
		return "", err
	}
	return t.Format(monthLayout), nil
}

// formatSpan renders "<start>至<end>". A span whose start falls after its end
// cannot contain anything and yields ErrNoCompletePeriod.
func formatSpan(start, end time.Time) (string, error) {
	if start.After(end) {
		return "", ErrNoCompletePeriod
	}
	s, err := formatDay(start)
	if err != nil {
		return "", err
	}
	e, err := formatDay(end)
	if err != nil {
		return "", err
	}
	return s + "至" + e, nil
}

func yearLiteral(year int) string {
	return strconv.Itoa(year) + "年"
}

func quarterLiteral(year, quarter int) string {
	return fmt.Sprintf("%d年第%d季度", year, quarter)
}

// count parses a captured digit run.
func count(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", token, err)
	}
	if n > maxCount {
		return 0, fmt.Errorf("number %d too large", n)
	}
	return n, nil
}
