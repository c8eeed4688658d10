package libdate

import "fmt"

// YearTerm is a relative year token.
type YearTerm int

const (
	ThisYear       YearTerm = iota // 今年
	LastYear                       // 去年
	YearBeforeLast                 // 前年
	NextYear                       // 明年
	YearAfterNext                  // 后年
)

var yearTermNames = [...]string{
	ThisYear:       "今年",
	LastYear:       "去年",
	YearBeforeLast: "前年",
	NextYear:       "明年",
	YearAfterNext:  "后年",
}

var yearTermOffsets = [...]int{
	ThisYear:       0,
	LastYear:       -1,
	YearBeforeLast: -2,
	NextYear:       1,
	YearAfterNext:  2,
}

// Offset returns the number of years added to the anchor's year.
func (t YearTerm) Offset() int { return yearTermOffsets[t] }

func (t YearTerm) String() string { return termName(yearTermNames[:], int(t), "YearTerm") }

// ParseYearTerm looks up a year token such as "去年".
func ParseYearTerm(token string) (YearTerm, bool) {
	i, ok := lookupTerm(yearTermNames[:], token)
	return YearTerm(i), ok
}

// MonthTerm is a relative month token.
type MonthTerm int

const (
	ThisMonth         MonthTerm = iota // 本月
	LastMonth                          // 上月
	TwoMonthsAgo                       // 上上月
	NextMonth                          // 下月
	LastYearThisMonth                  // 去年本月
)

var monthTermNames = [...]string{
	ThisMonth:         "本月",
	LastMonth:         "上月",
	TwoMonthsAgo:      "上上月",
	NextMonth:         "下月",
	LastYearThisMonth: "去年本月",
}

var monthTermOffsets = [...]int{
	ThisMonth:         0,
	LastMonth:         -1,
	TwoMonthsAgo:      -2,
	NextMonth:         1,
	LastYearThisMonth: -12,
}

// Offset returns the number of calendar months added to the anchor's month.
func (t MonthTerm) Offset() int { return monthTermOffsets[t] }

// approxDays is the fixed day shift used when a bare month term is rendered as
// "YYYY年MM月": thirty days per month of offset.
func (t MonthTerm) approxDays() int { return 30 * t.Offset() }

func (t MonthTerm) String() string { return termName(monthTermNames[:], int(t), "MonthTerm") }

// ParseMonthTerm looks up a month token such as "上上月".
func ParseMonthTerm(token string) (MonthTerm, bool) {
	i, ok := lookupTerm(monthTermNames[:], token)
	return MonthTerm(i), ok
}

// DayTerm is a relative day token.
type DayTerm int

const (
	Today              DayTerm = iota // 今天
	Yesterday                         // 昨天
	DayBeforeYesterday                // 前天
	Tomorrow                          // 明天
	DayAfterTomorrow                  // 后天
	LastMonthToday                    // 上月今天
	TwoMonthsAgoToday                 // 上上月今天
)

var dayTermNames = [...]string{
	Today:              "今天",
	Yesterday:          "昨天",
	DayBeforeYesterday: "前天",
	Tomorrow:           "明天",
	DayAfterTomorrow:   "后天",
	LastMonthToday:     "上月今天",
	TwoMonthsAgoToday:  "上上月今天",
}

var dayTermOffsets = [...]struct{ days, months int }{
	Today:              {0, 0},
	Yesterday:          {-1, 0},
	DayBeforeYesterday: {-2, 0},
	Tomorrow:           {1, 0},
	DayAfterTomorrow:   {2, 0},
	LastMonthToday:     {0, -1},
	TwoMonthsAgoToday:  {0, -2},
}

// Days returns the fixed day shift of the term.
func (t DayTerm) Days() int { return dayTermOffsets[t].days }

// Months returns the calendar month shift of the term. The day of month is
// kept, so the shift fails when that day does not exist in the target month.
func (t DayTerm) Months() int { return dayTermOffsets[t].months }

func (t DayTerm) String() string { return termName(dayTermNames[:], int(t), "DayTerm") }

// ParseDayTerm looks up a day token such as "前天".
func ParseDayTerm(token string) (DayTerm, bool) {
	i, ok := lookupTerm(dayTermNames[:], token)
	return DayTerm(i), ok
}

// WeekTerm is a relative week token. Weeks start on Monday.
type WeekTerm int

const (
	ThisWeek      WeekTerm = iota // 本周
	LastWeek                      // 上周
	TwoWeeksAgo                   // 上上周
	NextWeek                      // 下周
	WeekAfterNext                 // 下下周
)

var weekTermNames = [...]string{
	ThisWeek:      "本周",
	LastWeek:      "上周",
	TwoWeeksAgo:   "上上周",
	NextWeek:      "下周",
	WeekAfterNext: "下下周",
}

var weekTermOffsets = [...]int{
	ThisWeek:      0,
	LastWeek:      -1,
	TwoWeeksAgo:   -2,
	NextWeek:      1,
	WeekAfterNext: 2,
}

// Offset returns the number of whole weeks added to the anchor's week.
func (t WeekTerm) Offset() int { return weekTermOffsets[t] }

func (t WeekTerm) String() string { return termName(weekTermNames[:], int(t), "WeekTerm") }

// ParseWeekTerm looks up a week token such as "下下周".
func ParseWeekTerm(token string) (WeekTerm, bool) {
	i, ok := lookupTerm(weekTermNames[:], token)
	return WeekTerm(i), ok
}

// QuarterTerm is a relative quarter token.
type QuarterTerm int

const (
	ThisQuarter         QuarterTerm = iota // 本季度
	LastQuarter                            // 上季度
	NextQuarter                            // 下季度
	LastYearThisQuarter                    // 去年本季度
)

var quarterTermNames = [...]string{
	ThisQuarter:         "本季度",
	LastQuarter:         "上季度",
	NextQuarter:         "下季度",
	LastYearThisQuarter: "去年本季度",
}

var quarterTermOffsets = [...]int{
	ThisQuarter:         0,
	LastQuarter:         -1,
	NextQuarter:         1,
	LastYearThisQuarter: -4,
}

// Offset returns the number of quarters added to the anchor's quarter.
func (t QuarterTerm) Offset() int { return quarterTermOffsets[t] }

func (t QuarterTerm) String() string { return termName(quarterTermNames[:], int(t), "QuarterTerm") }

// ParseQuarterTerm looks up a quarter token such as "上季度".
func ParseQuarterTerm(token string) (QuarterTerm, bool) {
	i, ok := lookupTerm(quarterTermNames[:], token)
	return QuarterTerm(i), ok
}

// HalfTerm selects one of the two fixed half-years.
type HalfTerm int

const (
	UpperHalf HalfTerm = iota // 上: Jan 1 - Jun 30
	LowerHalf                 // 下: Jul 1 - Dec 31
)

var halfTermNames = [...]string{
	UpperHalf: "上",
	LowerHalf: "下",
}

func (t HalfTerm) String() string { return termName(halfTermNames[:], int(t), "HalfTerm") }

// ParseHalfTerm looks up "上" or "下".
func ParseHalfTerm(token string) (HalfTerm, bool) {
	i, ok := lookupTerm(halfTermNames[:], token)
	return HalfTerm(i), ok
}

func lookupTerm(names []string, token string) (int, bool) {
	for i, name := range names {
		if name == token {
			return i, true
		}
	}
	return 0, false
}

func termName(names []string, i int, kind string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s(%d)", kind, i)
}
