package libdate

import (
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday.
var friday = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func quietEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithLogger(zerolog.Nop())}, opts...)...)
}

func TestResolve(t *testing.T) {
	engine := quietEngine()

	tests := []struct {
		expr     string
		category Category
		want     string
	}{
		// literals
		{"2024年02月29日", SpecificYearMonthDay, "2024年02月29日"},
		{"2024年第1季度", SpecificYearQuarter, "2024年第1季度"},
		{"2024年03月", SpecificYearMonth, "2024年03月"},

		// years
		{"2023年", SpecificYear, "2023年"},
		{"今年", GeneralYear, "2024年"},
		{"去年", GeneralYear, "2023年"},
		{"前年", GeneralYear, "2022年"},
		{"明年", GeneralYear, "2025年"},
		{"后年", GeneralYear, "2026年"},
		{"去年03月", GeneralYearMonth, "2023年03月"},
		{"明年11月", GeneralYearMonth, "2025年11月"},
		{"今年02月29日", GeneralYearMonthDay, "2024年02月29日"},
		{"去年12月31日", GeneralYearMonthDay, "2023年12月31日"},
		{"去年第2季度", GeneralYearQuarter, "2023年第2季度"},

		// months
		{"本月", GeneralMonth, "2024年03月"},
		{"上月", GeneralMonth, "2024年02月"},
		{"上上月", GeneralMonth, "2024年01月"},
		{"下月", GeneralMonth, "2024年04月"},
		{"去年本月", GeneralMonth, "2023年03月"},
		{"上月31日", GeneralMonthDay, "2024年02月31日"},
		{"下月30日", GeneralMonthDay, "2024年04月30日"},
		{"上上月05日", GeneralMonthDay, "2024年01月05日"},
		{"今年02月最后一天", GeneralYearMonthLastDay, "2024年02月29日"},
		{"本月最后一天", GeneralMonthLastDay, "2024年03月31日"},
		{"上月最后一天", GeneralMonthLastDay, "2024年02月29日"},

		// days
		{"今天", GeneralDay, "2024年03月15日"},
		{"昨天", GeneralDay, "2024年03月14日"},
		{"前天", GeneralDay, "2024年03月13日"},
		{"明天", GeneralDay, "2024年03月16日"},
		{"后天", GeneralDay, "2024年03月17日"},
		{"上月今天", GeneralDay, "2024年02月15日"},
		{"上上月今天", GeneralDay, "2024年01月15日"},

		// weeks
		{"本周", GeneralWeek, "2024年03月11日至2024年03月17日"},
		{"上周", GeneralWeek, "2024年03月04日至2024年03月10日"},
		{"下下周", GeneralWeek, "2024年03月25日至2024年03月31日"},
		{"本周第1天", WeekDay, "2024年03月11日"},
		{"本周第7天", WeekDay, "2024年03月17日"},
		{"本周星期3", GeneralWeekSpecificDay, "2024年03月13日"},
		{"上上周星期3", GeneralWeekSpecificDay, "2024年02月28日"},
		{"下周星期5", GeneralWeekSpecificDay, "2024年03月22日"},
		{"2024年第01周", SpecificYearWeek, "2024年01月01日至2024年01月07日"},
		{"今年第53周", GeneralYearWeek, "2024年12月30日至2024年12月31日"},
		{"2024年03月第2周", SpecificYearMonthWeek, "2024年03月08日至2024年03月14日"},
		{"去年02月第4周", GeneralYearMonthWeek, "2023年02月22日至2023年02月28日"},
		{"本月第2周", GeneralMonthWeek, "2024年03月08日至2024年03月14日"},
		{"上月第5周", GeneralMonthWeek, "2024年02月29日至2024年02月29日"},
		{"2024年02月最后一周", SpecificYearMonthLastWeek, "2024年02月26日至2024年02月29日"},
		{"2023年02月最后一周", SpecificYearMonthLastWeek, "2023年02月27日至2023年02月28日"},
		{"本月最后一周", GeneralMonthLastWeek, "2024年03月25日至2024年03月31日"},
		{"上上月最后一周", GeneralMonthLastWeek, "2024年01月29日至2024年01月31日"},

		// complete weeks
		{"2024年02月第3个完整周", SpecificYearMonthCompleteWeek, "2024年02月19日至2024年02月25日"},
		{"今年03月第1个完整周", GeneralYearMonthCompleteWeek, "2024年03月04日至2024年03月10日"},
		{"2024年第52个完整周", SpecificYearCompleteWeek, "2024年12月23日至2024年12月29日"},
		{"去年第01个完整周", GeneralYearCompleteWeek, "2023年01月02日至2023年01月08日"},
		{"本月第1个完整周", GeneralMonthCompleteWeek, "2024年03月04日至2024年03月10日"},

		// quarters and halves
		{"本季度", GeneralQuarter, "2024年第1季度"},
		{"上季度", GeneralQuarter, "2023年第4季度"},
		{"下季度", GeneralQuarter, "2024年第2季度"},
		{"去年本季度", GeneralQuarter, "2023年第1季度"},
		{"2023年上半年", SpecificYearHalfYear, "2023年01月01日至2023年06月30日"},
		{"去年下半年", GeneralYearHalfYear, "2023年07月01日至2023年12月31日"},
		{"下半年", HalfYear, "2024年07月01日至2024年12月31日"},

		// recent N
		{"近2年", RecentNYear, "2022年03月15日至2024年03月15日"},
		{"近3个月", RecentNMonth, "2023年12月15日至2024年03月15日"},
		{"近3周", RecentNWeek, "2024年02月23日至2024年03月15日"},
		{"近7天", RecentNDay, "2024年03月08日至2024年03月15日"},
		{"不包含今天的近3天", RecentNDayWithoutToday, "2024年03月12日至2024年03月14日"},
		{"近2个完整年", RecentNCompleteYear, "2022年01月01日至2023年12月31日"},
		{"近2个完整季度", RecentNCompleteQuarter, "2023年07月02日至2023年12月31日"},
		{"近2个完整月", RecentNCompleteMonth, "2024年01月01日至2024年02月29日"},
		{"近2个完整周", RecentNCompleteWeek, "2024年02月26日至2024年03月10日"},
		{"包含当前季度的近2个季度", RecentNQuarterWithCurrent, "2023年10月01日至2024年03月31日"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, ok := engine.Resolve(friday, tt.expr)
			require.True(t, ok)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, Resolved, got.Outcome)
			assert.NoError(t, got.Err)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestResolve_EmptyPeriods(t *testing.T) {
	engine := quietEngine()

	for _, expr := range []string{
		"2024年02月第4个完整周",
		"2024年第53个完整周",
		"上月第5个完整周",
		"去年第54周",
		"2023年02月第5周",
		"近0个完整月",
	} {
		t.Run(expr, func(t *testing.T) {
			got, ok := engine.Resolve(friday, expr)
			require.True(t, ok)
			assert.Equal(t, Empty, got.Outcome)
			assert.Empty(t, got.Value)
			assert.NoError(t, got.Err)
			assert.Equal(t, expr+"=", got.Line())
		})
	}
}

func TestResolve_Failures(t *testing.T) {
	engine := quietEngine()
	monthEnd := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		anchor time.Time
		expr   string
	}{
		{"shifted day does not exist", monthEnd, "上月今天"},
		{"month out of range", friday, "2024年13月第1周"},
		{"year zero", friday, "0000年第01周"},
		{"year past 9999", time.Date(9999, 6, 1, 0, 0, 0, 0, time.UTC), "明年第01周"},
		{"count too large", friday, "近99999999天"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := engine.Resolve(tt.anchor, tt.expr)
			require.True(t, ok)
			assert.Equal(t, Failed, got.Outcome)
			assert.Error(t, got.Err)
			assert.Empty(t, got.Value)
		})
	}
}

func TestResolve_DaySuffixKeptAsWritten(t *testing.T) {
	april := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	got, ok := quietEngine().Resolve(april, "本月31日")
	require.True(t, ok)
	assert.Equal(t, Resolved, got.Outcome)
	assert.Equal(t, "2024年04月31日", got.Value)
}

func TestResolve_NoMatch(t *testing.T) {
	engine := quietEngine()

	for _, expr := range []string{"", "hello", "三天前", "24年", "上个月", "周一"} {
		_, ok := engine.Resolve(friday, expr)
		assert.False(t, ok, expr)
	}
}

func TestResolve_ThirtyDayMonthStep(t *testing.T) {
	engine := quietEngine()
	monthEnd := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	got, ok := engine.Resolve(monthEnd, "上月")
	require.True(t, ok)
	assert.Equal(t, "2024年03月", got.Value)

	got, ok = engine.Resolve(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), "下月")
	require.True(t, ok)
	assert.Equal(t, "2024年03月", got.Value)

	// Month-end and week resolvers use calendar months.
	got, ok = engine.Resolve(monthEnd, "上月最后一天")
	require.True(t, ok)
	assert.Equal(t, "2024年02月29日", got.Value)
}

func TestResolve_QuarterWraparound(t *testing.T) {
	engine := quietEngine()

	got, ok := engine.Resolve(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "上季度")
	require.True(t, ok)
	assert.Equal(t, "2023年第4季度", got.Value)

	got, ok = engine.Resolve(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC), "下季度")
	require.True(t, ok)
	assert.Equal(t, "2025年第1季度", got.Value)
}

func TestResolve_CompleteBoundaries(t *testing.T) {
	engine := quietEngine()

	tests := []struct {
		name   string
		anchor time.Time
		expr   string
		want   string
	}{
		{"year end counts", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "近1个完整年", "2023年01月01日至2023年12月31日"},
		{"quarter end counts", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), "近1个完整季度", "2024年04月01日至2024年06月30日"},
		{"mid quarter", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), "近3个完整季度", "2023年10月02日至2024年06月30日"},
		{"one quarter back from Q4", friday, "近1个完整季度", "2023年10月02日至2023年12月31日"},
		{"clamped to a shorter month", time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC), "近2个完整季度", "2024年04月01日至2024年09月30日"},
		{"sunday counts", time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), "近1个完整周", "2024年03月11日至2024年03月17日"},
		{"monday", time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), "近1个完整周", "2024年03月11日至2024年03月17日"},
		{"months across year", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "近3个完整月", "2023年11月01日至2024年01月31日"},
		{"quarter with current in Q4", time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC), "包含当前季度的近1个季度", "2024年10月01日至2024年12月31日"},
		{"leap day minus a year", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "近1年", "2023年02月28日至2024年02月29日"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := engine.Resolve(tt.anchor, tt.expr)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestResolve_AnchorTimeOfDay(t *testing.T) {
	engine := quietEngine()
	loc := time.FixedZone("UTC+8", 8*3600)
	late := time.Date(2024, 3, 15, 23, 59, 59, 0, loc)

	got, ok := engine.Resolve(late, "明天")
	require.True(t, ok)
	assert.Equal(t, "2024年03月16日", got.Value)
}

func TestResolve_LiteralIdentity(t *testing.T) {
	engine := quietEngine()

	for d := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() < 2025; d = d.AddDate(0, 0, 1) {
		expr := d.Format(dayLayout)
		got, ok := engine.Resolve(friday, expr)
		require.True(t, ok)
		require.Equal(t, expr, got.Value)
	}
}

func TestResolve_RecentDays(t *testing.T) {
	engine := quietEngine()

	for n := 1; n <= 400; n++ {
		got, ok := engine.Resolve(friday, "近"+strconv.Itoa(n)+"天")
		require.True(t, ok)
		start := friday.AddDate(0, 0, -n).Format(dayLayout)
		require.Equal(t, start+"至2024年03月15日", got.Value)

		got, ok = engine.Resolve(friday, "不包含今天的近"+strconv.Itoa(n)+"天")
		require.True(t, ok)
		require.Equal(t, start+"至2024年03月14日", got.Value)
	}
}

func TestLastCompleteWeek(t *testing.T) {
	got, ok := quietEngine().Resolve(friday, "上月最后一个完整周")
	require.True(t, ok)
	assert.Equal(t, GeneralMonth, got.Category)
	assert.Equal(t, "2024年02月", got.Value)

	engine := quietEngine(WithLastCompleteWeek(true))

	got, ok = engine.Resolve(friday, "上月最后一个完整周")
	require.True(t, ok)
	assert.Equal(t, GeneralMonthLastCompleteWeek, got.Category)
	assert.Equal(t, "2024年02月19日至2024年02月25日", got.Value)

	// March 2024 ends on a Sunday.
	got, ok = engine.Resolve(friday, "本月最后一个完整周")
	require.True(t, ok)
	assert.Equal(t, "2024年03月25日至2024年03月31日", got.Value)
}
