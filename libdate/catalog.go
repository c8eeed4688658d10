package libdate

import (
	"regexp"
	"time"
)

// Category identifies the kind of expression a catalog entry recognizes.
type Category string

const (
	SpecificYearHalfYear          Category = "specific_year_half_year"
	GeneralYearHalfYear           Category = "general_year_half_year"
	HalfYear                      Category = "half_year"
	SpecificYearMonthCompleteWeek Category = "specific_year_month_complete_week"
	GeneralYearMonthCompleteWeek  Category = "general_year_month_complete_week"
	SpecificYearCompleteWeek      Category = "specific_year_complete_week"
	GeneralYearCompleteWeek       Category = "general_year_complete_week"
	GeneralMonthCompleteWeek      Category = "general_month_complete_week"
	GeneralMonthWeek              Category = "general_month_week"
	SpecificYearMonthDay          Category = "specific_year_month_day"
	GeneralYearMonthDay           Category = "general_year_month_day"
	GeneralMonthDay               Category = "general_month_day"
	GeneralYearMonthLastDay       Category = "general_year_month_last_day"
	GeneralMonthLastDay           Category = "general_month_last_day"
	WeekDay                       Category = "week_day"
	GeneralWeekSpecificDay        Category = "general_week_specific_day"
	SpecificYearQuarter           Category = "specific_year_quarter"
	GeneralYearQuarter            Category = "general_year_quarter"
	GeneralQuarter                Category = "general_quarter"
	GeneralWeek                   Category = "general_week"
	SpecificYearWeek              Category = "specific_year_week"
	GeneralYearWeek               Category = "general_year_week"
	SpecificYearMonthWeek         Category = "specific_year_month_week"
	GeneralYearMonthWeek          Category = "general_year_month_week"
	SpecificYearMonthLastWeek     Category = "specific_year_month_last_week"
	GeneralMonthLastWeek          Category = "general_month_last_week"
	GeneralMonthLastCompleteWeek  Category = "general_month_last_complete_week"
	RecentNYear                   Category = "recent_n_year"
	RecentNMonth                  Category = "recent_n_month"
	RecentNWeek                   Category = "recent_n_week"
	RecentNDayWithoutToday        Category = "recent_n_day_without_today"
	RecentNDay                    Category = "recent_n_day"
	RecentNCompleteYear           Category = "recent_n_complete_year"
	RecentNCompleteQuarter        Category = "recent_n_complete_quarter"
	RecentNCompleteMonth          Category = "recent_n_complete_month"
	RecentNCompleteWeek           Category = "recent_n_complete_week"
	RecentNQuarterWithCurrent     Category = "recent_n_quarter_with_current"
	SpecificYearMonth             Category = "specific_year_month"
	GeneralYearMonth              Category = "general_year_month"
	GeneralDay                    Category = "general_day"
	GeneralMonth                  Category = "general_month"
	SpecificYear                  Category = "specific_year"
	GeneralYear                   Category = "general_year"
)

// resolveFunc turns a match into its literal. Returning ErrNoCompletePeriod
// marks a deliberately empty value; any other error is a failed resolution.
type resolveFunc func(anchor time.Time, m Match) (string, error)

type rule struct {
	category Category
	pattern  *regexp.Regexp
	resolve  resolveFunc
}

// newRule anchors expr at the start of the input: a rule matches a prefix of
// the expression and need not consume all of it.
func newRule(category Category, expr string, resolve resolveFunc) rule {
	return rule{
		category: category,
		pattern:  regexp.MustCompile("^" + expr),
		resolve:  resolve,
	}
}

// defaultCatalog is the ordered rule table. Order is precedence: longer or more
// specific forms come before any form that matches a prefix of them.
var defaultCatalog = []rule{
	newRule(SpecificYearHalfYear, `(\d{4})年(上|下)半年`, resolveSpecificYearHalfYear),
	newRule(GeneralYearHalfYear, `(今年|去年)(上|下)半年`, resolveGeneralYearHalfYear),
	newRule(HalfYear, `(上|下)半年`, resolveHalfYear),
	newRule(SpecificYearMonthCompleteWeek, `(\d{4})年(\d{2})月第(\d)个完整周`, resolveSpecificYearMonthCompleteWeek),
	newRule(GeneralYearMonthCompleteWeek, `(今年|去年|前年)(\d{2})月第(\d)个完整周`, resolveGeneralYearMonthCompleteWeek),
	newRule(SpecificYearCompleteWeek, `(\d{4})年第(\d{2})个完整周`, resolveSpecificYearCompleteWeek),
	newRule(GeneralYearCompleteWeek, `(今年|去年|前年)第(\d{2})个完整周`, resolveGeneralYearCompleteWeek),
	newRule(GeneralMonthCompleteWeek, `(本月|上月)第(\d)个完整周`, resolveGeneralMonthCompleteWeek),
	newRule(GeneralMonthWeek, `(本月|上月)第(\d)周`, resolveGeneralMonthWeek),
	newRule(SpecificYearMonthDay, `\d{4}年\d{2}月\d{2}日`, resolveIdentity),
	newRule(GeneralYearMonthDay, `(今年|去年|前年|明年|后年)(\d{2}月\d{2}日)`, resolveGeneralYearSuffix),
	newRule(GeneralMonthDay, `(本月|上月|上上月|下月)(\d{2}日)`, resolveGeneralMonthDay),
	newRule(GeneralYearMonthLastDay, `(今年)(\d{2})月最后一天`, resolveGeneralYearMonthLastDay),
	newRule(GeneralMonthLastDay, `(本月|上月)最后一天`, resolveGeneralMonthLastDay),
	newRule(WeekDay, `本周第(\d)天`, resolveWeekDay),
	newRule(GeneralWeekSpecificDay, `(本周|上周|上上周|下周|下下周)星期(\d)`, resolveGeneralWeekSpecificDay),
	newRule(SpecificYearQuarter, `\d{4}年第\d季度`, resolveIdentity),
	newRule(GeneralYearQuarter, `(今年|去年|前年|明年|后年)(第\d季度)`, resolveGeneralYearSuffix),
	newRule(GeneralQuarter, `(本季度|上季度|下季度|去年本季度)`, resolveGeneralQuarter),
	newRule(GeneralWeek, `(本周|上周|上上周|下周|下下周)`, resolveGeneralWeek),
	newRule(SpecificYearWeek, `(\d{4})年第(\d{2})周`, resolveSpecificYearWeek),
	newRule(GeneralYearWeek, `(今年|去年|前年)第(\d{2})周`, resolveGeneralYearWeek),
	newRule(SpecificYearMonthWeek, `(\d{4})年(\d{2})月第(\d)周`, resolveSpecificYearMonthWeek),
	newRule(GeneralYearMonthWeek, `(今年|去年|前年)(\d{2})月第(\d)周`, resolveGeneralYearMonthWeek),
	newRule(SpecificYearMonthLastWeek, `(\d{4})年(\d{2})月最后一周`, resolveSpecificYearMonthLastWeek),
	newRule(GeneralMonthLastWeek, `(本月|上月|上上月)最后一周`, resolveGeneralMonthLastWeek),
	newRule(RecentNYear, `近(\d+)年`, resolveRecentNYear),
	newRule(RecentNMonth, `近(\d+)个月`, resolveRecentNMonth),
	newRule(RecentNWeek, `近(\d+)周`, resolveRecentNWeek),
	newRule(RecentNDayWithoutToday, `不包含今天的近(\d+)天`, resolveRecentNDayWithoutToday),
	newRule(RecentNDay, `近(\d+)天`, resolveRecentNDay),
	newRule(RecentNCompleteYear, `近(\d+)个完整年`, resolveRecentNCompleteYear),
	newRule(RecentNCompleteQuarter, `近(\d+)个完整季度`, resolveRecentNCompleteQuarter),
	newRule(RecentNCompleteMonth, `近(\d+)个完整月`, resolveRecentNCompleteMonth),
	newRule(RecentNCompleteWeek, `近(\d+)个完整周`, resolveRecentNCompleteWeek),
	newRule(RecentNQuarterWithCurrent, `包含当前季度的近(\d+)个季度`, resolveRecentNQuarterWithCurrent),
	newRule(SpecificYearMonth, `\d{4}年\d{2}月`, resolveIdentity),
	newRule(GeneralYearMonth, `(今年|去年|前年|明年|后年)(\d{2}月)`, resolveGeneralYearSuffix),
	newRule(GeneralDay, `(今天|昨天|前天|明天|后天|上月今天|上上月今天)`, resolveGeneralDay),
	newRule(GeneralMonth, `(本月|上月|上上月|下月|去年本月)`, resolveGeneralMonth),
	newRule(SpecificYear, `(\d{4})年`, resolveSpecificYear),
	newRule(GeneralYear, `(今年|去年|前年|明年|后年)`, resolveGeneralYear),
}

// lastCompleteWeekRule is disabled by default. When enabled it sits right after
// GeneralMonthLastWeek, ahead of GeneralMonth which would otherwise take the
// "本月"/"上月" prefix.
var lastCompleteWeekRule = newRule(GeneralMonthLastCompleteWeek, `(本月|上月|上上月)最后一个完整周`, resolveGeneralMonthLastCompleteWeek)

// extendedCatalog is defaultCatalog with lastCompleteWeekRule inserted.
var extendedCatalog = withRuleAfter(defaultCatalog, GeneralMonthLastWeek, lastCompleteWeekRule)

func withRuleAfter(rules []rule, after Category, r rule) []rule {
	out := make([]rule, 0, len(rules)+1)
	for _, existing := range rules {
		out = append(out, existing)
		if existing.category == after {
			out = append(out, r)
		}
	}
	return out
}

func categoriesOf(rules []rule) []Category {
	out := make([]Category, len(rules))
	for i, r := range rules {
		out[i] = r.category
	}
	return out
}

// Categories returns the default catalog's categories in precedence order.
func Categories() []Category {
	return categoriesOf(defaultCatalog)
}
