package libdate

import (
	"fmt"
	"strings"
	"time"
)

// ExpressionsPrompt introduces the resolved lines in a date-time comment.
const ExpressionsPrompt = "需要计算的时间是："

var defaultEngine = NewEngine()

// TodayHeader describes the anchor date and its quarter, e.g.
// "今天是2024年03月15日，是2024年的第1季度".
func TodayHeader(anchor time.Time) string {
	y, m, d := anchor.Date()
	return fmt.Sprintf("今天是%d年%02d月%02d日，是%d年的第%d季度", y, int(m), d, y, quarterOf(m))
}

// Quarter returns the calendar quarter (1-4) of t.
func Quarter(t time.Time) int {
	return quarterOf(t.Month())
}

// BuildDateTimeComment renders the today header, the prompt line and the
// resolved expressions, newline-joined.
func (e *Engine) BuildDateTimeComment(anchor time.Time, expressions []string) string {
	lines := append([]string{TodayHeader(anchor), ExpressionsPrompt}, e.BuildDateExpressions(anchor, expressions)...)
	return strings.Join(lines, "\n")
}

// BuildDateExpressions resolves expressions against now with the default engine.
func BuildDateExpressions(expressions []string, now time.Time) []string {
	return defaultEngine.BuildDateExpressions(now, expressions)
}

// BuildDateTimeComment builds a date-time comment anchored at the current time.
func BuildDateTimeComment(expressions []string) string {
	return defaultEngine.BuildDateTimeComment(time.Now(), expressions)
}
