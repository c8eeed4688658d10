// Package libdate resolves Chinese temporal expressions such as "去年本季度",
// "近3个完整月" or "本月第2周" into literal dates and date ranges relative to
// an anchor date.
package libdate

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the number of expressions ResolveAll resolves at once.
const DefaultWorkers = 4

// Outcome classifies a matched expression's resolution.
type Outcome int

const (
	// Resolved means Value holds a date or range literal.
	Resolved Outcome = iota
	// Empty means the requested complete period does not exist.
	Empty
	// Failed means the calendar arithmetic failed; Err says why.
	Failed
)

var outcomeNames = [...]string{
	Resolved: "resolved",
	Empty:    "empty",
	Failed:   "failed",
}

func (o Outcome) String() string { return termName(outcomeNames[:], int(o), "Outcome") }

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Resolution is the result of resolving one matched expression.
type Resolution struct {
	Expression string
	Category   Category
	// Value is empty unless Outcome is Resolved.
	Value   string
	Outcome Outcome
	Err     error
}

// Line renders the resolution as "expression=value".
func (r Resolution) Line() string {
	return r.Expression + "=" + r.Value
}

// Engine matches expressions against the catalog and resolves them.
// An Engine is safe for concurrent use.
type Engine struct {
	rules   []rule
	logger  zerolog.Logger
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger that receives resolution diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWorkers sets the ResolveAll concurrency limit. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLastCompleteWeek enables the "本月最后一个完整周" family, which the
// default catalog does not recognize.
func WithLastCompleteWeek(enabled bool) Option {
	return func(e *Engine) {
		if enabled {
			e.rules = extendedCatalog
		} else {
			e.rules = defaultCatalog
		}
	}
}

// NewEngine creates an Engine using the default catalog.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules:   defaultCatalog,
		logger:  zerolog.New(os.Stderr).With().Timestamp().Logger(),
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Categories returns the engine's catalog categories in precedence order.
func (e *Engine) Categories() []Category {
	return categoriesOf(e.rules)
}

// Match finds the first catalog entry matching the start of expression.
func (e *Engine) Match(expression string) (Match, bool) {
	return dispatch(e.rules, expression)
}

// Resolve matches and resolves a single expression against anchor, which is
// truncated to its calendar date. It reports false when no pattern matches.
func (e *Engine) Resolve(anchor time.Time, expression string) (Resolution, bool) {
	m, ok := e.Match(expression)
	if !ok {
		return Resolution{}, false
	}
	return e.resolve(Anchor(anchor), m), true
}

func (e *Engine) resolve(anchor time.Time, m Match) Resolution {
	r := Resolution{Expression: m.Expression, Category: m.Category}
	value, err := m.resolve(anchor, m)
	switch {
	case err == nil:
		r.Value = value
	case errors.Is(err, ErrNoCompletePeriod):
		r.Outcome = Empty
	default:
		r.Outcome = Failed
		r.Err = err
		e.logger.Warn().
			Str("expression", m.Expression).
			Str("category", string(m.Category)).
			Err(err).
			Msg("resolve expression")
	}
	return r
}

// ResolveAll resolves expressions concurrently. The results follow the input
// order; expressions that match no pattern are left out. The only error is
// the context's.
func (e *Engine) ResolveAll(ctx context.Context, anchor time.Time, expressions []string) ([]Resolution, error) {
	anchor = Anchor(anchor)
	results := make([]Resolution, len(expressions))
	matched := make([]bool, len(expressions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, expr := range expressions {
		i, expr := i, expr
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, ok := e.Match(expr)
			if !ok {
				return nil
			}
			results[i] = e.resolve(anchor, m)
			matched[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for i, r := range results {
		if matched[i] {
			out = append(out, r)
		}
	}
	return out, nil
}

// Lines renders resolutions as "expression=value" lines.
func Lines(results []Resolution) []string {
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.Line()
	}
	return lines
}

// BuildDateExpressions resolves expressions against anchor and returns one
// "expression=value" line per matched expression, in input order.
func (e *Engine) BuildDateExpressions(anchor time.Time, expressions []string) []string {
	// Background never cancels, so ResolveAll cannot fail here.
	results, _ := e.ResolveAll(context.Background(), anchor, expressions)
	return Lines(results)
}
