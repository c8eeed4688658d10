package libdate

// Match is the result of dispatching one expression against the catalog.
type Match struct {
	Category   Category
	Expression string
	// Tokens holds the capture groups of the matching pattern, in order.
	Tokens []string

	resolve resolveFunc
}

// dispatch tries rules strictly in order and stops at the first hit.
func dispatch(rules []rule, expression string) (Match, bool) {
	for i := range rules {
		r := &rules[i]
		sub := r.pattern.FindStringSubmatch(expression)
		if sub == nil {
			continue
		}
		return Match{
			Category:   r.category,
			Expression: expression,
			Tokens:     sub[1:],
			resolve:    r.resolve,
		}, true
	}
	return Match{}, false
}
