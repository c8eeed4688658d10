package libdate

import (
	"fmt"
	"time"
)

func resolveGeneralQuarter(anchor time.Time, m Match) (string, error) {
	term, ok := ParseQuarterTerm(m.Tokens[0])
	if !ok {
		return "", fmt.Errorf("unknown quarter term %q", m.Tokens[0])
	}
	// Quarters are numbered consecutively across years so that an offset can
	// carry into the neighbouring year.
	idx := anchor.Year()*4 + quarterOf(anchor.Month()) - 1 + term.Offset()
	return quarterLiteral(idx/4, idx%4+1), nil
}

func halfSpan(year int, token string) (string, error) {
	half, ok := ParseHalfTerm(token)
	if !ok {
		return "", fmt.Errorf("unknown half-year %q", token)
	}
	p, err := yearPeriod(year)
	if err != nil {
		return "", err
	}
	if half == UpperHalf {
		return formatSpan(p.first, civil(year, time.June, 30))
	}
	return formatSpan(civil(year, time.July, 1), p.last)
}

func resolveSpecificYearHalfYear(_ time.Time, m Match) (string, error) {
	y, err := count(m.Tokens[0])
	if err != nil {
		return "", err
	}
	return halfSpan(y, m.Tokens[1])
}

func resolveGeneralYearHalfYear(anchor time.Time, m Match) (string, error) {
	y, err := yearOf(anchor, m.Tokens[0])
	if err != nil {
		return "", err
	}
	return halfSpan(y, m.Tokens[1])
}

// resolveHalfYear handles a bare "上半年"/"下半年" within the anchor's year.
func resolveHalfYear(anchor time.Time, m Match) (string, error) {
	return halfSpan(anchor.Year(), m.Tokens[0])
}
