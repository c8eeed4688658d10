// Package dateparse parses the anchor date given on the command line or in an
// API request.
package dateparse

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tj/go-naturaldate"
)

// layouts are tried in order before falling back to natural language.
var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006年01月02日",
	"20060102",
}

// ParseAnchor parses an anchor date which can be:
// - empty: the reference time itself
// - RFC 3339: "2024-03-15T09:00:00+08:00"
// - a date: "2024-03-15", "2024/03/15", "2024年03月15日", "20240315"
// - English natural language: "yesterday", "last friday", "3 days ago"
//
// Natural language is resolved towards the past. The result is midnight of the
// parsed day in ref's location. If ref is zero, time.Now() is used.
func ParseAnchor(s string, ref time.Time) (time.Time, error) {
	if ref.IsZero() {
		ref = time.Now()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return StartOfDay(ref), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t.In(ref.Location())), nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, ref.Location()); err == nil {
			return StartOfDay(t), nil
		}
	}

	t, err := naturaldate.Parse(s, ref, naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "could not parse anchor %q", s)
	}
	return StartOfDay(t), nil
}

// Location resolves a configured time zone name. "" and "Local" mean the
// process's local zone.
func Location(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown time zone %q", name)
	}
	return loc, nil
}

// Now returns the current time in the named zone.
func Now(zone string) (time.Time, error) {
	loc, err := Location(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// StartOfDay returns the start of day (midnight) for the given time.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
