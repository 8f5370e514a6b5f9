package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// majorAny is the scholarship major value that matches every major filter.
const majorAny = "Any"

// SearchFilters is a transient query object. Zero values mean "unset":
// an unset field always matches. Filters are never persisted.
type SearchFilters struct {
	// Query is matched case-insensitively as a substring against name and
	// description (scholarships) or name and any program (universities).
	Query string

	// Country is matched exactly.
	Country string

	// Major matches scholarships whose major is "Any" or contains it
	// (case-insensitive); for universities it is matched against programs.
	Major string

	// Budget keeps scholarships whose budget is >= this value.
	// Zero means unset (mirrors the empty form field).
	Budget float64

	// Deadline keeps scholarships whose deadline is on or after this date.
	// Calendar comparison, not string comparison.
	Deadline time.Time
}

// IsZero reports whether no filter field is set.
func (f SearchFilters) IsZero() bool {
	return f.Query == "" && f.Country == "" && f.Major == "" &&
		f.Budget == 0 && f.Deadline.IsZero()
}

// Validate rejects malformed filter input early. The filter engine itself
// stays permissive; this is the boundary check.
func (f SearchFilters) Validate() error {
	if f.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrValidation)
	}
	return nil
}

// ParseFiltersValues builds SearchFilters from raw form values, as they
// arrive in a query string. Empty strings stay unset.
func ParseFiltersValues(query, country, major, budget, deadline string) (SearchFilters, error) {
	f := SearchFilters{
		Query:   strings.TrimSpace(query),
		Country: strings.TrimSpace(country),
		Major:   strings.TrimSpace(major),
	}

	if b := strings.TrimSpace(budget); b != "" {
		v, err := strconv.ParseFloat(b, 64)
		if err != nil {
			return SearchFilters{}, fmt.Errorf("%w: budget %q is not a number", ErrValidation, b)
		}
		f.Budget = v
	}

	if d := strings.TrimSpace(deadline); d != "" {
		t, err := ParseDate(d)
		if err != nil {
			return SearchFilters{}, fmt.Errorf("%w: deadline %q is not a date", ErrValidation, d)
		}
		f.Deadline = t
	}

	if err := f.Validate(); err != nil {
		return SearchFilters{}, err
	}
	return f, nil
}

// ParseDate accepts a calendar date ("2006-01-02") or a full RFC 3339
// timestamp, normalized to midnight UTC for deadline comparisons.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
