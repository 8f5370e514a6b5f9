package domain

import "strings"

// Filter engine: pure functions over entity slices. Every set filter field
// must hold (logical AND); results keep the input order. No input is
// mutated and no error path exists: an empty collection yields an empty
// result.

// FilterScholarships returns the subsequence of items matching f.
func FilterScholarships(items []*Scholarship, f SearchFilters) []*Scholarship {
	out := make([]*Scholarship, 0, len(items))
	for _, s := range items {
		if MatchScholarship(s, f) {
			out = append(out, s)
		}
	}
	return out
}

// FilterUniversities returns the subsequence of items matching f.
// Budget and deadline do not apply to universities.
func FilterUniversities(items []*University, f SearchFilters) []*University {
	out := make([]*University, 0, len(items))
	for _, u := range items {
		if MatchUniversity(u, f) {
			out = append(out, u)
		}
	}
	return out
}

// MatchScholarship reports whether s satisfies every set field of f.
func MatchScholarship(s *Scholarship, f SearchFilters) bool {
	if f.Query != "" &&
		!containsFold(s.Name, f.Query) &&
		!containsFold(s.Description, f.Query) {
		return false
	}
	if f.Country != "" && s.Country != f.Country {
		return false
	}
	if f.Budget != 0 && s.Budget < f.Budget {
		return false
	}
	if f.Major != "" && s.Major != majorAny && !containsFold(s.Major, f.Major) {
		return false
	}
	if !f.Deadline.IsZero() && s.Deadline.Before(f.Deadline) {
		return false
	}
	return true
}

// MatchUniversity reports whether u satisfies every set field of f.
func MatchUniversity(u *University, f SearchFilters) bool {
	if f.Query != "" && !containsFold(u.Name, f.Query) && !anyProgramContains(u.Programs, f.Query) {
		return false
	}
	if f.Country != "" && u.Country != f.Country {
		return false
	}
	if f.Major != "" && !anyProgramContains(u.Programs, f.Major) {
		return false
	}
	return true
}

func anyProgramContains(programs []string, needle string) bool {
	for _, p := range programs {
		if containsFold(p, needle) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
