package domain

import "time"

// Scholarship is the canonical record for a scholarship listing.
//
// It is NOT tied to the seed file, Redis or any other source.
// All inputs (seed, admin panel) are merged into this structure.
type Scholarship struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, assigned by the store
	// at insertion time. Never reused.
	ID string `json:"id"`

	// ─────────────────────────────
	// Listing fields (mutable via admin update)
	// ─────────────────────────────

	Name        string `json:"name"`
	Description string `json:"description"`

	// Country the scholarship applies to. Matched exactly by the
	// filter engine.
	Country string `json:"country"`

	// Budget is the award amount. Non-negative.
	Budget float64 `json:"budget"`

	// Major is the eligible field of study. The literal value "Any"
	// matches every major filter.
	Major string `json:"major"`

	// Deadline is the application deadline (calendar date, midnight UTC).
	Deadline time.Time `json:"deadline"`

	URL          string `json:"url"`
	Organization string `json:"organization"`

	// ─────────────────────────────
	// Provenance & observation
	// ─────────────────────────────

	// Sources indicates where this record was discovered from.
	// Example: seed, admin
	Sources []string `json:"sources,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScholarshipPatch carries a partial update. Nil fields are left untouched.
type ScholarshipPatch struct {
	Name         *string    `json:"name,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Country      *string    `json:"country,omitempty"`
	Budget       *float64   `json:"budget,omitempty"`
	Major        *string    `json:"major,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	URL          *string    `json:"url,omitempty"`
	Organization *string    `json:"organization,omitempty"`
}

// Apply copies the set fields of the patch onto s and bumps UpdatedAt.
func (p ScholarshipPatch) Apply(s *Scholarship) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Country != nil {
		s.Country = *p.Country
	}
	if p.Budget != nil {
		s.Budget = *p.Budget
	}
	if p.Major != nil {
		s.Major = *p.Major
	}
	if p.Deadline != nil {
		s.Deadline = *p.Deadline
	}
	if p.URL != nil {
		s.URL = *p.URL
	}
	if p.Organization != nil {
		s.Organization = *p.Organization
	}
	s.UpdatedAt = time.Now()
}
