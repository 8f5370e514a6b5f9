package domain

import "time"

// University is a read-only directory entry. Universities only enter the
// system through the seed file; there is no create/update path.
type University struct {
	// ID is the canonical unique identifier, assigned by the store.
	ID string `json:"id"`

	Name    string `json:"name"`
	Country string `json:"country"`

	// Programs is the ordered list of offered programs.
	// Order follows the seed file.
	Programs []string `json:"programs"`

	URL     string `json:"url"`
	LogoURL string `json:"logo_url"`

	// Sources indicates where this record was discovered from.
	Sources []string `json:"sources,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
