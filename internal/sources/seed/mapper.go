package seed

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/scholarpath/scholarpath/internal/domain"
)

// SourceSeed marks records that came from the seed file.
const SourceSeed = "seed"

// Mapper converts raw seed entries to domain records.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapScholarships converts seed scholarships to domain records.
// Entries must carry an ID so records stay stable across reloads.
func (m *Mapper) MapScholarships(props []ScholarshipProps) ([]*domain.Scholarship, error) {
	out := make([]*domain.Scholarship, 0, len(props))
	for _, p := range props {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("%w: seed scholarship needs id and name", domain.ErrValidation)
		}
		if p.Budget < 0 {
			return nil, fmt.Errorf("%w: scholarship %s has negative budget", domain.ErrValidation, p.ID)
		}

		rec := &domain.Scholarship{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Country:      p.Country,
			Budget:       p.Budget,
			Major:        p.Major,
			URL:          p.URL,
			Organization: p.Organization,
			Sources:      []string{SourceSeed},
		}
		if p.Deadline != "" {
			t, err := domain.ParseDate(p.Deadline)
			if err != nil {
				return nil, fmt.Errorf("%w: scholarship %s has bad deadline %q", domain.ErrValidation, p.ID, p.Deadline)
			}
			rec.Deadline = t
		}
		out = append(out, rec)
	}
	return out, nil
}

// MapUniversities converts seed universities to domain records.
func (m *Mapper) MapUniversities(props []UniversityProps) ([]*domain.University, error) {
	out := make([]*domain.University, 0, len(props))
	for _, p := range props {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("%w: seed university needs id and name", domain.ErrValidation)
		}
		out = append(out, &domain.University{
			ID:       p.ID,
			Name:     p.Name,
			Country:  p.Country,
			Programs: append([]string(nil), p.Programs...),
			URL:      p.URL,
			LogoURL:  p.LogoURL,
			Sources:  []string{SourceSeed},
		})
	}
	return out, nil
}

// MapUsers converts seed accounts to domain users. Plain passwords are
// hashed here so the stored table only ever holds bcrypt hashes.
func (m *Mapper) MapUsers(props []UserProps) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(props))
	for _, p := range props {
		if p.ID == "" || p.Email == "" {
			return nil, fmt.Errorf("%w: seed user needs id and email", domain.ErrValidation)
		}

		role := domain.Role(p.Role)
		if p.Role == "" {
			role = domain.RoleStudent
		}
		if !role.Valid() {
			return nil, fmt.Errorf("%w: seed user %s has unknown role %q", domain.ErrValidation, p.ID, p.Role)
		}

		var hash []byte
		switch {
		case p.PasswordHash != "":
			hash = []byte(p.PasswordHash)
		case p.Password != "":
			h, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash seed password for %s: %w", p.ID, err)
			}
			hash = h
		}

		out = append(out, &domain.User{
			ID:           p.ID,
			Email:        p.Email,
			Role:         role,
			PasswordHash: hash,
		})
	}
	return out, nil
}
