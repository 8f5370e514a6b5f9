package seed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/scholarpath/scholarpath/internal/domain"
)

const sampleSeed = `
scholarships:
  - id: s1
    name: Global Academic Excellence Scholarship
    description: Full tuition scholarship.
    country: USA
    budget: 50000
    major: Any
    deadline: "2024-12-31"
    organization: Global Scholars Foundation
  - id: s2
    name: European Union STEM Grant
    country: Germany
    budget: 15000
    major: Engineering

universities:
  - id: u1
    name: Harvard University
    country: USA
    programs: [Computer Science, Law]

users:
  - id: "1"
    email: student@example.com
    password: password
  - id: "2"
    email: admin@example.com
    password: password
    role: admin
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(writeSeedFile(t, sampleSeed))

	file, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Scholarships) != 2 {
		t.Errorf("Load() scholarships = %d, want 2", len(file.Scholarships))
	}
	if len(file.Universities) != 1 {
		t.Errorf("Load() universities = %d, want 1", len(file.Universities))
	}
	if len(file.Users) != 2 {
		t.Errorf("Load() users = %d, want 2", len(file.Users))
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := loader.Load(); err == nil {
		t.Error("Load() expected an error for a missing file")
	}
}

func TestLoaderMalformedYAML(t *testing.T) {
	loader := NewLoader(writeSeedFile(t, "scholarships: [unclosed"))
	if _, err := loader.Load(); err == nil {
		t.Error("Load() expected an error for malformed YAML")
	}
}

func TestMapScholarships(t *testing.T) {
	mapper := NewMapper()

	recs, err := mapper.MapScholarships([]ScholarshipProps{
		{ID: "s1", Name: "Grant", Country: "USA", Budget: 1000, Deadline: "2025-01-15"},
	})
	if err != nil {
		t.Fatalf("MapScholarships() error = %v", err)
	}
	if recs[0].ID != "s1" {
		t.Errorf("ID = %q, want s1", recs[0].ID)
	}
	if recs[0].Deadline.IsZero() {
		t.Error("deadline was not parsed")
	}
	if len(recs[0].Sources) != 1 || recs[0].Sources[0] != SourceSeed {
		t.Errorf("Sources = %v, want [%s]", recs[0].Sources, SourceSeed)
	}
}

func TestMapScholarshipsRejectsBadEntries(t *testing.T) {
	mapper := NewMapper()

	tests := []struct {
		name  string
		props ScholarshipProps
	}{
		{"missing id", ScholarshipProps{Name: "Grant"}},
		{"missing name", ScholarshipProps{ID: "s1"}},
		{"negative budget", ScholarshipProps{ID: "s1", Name: "Grant", Budget: -5}},
		{"bad deadline", ScholarshipProps{ID: "s1", Name: "Grant", Deadline: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapper.MapScholarships([]ScholarshipProps{tt.props})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("MapScholarships() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestMapUsers(t *testing.T) {
	mapper := NewMapper()

	users, err := mapper.MapUsers([]UserProps{
		{ID: "1", Email: "student@example.com", Password: "password"},
		{ID: "2", Email: "admin@example.com", Password: "password", Role: "admin"},
	})
	if err != nil {
		t.Fatalf("MapUsers() error = %v", err)
	}

	if users[0].Role != domain.RoleStudent {
		t.Errorf("default role = %q, want student", users[0].Role)
	}
	if users[1].Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", users[1].Role)
	}

	// Plain passwords must be hashed at load time.
	if err := bcrypt.CompareHashAndPassword(users[0].PasswordHash, []byte("password")); err != nil {
		t.Errorf("hashed password does not verify: %v", err)
	}
}

func TestMapUsersUnknownRole(t *testing.T) {
	mapper := NewMapper()

	_, err := mapper.MapUsers([]UserProps{
		{ID: "1", Email: "x@example.com", Role: "root"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("MapUsers() error = %v, want ErrValidation", err)
	}
}
