package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/store"
)

const testSeed = `
scholarships:
  - id: s1
    name: Global Excellence
    country: USA
    budget: 50000
    major: Any
universities:
  - id: u1
    name: Harvard University
    country: USA
users:
  - id: "1"
    email: student@example.com
    password: password
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestSeedReloader_Reload(t *testing.T) {
	log := logger.New("error", false)
	memory := store.NewMemory()
	ctx := context.Background()

	sr := NewSeedReloader(writeSeed(t, testSeed), memory, nil, log, time.Hour, nil)
	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if got := memory.CountScholarships(); got != 1 {
		t.Errorf("CountScholarships() = %d, want 1", got)
	}
	if got := memory.CountUniversities(); got != 1 {
		t.Errorf("CountUniversities() = %d, want 1", got)
	}
	if got := memory.CountUsers(); got != 1 {
		t.Errorf("CountUsers() = %d, want 1", got)
	}
	if memory.SeedReloadTime().IsZero() {
		t.Error("seed reload time was not recorded")
	}

	user, err := memory.FindUserByEmail(ctx, "student@example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail() error = %v", err)
	}
	if len(user.PasswordHash) == 0 {
		t.Error("seed user has no password hash")
	}
}

func TestSeedReloader_ReloadPreservesRuntimeRecords(t *testing.T) {
	log := logger.New("error", false)
	memory := store.NewMemory()
	ctx := context.Background()

	sr := NewSeedReloader(writeSeed(t, testSeed), memory, nil, log, time.Hour, nil)
	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	// Admin creates a record between reloads.
	created, err := memory.InsertScholarship(ctx, &domain.Scholarship{Name: "Runtime Grant"})
	if err != nil {
		t.Fatalf("InsertScholarship() error = %v", err)
	}

	if err := sr.Reload(ctx); err != nil {
		t.Fatalf("second Reload() error = %v", err)
	}

	if got := memory.CountScholarships(); got != 2 {
		t.Errorf("CountScholarships() after reload = %d, want 2", got)
	}
	if _, err := memory.FindScholarship(ctx, created.ID); err != nil {
		t.Errorf("runtime-created scholarship lost on reload: %v", err)
	}

	// Seed records keep their position and identity.
	all, _ := memory.ScanScholarships(ctx, nil)
	if all[0].ID != "s1" {
		t.Errorf("first record = %s, want s1", all[0].ID)
	}
}

func TestSeedReloader_ReloadBadFile(t *testing.T) {
	log := logger.New("error", false)
	memory := store.NewMemory()

	sr := NewSeedReloader(filepath.Join(t.TempDir(), "absent.yaml"), memory, nil, log, time.Hour, nil)
	if err := sr.Reload(context.Background()); err == nil {
		t.Error("Reload() expected an error for a missing file")
	}
}
