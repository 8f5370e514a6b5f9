package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scholarpath/scholarpath/internal/domain"
)

// Memory is the in-memory store backing every collection. It is the
// authoritative copy at runtime; Redis persistence is layered on top and
// replayed into it at startup.
//
// Each collection keeps insertion order (scan contract) next to an ID map
// for lookups. One RWMutex guards all collections, which keeps the
// bookmark uniqueness invariant race-free under concurrent clients.
type Memory struct {
	mu sync.RWMutex

	scholarships    []*domain.Scholarship
	scholarshipByID map[string]*domain.Scholarship

	universities   []*domain.University
	universityByID map[string]*domain.University

	bookmarks     []*domain.Bookmark
	bookmarkByID  map[string]*domain.Bookmark
	bookmarkByKey map[domain.BookmarkKey]string // key -> bookmark ID

	users       []*domain.User
	userByID    map[string]*domain.User
	userByEmail map[string]*domain.User // lowercased email

	lastSeedReload time.Time
}

// NewMemory creates an empty memory store.
func NewMemory() *Memory {
	return &Memory{
		scholarshipByID: make(map[string]*domain.Scholarship),
		universityByID:  make(map[string]*domain.University),
		bookmarkByID:    make(map[string]*domain.Bookmark),
		bookmarkByKey:   make(map[domain.BookmarkKey]string),
		userByID:        make(map[string]*domain.User),
		userByEmail:     make(map[string]*domain.User),
	}
}

func newID() string { return uuid.NewString() }

// ─────────────────────────────────────────────────────────────────
// Scholarships
// ─────────────────────────────────────────────────────────────────

// InsertScholarship stores a copy of s. Assigns a fresh ID when empty.
func (m *Memory) InsertScholarship(_ context.Context, s *domain.Scholarship) (*domain.Scholarship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := cloneScholarship(s)
	if rec.ID == "" {
		rec.ID = newID()
	}
	if _, taken := m.scholarshipByID[rec.ID]; taken {
		return nil, fmt.Errorf("scholarship %s: %w", rec.ID, domain.ErrAlreadyExists)
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	m.scholarships = append(m.scholarships, rec)
	m.scholarshipByID[rec.ID] = rec
	return cloneScholarship(rec), nil
}

// UpsertScholarship inserts or overwrites by ID, keeping list position and
// CreatedAt for existing records. Used by the seed reloader and the redis
// syncer.
func (m *Memory) UpsertScholarship(_ context.Context, s *domain.Scholarship) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.ID == "" {
		return fmt.Errorf("upsert scholarship without id: %w", domain.ErrValidation)
	}
	if existing, ok := m.scholarshipByID[s.ID]; ok {
		created := existing.CreatedAt
		*existing = *cloneScholarship(s)
		if existing.CreatedAt.IsZero() {
			existing.CreatedAt = created
		}
		existing.UpdatedAt = time.Now()
		return nil
	}

	rec := cloneScholarship(s)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = rec.CreatedAt
	m.scholarships = append(m.scholarships, rec)
	m.scholarshipByID[rec.ID] = rec
	return nil
}

// UpdateScholarship applies patch to the record with the given id.
func (m *Memory) UpdateScholarship(_ context.Context, id string, patch domain.ScholarshipPatch) (*domain.Scholarship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.scholarshipByID[id]
	if !ok {
		return nil, fmt.Errorf("scholarship %s: %w", id, domain.ErrNotFound)
	}
	patch.Apply(rec)
	return cloneScholarship(rec), nil
}

// FindScholarship retrieves a scholarship by ID.
func (m *Memory) FindScholarship(_ context.Context, id string) (*domain.Scholarship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.scholarshipByID[id]
	if !ok {
		return nil, fmt.Errorf("scholarship %s: %w", id, domain.ErrNotFound)
	}
	return cloneScholarship(rec), nil
}

// ScanScholarships returns matching records in insertion order.
func (m *Memory) ScanScholarships(_ context.Context, keep func(*domain.Scholarship) bool) ([]*domain.Scholarship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Scholarship, 0, len(m.scholarships))
	for _, rec := range m.scholarships {
		if keep == nil || keep(rec) {
			out = append(out, cloneScholarship(rec))
		}
	}
	return out, nil
}

// CountScholarships returns the collection size.
func (m *Memory) CountScholarships() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scholarships)
}

// ─────────────────────────────────────────────────────────────────
// Universities
// ─────────────────────────────────────────────────────────────────

// ReplaceUniversities swaps the whole read-only collection. Incoming
// records must carry IDs (assigned by the seed mapper).
func (m *Memory) ReplaceUniversities(_ context.Context, items []*domain.University) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]*domain.University, 0, len(items))
	byID := make(map[string]*domain.University, len(items))
	now := time.Now()
	for _, u := range items {
		rec := cloneUniversity(u)
		if rec.ID == "" {
			rec.ID = newID()
		}
		if _, dup := byID[rec.ID]; dup {
			return fmt.Errorf("university %s: %w", rec.ID, domain.ErrAlreadyExists)
		}
		if prev, ok := m.universityByID[rec.ID]; ok && rec.CreatedAt.IsZero() {
			rec.CreatedAt = prev.CreatedAt
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		next = append(next, rec)
		byID[rec.ID] = rec
	}

	m.universities = next
	m.universityByID = byID
	return nil
}

// FindUniversity retrieves a university by ID.
func (m *Memory) FindUniversity(_ context.Context, id string) (*domain.University, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.universityByID[id]
	if !ok {
		return nil, fmt.Errorf("university %s: %w", id, domain.ErrNotFound)
	}
	return cloneUniversity(rec), nil
}

// ScanUniversities returns matching records in seed order.
func (m *Memory) ScanUniversities(_ context.Context, keep func(*domain.University) bool) ([]*domain.University, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.University, 0, len(m.universities))
	for _, rec := range m.universities {
		if keep == nil || keep(rec) {
			out = append(out, cloneUniversity(rec))
		}
	}
	return out, nil
}

// CountUniversities returns the collection size.
func (m *Memory) CountUniversities() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.universities)
}

// ─────────────────────────────────────────────────────────────────
// Bookmarks
// ─────────────────────────────────────────────────────────────────

// InsertBookmark stores a copy of b. Enforces at most one live bookmark
// per (user, entity, kind).
func (m *Memory) InsertBookmark(_ context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := *b
	if _, dup := m.bookmarkByKey[rec.Key()]; dup {
		return nil, fmt.Errorf("bookmark for %s/%s: %w", rec.EntityKind, rec.EntityID, domain.ErrAlreadyExists)
	}
	if rec.ID == "" {
		rec.ID = newID()
	}
	if _, taken := m.bookmarkByID[rec.ID]; taken {
		return nil, fmt.Errorf("bookmark %s: %w", rec.ID, domain.ErrAlreadyExists)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	m.bookmarks = append(m.bookmarks, &rec)
	m.bookmarkByID[rec.ID] = &rec
	m.bookmarkByKey[rec.Key()] = rec.ID
	out := rec
	return &out, nil
}

// UpsertBookmark restores a bookmark from persistence, skipping duplicates
// instead of failing. Used by the redis syncer only.
func (m *Memory) UpsertBookmark(_ context.Context, b *domain.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b.ID == "" {
		return fmt.Errorf("upsert bookmark without id: %w", domain.ErrValidation)
	}
	if _, ok := m.bookmarkByID[b.ID]; ok {
		return nil
	}
	if _, dup := m.bookmarkByKey[b.Key()]; dup {
		return nil
	}
	rec := *b
	m.bookmarks = append(m.bookmarks, &rec)
	m.bookmarkByID[rec.ID] = &rec
	m.bookmarkByKey[rec.Key()] = rec.ID
	return nil
}

// DeleteBookmark hard-deletes by id. Returns false when id is unknown.
func (m *Memory) DeleteBookmark(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.bookmarkByID[id]
	if !ok {
		return false, nil
	}
	delete(m.bookmarkByID, id)
	delete(m.bookmarkByKey, rec.Key())
	for i, b := range m.bookmarks {
		if b.ID == id {
			m.bookmarks = append(m.bookmarks[:i], m.bookmarks[i+1:]...)
			break
		}
	}
	return true, nil
}

// FindBookmark retrieves a bookmark by ID.
func (m *Memory) FindBookmark(_ context.Context, id string) (*domain.Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.bookmarkByID[id]
	if !ok {
		return nil, fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}
	out := *rec
	return &out, nil
}

// BookmarksByUser returns the user's bookmarks in creation order.
func (m *Memory) BookmarksByUser(_ context.Context, userID string) ([]*domain.Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Bookmark, 0)
	for _, rec := range m.bookmarks {
		if rec.UserID == userID {
			b := *rec
			out = append(out, &b)
		}
	}
	return out, nil
}

// ScanBookmarks returns matching bookmarks in creation order.
func (m *Memory) ScanBookmarks(_ context.Context, keep func(*domain.Bookmark) bool) ([]*domain.Bookmark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Bookmark, 0, len(m.bookmarks))
	for _, rec := range m.bookmarks {
		if keep == nil || keep(rec) {
			b := *rec
			out = append(out, &b)
		}
	}
	return out, nil
}

// CountBookmarks returns the collection size.
func (m *Memory) CountBookmarks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookmarks)
}

// ─────────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────────

// InsertUser stores a copy of u. Emails are unique, case-insensitive.
func (m *Memory) InsertUser(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := normalizeEmail(u.Email)
	if _, taken := m.userByEmail[email]; taken {
		return nil, fmt.Errorf("user %s: %w", u.Email, domain.ErrAlreadyExists)
	}
	rec := cloneUser(u)
	if rec.ID == "" {
		rec.ID = newID()
	}
	if _, taken := m.userByID[rec.ID]; taken {
		return nil, fmt.Errorf("user %s: %w", rec.ID, domain.ErrAlreadyExists)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	m.users = append(m.users, rec)
	m.userByID[rec.ID] = rec
	m.userByEmail[email] = rec
	return cloneUser(rec), nil
}

// UpsertUser inserts or overwrites by ID. Used by the seed reloader (seed
// accounts) and the redis syncer (signed-up accounts).
func (m *Memory) UpsertUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.ID == "" {
		return fmt.Errorf("upsert user without id: %w", domain.ErrValidation)
	}
	email := normalizeEmail(u.Email)
	if existing, ok := m.userByID[u.ID]; ok {
		delete(m.userByEmail, normalizeEmail(existing.Email))
		created := existing.CreatedAt
		*existing = *cloneUser(u)
		if existing.CreatedAt.IsZero() {
			existing.CreatedAt = created
		}
		m.userByEmail[email] = existing
		return nil
	}
	if other, taken := m.userByEmail[email]; taken && other.ID != u.ID {
		return fmt.Errorf("user %s: %w", u.Email, domain.ErrAlreadyExists)
	}

	rec := cloneUser(u)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.users = append(m.users, rec)
	m.userByID[rec.ID] = rec
	m.userByEmail[email] = rec
	return nil
}

// FindUser retrieves a user by ID.
func (m *Memory) FindUser(_ context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.userByID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return cloneUser(rec), nil
}

// FindUserByEmail retrieves a user by email, case-insensitive.
func (m *Memory) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.userByEmail[normalizeEmail(email)]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return cloneUser(rec), nil
}

// CountUsers returns the table size.
func (m *Memory) CountUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// ─────────────────────────────────────────────────────────────────
// Reload bookkeeping
// ─────────────────────────────────────────────────────────────────

// SetSeedReloadTime records when the seed file was last applied.
func (m *Memory) SetSeedReloadTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSeedReload = t
}

// SeedReloadTime returns the timestamp of the last seed reload.
func (m *Memory) SeedReloadTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSeedReload
}

// ─────────────────────────────────────────────────────────────────
// Clone helpers: the store owns its records, callers get copies.
// ─────────────────────────────────────────────────────────────────

func cloneScholarship(s *domain.Scholarship) *domain.Scholarship {
	out := *s
	out.Sources = append([]string(nil), s.Sources...)
	return &out
}

func cloneUniversity(u *domain.University) *domain.University {
	out := *u
	out.Programs = append([]string(nil), u.Programs...)
	out.Sources = append([]string(nil), u.Sources...)
	return &out
}

func cloneUser(u *domain.User) *domain.User {
	out := *u
	out.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
