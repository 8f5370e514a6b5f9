package store

import (
	"context"

	"github.com/scholarpath/scholarpath/internal/domain"
)

// Store contracts. Handlers and managers depend on these interfaces so a
// real persistence backend can be substituted without touching callers.
// The in-memory index in this package is the authoritative implementation;
// the redis subpackage is a write-through persister layered on top.

// ScholarshipStore owns the scholarship collection.
type ScholarshipStore interface {
	// InsertScholarship stores s and returns the stored copy. A fresh
	// unique ID is assigned when s.ID is empty; a pre-set ID that is
	// already taken fails with ErrAlreadyExists.
	InsertScholarship(ctx context.Context, s *domain.Scholarship) (*domain.Scholarship, error)

	// UpdateScholarship applies the set fields of patch. ErrNotFound on
	// unknown id.
	UpdateScholarship(ctx context.Context, id string, patch domain.ScholarshipPatch) (*domain.Scholarship, error)

	FindScholarship(ctx context.Context, id string) (*domain.Scholarship, error)

	// ScanScholarships returns records matching keep, in insertion order.
	// A nil keep matches everything.
	ScanScholarships(ctx context.Context, keep func(*domain.Scholarship) bool) ([]*domain.Scholarship, error)
}

// UniversityStore owns the university collection. Universities are
// read-only: the whole collection is replaced on seed reload.
type UniversityStore interface {
	ReplaceUniversities(ctx context.Context, items []*domain.University) error
	FindUniversity(ctx context.Context, id string) (*domain.University, error)
	ScanUniversities(ctx context.Context, keep func(*domain.University) bool) ([]*domain.University, error)
}

// BookmarkStore owns the bookmark collection and its uniqueness index.
type BookmarkStore interface {
	// InsertBookmark stores b, assigning an ID when empty. Fails with
	// ErrAlreadyExists when a live bookmark with the same
	// (user, entity, kind) key exists.
	InsertBookmark(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error)

	// DeleteBookmark hard-deletes by id. Returns false when id is unknown.
	DeleteBookmark(ctx context.Context, id string) (bool, error)

	FindBookmark(ctx context.Context, id string) (*domain.Bookmark, error)

	// BookmarksByUser returns the user's bookmarks in creation order.
	BookmarksByUser(ctx context.Context, userID string) ([]*domain.Bookmark, error)
}

// UserStore owns the account table.
type UserStore interface {
	// InsertUser stores u, assigning an ID when empty. Fails with
	// ErrAlreadyExists when the email is taken.
	InsertUser(ctx context.Context, u *domain.User) (*domain.User, error)

	FindUser(ctx context.Context, id string) (*domain.User, error)

	// FindUserByEmail fails with ErrNotFound on unknown email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
