package bookmarks

import (
	"context"
	"errors"
	"fmt"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/store"
)

// Persister mirrors bookmark mutations into a durable backend. Writes are
// best-effort: the in-memory store stays authoritative.
type Persister interface {
	SaveBookmark(ctx context.Context, b *domain.Bookmark) error
	DeleteBookmark(ctx context.Context, id string) error
}

// Manager owns the bookmark collection. It enforces at most one live
// bookmark per (user, entity, kind) and rejects targets that do not
// resolve to a stored entity.
type Manager struct {
	bookmarks    store.BookmarkStore
	scholarships store.ScholarshipStore
	universities store.UniversityStore
	persister    Persister // nil disables persistence
	logger       logger.Logger
}

// NewManager creates a bookmark manager.
func NewManager(
	bm store.BookmarkStore,
	sch store.ScholarshipStore,
	uni store.UniversityStore,
	persister Persister,
	log logger.Logger,
) *Manager {
	return &Manager{
		bookmarks:    bm,
		scholarships: sch,
		universities: uni,
		persister:    persister,
		logger:       log,
	}
}

// Add creates a bookmark for the given target. Fails with ErrValidation on
// an unknown kind, ErrNotFound when the target does not resolve, and
// ErrAlreadyExists when a live duplicate exists.
func (m *Manager) Add(ctx context.Context, userID, entityID string, kind domain.EntityKind) (*domain.Bookmark, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entity kind %q", domain.ErrValidation, kind)
	}

	if err := m.resolve(ctx, entityID, kind); err != nil {
		return nil, err
	}

	b, err := m.bookmarks.InsertBookmark(ctx, &domain.Bookmark{
		UserID:     userID,
		EntityID:   entityID,
		EntityKind: kind,
	})
	if err != nil {
		return nil, err
	}

	if m.persister != nil {
		if perr := m.persister.SaveBookmark(ctx, b); perr != nil {
			m.logger.Warn("failed to persist bookmark",
				logger.String("bookmark_id", b.ID),
				logger.Error(perr))
		}
	}

	m.logger.Debug("bookmark added",
		logger.String("user_id", userID),
		logger.String("entity_id", entityID),
		logger.String("kind", string(kind)))

	return b, nil
}

// Remove hard-deletes a bookmark by ID. Returns false when the ID is
// unknown; the collection is left untouched in that case.
func (m *Manager) Remove(ctx context.Context, bookmarkID string) (bool, error) {
	removed, err := m.bookmarks.DeleteBookmark(ctx, bookmarkID)
	if err != nil || !removed {
		return false, err
	}

	if m.persister != nil {
		if perr := m.persister.DeleteBookmark(ctx, bookmarkID); perr != nil {
			m.logger.Warn("failed to delete persisted bookmark",
				logger.String("bookmark_id", bookmarkID),
				logger.Error(perr))
		}
	}

	return true, nil
}

// ListByUser returns the user's bookmarks in creation order.
func (m *Manager) ListByUser(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	return m.bookmarks.BookmarksByUser(ctx, userID)
}

// Find retrieves a bookmark by ID, for ownership checks at the HTTP layer.
func (m *Manager) Find(ctx context.Context, bookmarkID string) (*domain.Bookmark, error) {
	return m.bookmarks.FindBookmark(ctx, bookmarkID)
}

func (m *Manager) resolve(ctx context.Context, entityID string, kind domain.EntityKind) error {
	var err error
	switch kind {
	case domain.KindScholarship:
		_, err = m.scholarships.FindScholarship(ctx, entityID)
	case domain.KindUniversity:
		_, err = m.universities.FindUniversity(ctx, entityID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to resolve bookmark target: %w", err)
	}
	return nil
}
