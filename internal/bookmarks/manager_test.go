package bookmarks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Memory) {
	t.Helper()

	m := store.NewMemory()
	ctx := context.Background()

	_, err := m.InsertScholarship(ctx, &domain.Scholarship{ID: "s1", Name: "Grant"})
	require.NoError(t, err)
	require.NoError(t, m.ReplaceUniversities(ctx, []*domain.University{
		{ID: "u1", Name: "Campus"},
	}))

	log := logger.New("error", false)
	return NewManager(m, m, m, nil, log), m
}

func TestAdd(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	b, err := mgr.Add(ctx, "user-1", "s1", domain.KindScholarship)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "user-1", b.UserID)
	assert.Equal(t, domain.KindScholarship, b.EntityKind)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestAddDuplicate(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.Add(ctx, "user-1", "s1", domain.KindScholarship)
	require.NoError(t, err)

	_, err = mgr.Add(ctx, "user-1", "s1", domain.KindScholarship)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Another user bookmarking the same entity is fine.
	_, err = mgr.Add(ctx, "user-2", "s1", domain.KindScholarship)
	assert.NoError(t, err)
}

func TestAddUnknownKind(t *testing.T) {
	mgr, _ := newTestManager(t)

	_, err := mgr.Add(context.Background(), "user-1", "s1", domain.EntityKind("course"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddMissingEntity(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.Add(ctx, "user-1", "nope", domain.KindScholarship)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = mgr.Add(ctx, "user-1", "nope", domain.KindUniversity)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	b, err := mgr.Add(ctx, "user-1", "s1", domain.KindScholarship)
	require.NoError(t, err)

	removed, err := mgr.Remove(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = mgr.Remove(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second removal of the same ID should be a no-op")
}

func TestRemoveUnknownID(t *testing.T) {
	mgr, _ := newTestManager(t)

	removed, err := mgr.Remove(context.Background(), "no-such-bookmark")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRemoveThenReAdd(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	b, err := mgr.Add(ctx, "user-1", "s1", domain.KindScholarship)
	require.NoError(t, err)

	removed, err := mgr.Remove(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, removed)

	// The uniqueness slot is freed by removal.
	b2, err := mgr.Add(ctx, "user-1", "s1", domain.KindScholarship)
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, b2.ID, "re-added bookmark should get a fresh ID")
}

func TestListByUser(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.Add(ctx, "user-1", "s1", domain.KindScholarship)
	require.NoError(t, err)
	_, err = mgr.Add(ctx, "user-1", "u1", domain.KindUniversity)
	require.NoError(t, err)
	_, err = mgr.Add(ctx, "user-2", "u1", domain.KindUniversity)
	require.NoError(t, err)

	got, err := mgr.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].EntityID)
	assert.Equal(t, "u1", got[1].EntityID)

	empty, err := mgr.ListByUser(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
