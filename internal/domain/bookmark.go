package domain

import "time"

// EntityKind tags which ID space a bookmark target lives in.
// The two spaces are never conflated: ("x", scholarship) and
// ("x", university) are distinct targets.
type EntityKind string

const (
	KindScholarship EntityKind = "scholarship"
	KindUniversity  EntityKind = "university"
)

// Valid reports whether k is one of the known entity kinds.
func (k EntityKind) Valid() bool {
	return k == KindScholarship || k == KindUniversity
}

// Bookmark is a user's saved reference to one entity.
//
// Invariant: for a given (UserID, EntityID, EntityKind) at most one live
// bookmark exists. Removal is a hard delete.
type Bookmark struct {
	// ID is the canonical unique identifier, assigned at creation.
	ID string `json:"id"`

	UserID     string     `json:"user_id"`
	EntityID   string     `json:"entity_id"`
	EntityKind EntityKind `json:"entity_kind"`

	CreatedAt time.Time `json:"created_at"`
}

// Key returns the uniqueness key for the at-most-one invariant.
func (b *Bookmark) Key() BookmarkKey {
	return BookmarkKey{UserID: b.UserID, EntityID: b.EntityID, EntityKind: b.EntityKind}
}

// BookmarkKey identifies a (user, entity, kind) triple.
type BookmarkKey struct {
	UserID     string
	EntityID   string
	EntityKind EntityKind
}
