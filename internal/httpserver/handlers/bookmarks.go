package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/mw"
	"github.com/scholarpath/scholarpath/internal/logger"
)

type createBookmarkRequest struct {
	EntityID   string            `json:"entity_id"`
	EntityKind domain.EntityKind `json:"entity_kind"`
}

// ListBookmarks returns the session user's bookmarks, oldest first.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.SessionUser(r)

		items, err := d.Bookmarks.ListByUser(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listResponse[*domain.Bookmark]{Items: items, Count: len(items)})
	}
}

// CreateBookmark saves an entity for the session user. Bookmarking the same
// entity twice is a conflict, not a second bookmark.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.SessionUser(r)

		var req createBookmarkRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		b, err := d.Bookmarks.Add(r.Context(), user.ID, req.EntityID, req.EntityKind)
		if err != nil {
			writeError(w, err)
			return
		}

		d.Logger.Debug("bookmark created",
			logger.String("user_id", user.ID),
			logger.String("entity_id", b.EntityID),
			logger.String("kind", string(b.EntityKind)))

		writeJSON(w, http.StatusCreated, b)
	}
}

// DeleteBookmark removes one of the session user's bookmarks. A bookmark
// owned by someone else is indistinguishable from a missing one.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.SessionUser(r)
		id := chi.URLParam(r, "id")

		b, err := d.Bookmarks.Find(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, domain.ErrNotFound)
				return
			}
			writeError(w, err)
			return
		}
		if b.UserID != user.ID {
			writeError(w, domain.ErrNotFound)
			return
		}

		removed, err := d.Bookmarks.Remove(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !removed {
			writeError(w, domain.ErrNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
