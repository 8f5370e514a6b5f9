package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/handlers"
	"github.com/scholarpath/scholarpath/internal/httpserver/mw"
)

func init() { Register(registerBookmarks, mw.RequireAuth()) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/api/bookmarks", handlers.ListBookmarks(d))
	r.Post("/api/bookmarks", handlers.CreateBookmark(d))
	r.Delete("/api/bookmarks/{id}", handlers.DeleteBookmark(d))
}
