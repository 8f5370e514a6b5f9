package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/handlers"
)

func init() { Register(registerUniversities) }

func registerUniversities(r chi.Router, d deps.Deps) {
	r.Get("/api/universities", handlers.ListUniversities(d))
	r.Get("/api/universities/{id}", handlers.GetUniversity(d))
}
