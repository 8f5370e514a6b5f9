package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/handlers"
)

func init() { Register(registerScholarships) }

func registerScholarships(r chi.Router, d deps.Deps) {
	r.Get("/api/scholarships", handlers.ListScholarships(d))
	r.Get("/api/scholarships/{id}", handlers.GetScholarship(d))
}
