package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/handlers"
	"github.com/scholarpath/scholarpath/internal/httpserver/mw"
)

func init() { Register(registerSummary, mw.RequireAuth()) }

func registerSummary(r chi.Router, d deps.Deps) {
	r.Post("/api/summary", handlers.Summarize(d))
}
