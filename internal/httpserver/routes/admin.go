package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/handlers"
	"github.com/scholarpath/scholarpath/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	admin := r.With(
		mw.AllowOnlyCIDRS(d.AdminCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RequireRole(domain.RoleAdmin),
	)

	admin.Post("/api/admin/scholarships", handlers.CreateScholarship(d))
	admin.Patch("/api/admin/scholarships/{id}", handlers.UpdateScholarship(d))
	admin.Post("/api/admin/reload", handlers.Reload(d))
	admin.Get("/api/stats", handlers.Stats(d))
}
