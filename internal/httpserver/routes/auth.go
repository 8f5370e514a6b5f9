package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/handlers"
	"github.com/scholarpath/scholarpath/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	// Credential endpoints are the only rate-limited surface.
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.AuthRateBurst,
		RefillPerIPPerMin: d.AuthRatePerMinute,
		MaxEntries:        10000,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	}))

	limited.Post("/api/auth/login", handlers.Login(d))
	limited.Post("/api/auth/signup", handlers.Signup(d))
	limited.Post("/api/auth/google", handlers.LoginWithGoogle(d))

	r.With(mw.RequireAuth()).Post("/api/auth/logout", handlers.Logout(d))
	r.With(mw.RequireAuth()).Get("/api/auth/me", handlers.Me(d))
}
