package handlers

import (
	"net/http"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/mw"
	"github.com/scholarpath/scholarpath/internal/logger"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login exchanges credentials for a session token. The token is returned in
// the body and also set as a cookie so browser clients need no extra wiring.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		user, err := d.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			d.Logger.Debug("login rejected",
				logger.String("email", req.Email),
				logger.Error(err))
			writeError(w, err)
			return
		}

		issueSession(w, d, user)
	}
}

// Signup creates a student account and opens a session for it.
func Signup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		user, err := d.Auth.Signup(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		d.Logger.Info("account created",
			logger.String("user_id", user.ID))
		issueSession(w, d, user)
	}
}

// LoginWithGoogle opens a session for the configured federated profile.
func LoginWithGoogle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := d.Auth.LoginWithGoogle(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		issueSession(w, d, user)
	}
}

// Logout clears the session cookie. The token itself is stateless, so this
// is idempotent and always succeeds.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     mw.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// Me echoes the session subject. Lets the SPA restore state on reload.
func Me(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := mw.SessionUser(r)
		writeJSON(w, http.StatusOK, user)
	}
}

func issueSession(w http.ResponseWriter, d deps.Deps, user *domain.User) {
	token, err := d.Auth.TokenForUser(user)
	if err != nil {
		d.Logger.Error("failed to sign session token", logger.Error(err))
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(d.Auth.TokenTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}
