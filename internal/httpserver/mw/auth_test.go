package mw

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/logger"
)

func parserFor(t *testing.T, want string, user *domain.User) TokenParser {
	t.Helper()
	return func(token string) (*domain.User, error) {
		if token != want {
			return nil, errors.New("bad token")
		}
		return user, nil
	}
}

func sessionProbe() (http.Handler, *[]*domain.User) {
	var seen []*domain.User
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := SessionUser(r)
		if !ok {
			user = nil
		}
		seen = append(seen, user)
	})
	return h, &seen
}

func TestSessionFromBearerHeader(t *testing.T) {
	log := logger.New("error", false)
	subject := &domain.User{ID: "1", Role: domain.RoleStudent}

	probe, seen := sessionProbe()
	handler := Session(parserFor(t, "good-token", subject), log)(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(*seen) != 1 || (*seen)[0] == nil {
		t.Fatal("subject was not stored in the context")
	}
	if (*seen)[0].ID != "1" {
		t.Errorf("subject ID = %q, want 1", (*seen)[0].ID)
	}
}

func TestSessionFromCookie(t *testing.T) {
	log := logger.New("error", false)
	subject := &domain.User{ID: "1", Role: domain.RoleStudent}

	probe, seen := sessionProbe()
	handler := Session(parserFor(t, "cookie-token", subject), log)(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(*seen) != 1 || (*seen)[0] == nil {
		t.Fatal("subject was not stored in the context")
	}
}

func TestSessionInvalidTokenIsAnonymous(t *testing.T) {
	log := logger.New("error", false)

	probe, seen := sessionProbe()
	handler := Session(parserFor(t, "good-token", &domain.User{ID: "1"}), log)(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(*seen) != 1 {
		t.Fatal("request did not reach the handler")
	}
	if (*seen)[0] != nil {
		t.Error("forged token produced a session subject")
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Anonymous request is rejected.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	// Authenticated request passes.
	rec = httptest.NewRecorder()
	req := WithSessionUser(httptest.NewRequest(http.MethodGet, "/", nil), &domain.User{ID: "1", Role: domain.RoleStudent})
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		user     *domain.User
		wantCode int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"student", &domain.User{ID: "1", Role: domain.RoleStudent}, http.StatusForbidden},
		{"admin", &domain.User{ID: "2", Role: domain.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = WithSessionUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"well formed", "Bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"extra whitespace", "Bearer   abc123  ", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(req); got != tt.want {
				t.Errorf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
