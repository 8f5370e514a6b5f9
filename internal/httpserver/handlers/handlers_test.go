package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/bookmarks"
	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/httpserver/mw"
	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/store"
)

func testDeps(t *testing.T) (deps.Deps, *store.Memory) {
	t.Helper()

	log := logger.New("error", false)
	memory := store.NewMemory()
	ctx := context.Background()

	seed := []*domain.Scholarship{
		{ID: "s1", Name: "Global Excellence", Description: "Full tuition.", Country: "USA", Budget: 50000, Major: "Any"},
		{ID: "s2", Name: "STEM Grant", Description: "For engineers.", Country: "Germany", Budget: 15000, Major: "Engineering"},
	}
	for _, rec := range seed {
		if _, err := memory.InsertScholarship(ctx, rec); err != nil {
			t.Fatalf("InsertScholarship() error = %v", err)
		}
	}
	if err := memory.ReplaceUniversities(ctx, []*domain.University{
		{ID: "u1", Name: "Harvard University", Country: "USA", Programs: []string{"Computer Science", "Law"}},
	}); err != nil {
		t.Fatalf("ReplaceUniversities() error = %v", err)
	}

	d := deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		TimeNow:         time.Now,
		Memory:          memory,
		Bookmarks:       bookmarks.NewManager(memory, memory, memory, nil, log),
		SummaryTimeout:  time.Second,
		SummaryCacheTTL: time.Hour,
	}
	return d, memory
}

func TestListScholarships(t *testing.T) {
	d, _ := testDeps(t)
	handler := ListScholarships(d)

	tests := []struct {
		name      string
		target    string
		wantCode  int
		wantCount int
	}{
		{"no filters", "/api/scholarships", http.StatusOK, 2},
		{"country filter", "/api/scholarships?country=USA", http.StatusOK, 1},
		{"budget floor", "/api/scholarships?budget=20000", http.StatusOK, 1},
		{"major includes Any", "/api/scholarships?major=Engineering", http.StatusOK, 2},
		{"query substring", "/api/scholarships?q=stem", http.StatusOK, 1},
		{"no matches", "/api/scholarships?country=France", http.StatusOK, 0},
		{"bad budget", "/api/scholarships?budget=lots", http.StatusBadRequest, 0},
		{"negative budget", "/api/scholarships?budget=-5", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp listResponse[*domain.Scholarship]
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", resp.Count, tt.wantCount)
			}
		})
	}
}

func TestGetScholarship(t *testing.T) {
	d, _ := testDeps(t)

	r := chi.NewRouter()
	r.Get("/api/scholarships/{id}", GetScholarship(d))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scholarships/s1", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scholarships/ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown ID status = %d, want 404", rec.Code)
	}
}

func TestCreateBookmarkHandler(t *testing.T) {
	d, _ := testDeps(t)
	handler := CreateBookmark(d)
	user := &domain.User{ID: "user-1", Role: domain.RoleStudent}

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/bookmarks", strings.NewReader(body))
		req = mw.WithSessionUser(req, user)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := post(`{"entity_id":"s1","entity_kind":"scholarship"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if rec := post(`{"entity_id":"s1","entity_kind":"scholarship"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
	if rec := post(`{"entity_id":"ghost","entity_kind":"scholarship"}`); rec.Code != http.StatusNotFound {
		t.Errorf("missing entity status = %d, want 404", rec.Code)
	}
	if rec := post(`{"entity_id":"s1","entity_kind":"course"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown kind status = %d, want 400", rec.Code)
	}
	if rec := post(`not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestDeleteBookmarkOwnership(t *testing.T) {
	d, _ := testDeps(t)
	ctx := context.Background()

	owner := &domain.User{ID: "user-1", Role: domain.RoleStudent}
	other := &domain.User{ID: "user-2", Role: domain.RoleStudent}

	b, err := d.Bookmarks.Add(ctx, owner.ID, "s1", domain.KindScholarship)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	r := chi.NewRouter()
	r.Delete("/api/bookmarks/{id}", DeleteBookmark(d))

	del := func(user *domain.User, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/bookmarks/"+id, nil)
		req = mw.WithSessionUser(req, user)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	// Someone else's bookmark looks like a missing one.
	if rec := del(other, b.ID); rec.Code != http.StatusNotFound {
		t.Errorf("foreign delete status = %d, want 404", rec.Code)
	}
	if rec := del(owner, b.ID); rec.Code != http.StatusNoContent {
		t.Errorf("owner delete status = %d, want 204", rec.Code)
	}
	if rec := del(owner, b.ID); rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want 404", rec.Code)
	}
}

type fakeSummarizer struct {
	text string
	err  error
	gotC string
	gotI string
}

func (f *fakeSummarizer) Summarize(_ context.Context, contextText, instruction string) (string, error) {
	f.gotC = contextText
	f.gotI = instruction
	return f.text, f.err
}

func TestSummarize(t *testing.T) {
	d, _ := testDeps(t)
	fake := &fakeSummarizer{text: "A generous award."}
	d.Summarizer = fake

	handler := Summarize(d)
	req := httptest.NewRequest(http.MethodPost, "/api/summary",
		strings.NewReader(`{"entity_id":"s1","entity_kind":"scholarship"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp summaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Summary != "A generous award." {
		t.Errorf("summary = %q", resp.Summary)
	}
	if resp.Cached {
		t.Error("fresh summary reported as cached")
	}
	if !strings.Contains(fake.gotC, "Global Excellence") {
		t.Errorf("context text missing entity fields: %q", fake.gotC)
	}
}

func TestSummarizeFailurePassesThrough(t *testing.T) {
	d, _ := testDeps(t)
	d.Summarizer = &fakeSummarizer{err: domain.ErrExternalService}

	handler := Summarize(d)
	req := httptest.NewRequest(http.MethodPost, "/api/summary",
		strings.NewReader(`{"entity_id":"s1","entity_kind":"scholarship"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// One attempt, no retry: the failure surfaces to the caller.
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestSummarizeDisabled(t *testing.T) {
	d, _ := testDeps(t)
	d.Summarizer = nil

	handler := Summarize(d)
	req := httptest.NewRequest(http.MethodPost, "/api/summary",
		strings.NewReader(`{"entity_id":"s1","entity_kind":"scholarship"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestCreateScholarshipHandler(t *testing.T) {
	d, memory := testDeps(t)
	handler := CreateScholarship(d)

	body := `{"name":"New Grant","country":"Canada","budget":12000,"major":"Any","deadline":"2025-06-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/scholarships", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created domain.Scholarship
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("created record has no ID")
	}
	if got := memory.CountScholarships(); got != 3 {
		t.Errorf("CountScholarships() = %d, want 3", got)
	}

	// Validation failures.
	for _, bad := range []string{
		`{"name":"","country":"Canada"}`,
		`{"name":"Broke","budget":-1}`,
		`{"name":"Broke","deadline":"soon"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/scholarships", strings.NewReader(bad))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s status = %d, want 400", bad, rec.Code)
		}
	}
}

func TestUpdateScholarshipHandler(t *testing.T) {
	d, memory := testDeps(t)

	r := chi.NewRouter()
	r.Patch("/api/admin/scholarships/{id}", UpdateScholarship(d))

	body := `{"budget":60000}`
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/scholarships/s1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	got, err := memory.FindScholarship(context.Background(), "s1")
	if err != nil {
		t.Fatalf("FindScholarship() error = %v", err)
	}
	if got.Budget != 60000 {
		t.Errorf("budget = %v, want 60000", got.Budget)
	}
	if got.Name != "Global Excellence" {
		t.Errorf("name changed to %q, patch must leave unset fields alone", got.Name)
	}

	// Unknown ID.
	req = httptest.NewRequest(http.MethodPatch, "/api/admin/scholarships/ghost", strings.NewReader(body))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown ID status = %d, want 404", rec.Code)
	}
}

func TestReloadHandler(t *testing.T) {
	d, _ := testDeps(t)
	d.ReloadTrigger = make(chan struct{}, 1)
	handler := Reload(d)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/reload", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("first trigger status = %d, want 202", rec.Code)
	}

	// Channel still full: a second trigger is refused.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/reload", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second trigger status = %d, want 429", rec.Code)
	}
}

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrAlreadyExists, http.StatusConflict},
		{domain.ErrExternalService, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeError(rec, tt.err)
		if rec.Code != tt.want {
			t.Errorf("writeError(%v) status = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}
