package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/logger"
)

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// ListScholarships returns scholarships matching the query-string filters,
// in insertion order. No filters means the full collection.
func ListScholarships(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filters, err := domain.ParseFiltersValues(
			q.Get("q"),
			q.Get("country"),
			q.Get("major"),
			q.Get("budget"),
			q.Get("deadline"),
		)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := d.Memory.ScanScholarships(r.Context(), nil)
		if err != nil {
			writeError(w, err)
			return
		}
		items = domain.FilterScholarships(items, filters)

		d.Logger.Debug("scholarship search",
			logger.String("query", filters.Query),
			logger.Int("results", len(items)))

		writeJSON(w, http.StatusOK, listResponse[*domain.Scholarship]{Items: items, Count: len(items)})
	}
}

func GetScholarship(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := d.Memory.FindScholarship(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
