package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
)

// ListUniversities mirrors ListScholarships for the university collection.
// Budget and deadline filters are accepted but do not apply to universities.
func ListUniversities(d deps.Deps) http.HandlerFunc {
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

		items, err := d.Memory.ScanUniversities(r.Context(), nil)
		if err != nil {
			writeError(w, err)
			return
		}
		items = domain.FilterUniversities(items, filters)

		writeJSON(w, http.StatusOK, listResponse[*domain.University]{Items: items, Count: len(items)})
	}
}

func GetUniversity(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := d.Memory.FindUniversity(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
