package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/logger"
)

// SourceAdmin tags records created through the admin surface.
const SourceAdmin = "admin"

type createScholarshipRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Country      string  `json:"country"`
	Budget       float64 `json:"budget"`
	Major        string  `json:"major"`
	Deadline     string  `json:"deadline"`
	URL          string  `json:"url"`
	Organization string  `json:"organization"`
}

// CreateScholarship inserts a new listing. IDs are assigned by the store.
func CreateScholarship(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createScholarshipRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		rec, err := scholarshipFromRequest(req)
		if err != nil {
			writeError(w, err)
			return
		}

		rec, err = d.Memory.InsertScholarship(r.Context(), rec)
		if err != nil {
			writeError(w, err)
			return
		}

		if d.RedisStore != nil {
			if err := d.RedisStore.SaveScholarship(r.Context(), rec); err != nil {
				d.Logger.Warn("failed to persist scholarship",
					logger.String("id", rec.ID),
					logger.Error(err))
			}
		}

		d.Logger.Info("scholarship created",
			logger.String("id", rec.ID),
			logger.String("name", rec.Name))

		writeJSON(w, http.StatusCreated, rec)
	}
}

// UpdateScholarship applies a partial update and invalidates the cached
// summary, which may describe stale fields.
func UpdateScholarship(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var patch domain.ScholarshipPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, err)
			return
		}
		if patch.Budget != nil && *patch.Budget < 0 {
			writeError(w, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation))
			return
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
			writeError(w, fmt.Errorf("%w: name must not be empty", domain.ErrValidation))
			return
		}

		rec, err := d.Memory.UpdateScholarship(r.Context(), id, patch)
		if err != nil {
			writeError(w, err)
			return
		}

		if d.RedisStore != nil {
			if err := d.RedisStore.SaveScholarship(r.Context(), rec); err != nil {
				d.Logger.Warn("failed to persist scholarship",
					logger.String("id", rec.ID),
					logger.Error(err))
			}
			if err := d.RedisStore.InvalidateSummary(r.Context(), string(domain.KindScholarship), rec.ID); err != nil {
				d.Logger.Debug("failed to invalidate summary",
					logger.String("id", rec.ID),
					logger.Error(err))
			}
		}

		d.Logger.Info("scholarship updated",
			logger.String("id", rec.ID))

		writeJSON(w, http.StatusOK, rec)
	}
}

func scholarshipFromRequest(req createScholarshipRequest) (*domain.Scholarship, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if req.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}

	rec := &domain.Scholarship{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Country:      req.Country,
		Budget:       req.Budget,
		Major:        req.Major,
		URL:          req.URL,
		Organization: req.Organization,
		Sources:      []string{SourceAdmin},
	}

	if req.Deadline != "" {
		t, err := domain.ParseDate(req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: deadline %q is not a date", domain.ErrValidation, req.Deadline)
		}
		rec.Deadline = t
	}

	return rec, nil
}
