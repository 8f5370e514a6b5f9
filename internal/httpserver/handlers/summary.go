package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/scholarpath/scholarpath/internal/domain"
	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
	"github.com/scholarpath/scholarpath/internal/logger"
)

type summaryRequest struct {
	EntityID    string            `json:"entity_id"`
	EntityKind  domain.EntityKind `json:"entity_kind"`
	Instruction string            `json:"instruction,omitempty"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
	Cached  bool   `json:"cached"`
}

// Summarize asks the collaborator for a short description of one entity.
// One attempt per request; a failed call surfaces as 502 and the client
// decides whether to retry. Default-instruction results are cached.
func Summarize(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Summarizer == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "summaries are disabled"})
			return
		}

		var req summaryRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if !req.EntityKind.Valid() {
			writeError(w, fmt.Errorf("%w: unknown entity kind %q", domain.ErrValidation, req.EntityKind))
			return
		}

		contextText, err := entityContext(r.Context(), d, req.EntityID, req.EntityKind)
		if err != nil {
			writeError(w, err)
			return
		}

		// Custom instructions bypass the cache; the cached text answers
		// only the default one.
		cacheable := req.Instruction == ""
		if cacheable && d.RedisStore != nil {
			if text, err := d.RedisStore.GetCachedSummary(r.Context(), string(req.EntityKind), req.EntityID); err == nil && text != "" {
				writeJSON(w, http.StatusOK, summaryResponse{Summary: text, Cached: true})
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), d.SummaryTimeout)
		defer cancel()

		text, err := d.Summarizer.Summarize(ctx, contextText, req.Instruction)
		if err != nil {
			d.Logger.Warn("summary generation failed",
				logger.String("entity_id", req.EntityID),
				logger.String("kind", string(req.EntityKind)),
				logger.Error(err))
			writeError(w, err)
			return
		}

		if cacheable && d.RedisStore != nil {
			if err := d.RedisStore.CacheSummary(r.Context(), string(req.EntityKind), req.EntityID, text, d.SummaryCacheTTL); err != nil {
				d.Logger.Debug("failed to cache summary", logger.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, summaryResponse{Summary: text, Cached: false})
	}
}

// entityContext flattens an entity into the text block handed to the
// collaborator.
func entityContext(ctx context.Context, d deps.Deps, id string, kind domain.EntityKind) (string, error) {
	switch kind {
	case domain.KindScholarship:
		rec, err := d.Memory.FindScholarship(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"Scholarship: %s\nOrganization: %s\nCountry: %s\nMajor: %s\nBudget: %.0f\nDeadline: %s\nDescription: %s",
			rec.Name, rec.Organization, rec.Country, rec.Major, rec.Budget,
			rec.Deadline.Format("2006-01-02"), rec.Description,
		), nil
	case domain.KindUniversity:
		rec, err := d.Memory.FindUniversity(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"University: %s\nCountry: %s\nPrograms: %s",
			rec.Name, rec.Country, strings.Join(rec.Programs, ", "),
		), nil
	}
	return "", domain.ErrValidation
}
