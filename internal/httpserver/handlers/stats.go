package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/scholarpath/scholarpath/internal/httpserver/deps"
)

type componentStatus struct {
	OK    bool   `json:"ok"`
	Mode  string `json:"mode,omitempty"`
	Error string `json:"error,omitempty"`
}

type statsResponse struct {
	Scholarships   int                        `json:"scholarships"`
	Universities   int                        `json:"universities"`
	Bookmarks      int                        `json:"bookmarks"`
	Users          int                        `json:"users"`
	LastSeedReload string                     `json:"last_seed_reload"`
	Components     map[string]componentStatus `json:"components"`
}

// Stats reports collection sizes and component health for the admin panel.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		lastReload := d.Memory.SeedReloadTime()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"redis":   checkRedis(d),
			"summary": checkSummarizer(d),
		}

		resp := statsResponse{
			Scholarships:   d.Memory.CountScholarships(),
			Universities:   d.Memory.CountUniversities(),
			Bookmarks:      d.Memory.CountBookmarks(),
			Users:          d.Memory.CountUsers(),
			LastSeedReload: lastReloadStr,
			Components:     components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:    false,
			Mode:  "memory-only",
			Error: "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:    false,
			Mode:  "memory-only",
			Error: "timeout",
		}
	}

	return componentStatus{OK: true, Mode: "persistent"}
}

func checkSummarizer(d deps.Deps) componentStatus {
	if d.Summarizer == nil {
		return componentStatus{
			OK:    false,
			Mode:  "disabled",
			Error: "no API key configured",
		}
	}
	return componentStatus{OK: true, Mode: "enabled"}
}
