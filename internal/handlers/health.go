package handlers

import (
	"net/http"
	"runtime"
	"time"

	"photo-gallery/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	Albums        int `json:"albums"`
	AlbumWarnings int `json:"albumWarnings"`

	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	ThumbnailsEnabled bool `json:"thumbnailsEnabled"`
}

// HealthCheck returns the health status of the service. The catalog scan
// is cheap for gallery-sized corpora, so the check exercises the real
// read path instead of a synthetic probe.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:            statusHealthy,
		Version:           startup.Version,
		Uptime:            time.Since(h.started).Round(time.Second).String(),
		GoVersion:         runtime.Version(),
		NumCPU:            runtime.NumCPU(),
		NumGoroutine:      runtime.NumGoroutine(),
		ThumbnailsEnabled: h.cache.IsEnabled(),
	}

	albums, warnings, err := h.repo.ListAlbums()
	if err != nil {
		response.Status = statusDegraded
	} else {
		response.Albums = len(albums)
		response.AlbumWarnings = len(warnings)
	}

	w.Header().Set("Content-Type", "application/json")
	if response.Status == statusDegraded {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if the
// server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{"status": "alive"})
	}
}

// ReadinessCheck returns 200 only when the catalog can actually be read
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, _, err := h.repo.ListAlbums(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{"status": "not ready", "reason": err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	writeJSON(w, map[string]string{"status": "ready"})
}
