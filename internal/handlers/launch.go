package handlers

import (
	"context"
	"net/http"

	"event-inbox/internal/database"
	"event-inbox/internal/workers"
)

// LaunchRunner runs one inbox scan
type LaunchRunner interface {
	Run(ctx context.Context) (*workers.LaunchSummary, error)
}

// LaunchHandler triggers and reports inbox scans
type LaunchHandler struct {
	db     *database.DB
	runner LaunchRunner
}

// NewLaunchHandler creates a new launch handler. runner may be nil when the
// server was started without mailbox credentials; launches are then refused.
func NewLaunchHandler(db *database.DB, runner LaunchRunner) *LaunchHandler {
	return &LaunchHandler{db: db, runner: runner}
}

// Launch handles POST /api/launch, running one scan synchronously
func (h *LaunchHandler) Launch(w http.ResponseWriter, r *http.Request) {
	if h.runner == nil {
		writeError(w, http.StatusServiceUnavailable, "Scanning is not configured on this server")
		return
	}

	summary, err := h.runner.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "Scan failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetLaunches handles GET /api/launches
func (h *LaunchHandler) GetLaunches(w http.ResponseWriter, r *http.Request) {
	launches, err := h.db.Launches.GetRecent(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get launches")
		return
	}
	if launches == nil {
		launches = []database.Launch{}
	}
	writeJSON(w, http.StatusOK, launches)
}
