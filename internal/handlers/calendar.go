package handlers

import (
	"context"
	"net/http"

	"event-inbox/internal/database"
)

// CalendarPusher pushes a saved event to an external calendar
type CalendarPusher interface {
	InsertEvent(ctx context.Context, event *database.SavedEvent) (id, htmlLink string, err error)
}

// CalendarHandler syncs saved events to the configured calendar
type CalendarHandler struct {
	db     *database.DB
	pusher CalendarPusher
}

// NewCalendarHandler creates a new calendar handler. pusher may be nil when
// no calendar credentials are configured; syncs are then refused.
func NewCalendarHandler(db *database.DB, pusher CalendarPusher) *CalendarHandler {
	return &CalendarHandler{db: db, pusher: pusher}
}

// syncResponse reports a completed calendar push
type syncResponse struct {
	CalendarEventID string `json:"calendar_event_id"`
	HTMLLink        string `json:"html_link,omitempty"`
}

// SyncSavedEvent handles POST /api/saved-events/{id}/sync
func (h *CalendarHandler) SyncSavedEvent(w http.ResponseWriter, r *http.Request) {
	if h.pusher == nil {
		writeError(w, http.StatusServiceUnavailable, "Calendar sync is not configured on this server")
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.db.SavedEvents.GetByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Saved event not found")
		return
	}
	if event.CalendarEventID != "" {
		writeError(w, http.StatusConflict, "Saved event is already synced")
		return
	}

	calendarID, htmlLink, err := h.pusher.InsertEvent(r.Context(), event)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Calendar push failed: "+err.Error())
		return
	}

	if err := h.db.SavedEvents.SetCalendarEventID(id, calendarID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record calendar event ID")
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{CalendarEventID: calendarID, HTMLLink: htmlLink})
}
