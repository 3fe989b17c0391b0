package handlers

import (
	"carrier-match-service/internal/platform/obs"
	"net/http"
)

// Health is a liveness check. It echoes the request id so callers can
// confirm tracing is wired end to end.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
		"req_id": obs.RequestID(r.Context()),
	})
}
