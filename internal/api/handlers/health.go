package handlers

import (
	"net/http"
)

// healthBody identifies the service so a probe hitting the wrong
// port gets an obvious answer.
type healthBody struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health answers liveness probes. It reports nothing about downstream
// dependencies; the dispatcher degrades to haversine estimates when
// those are unavailable, so their state does not gate liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, healthBody{Status: "ok", Service: "field-route-service"})
}
