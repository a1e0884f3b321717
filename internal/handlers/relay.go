package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bizchat/internal/logging"
	"bizchat/internal/models"
	"bizchat/internal/services"
)

const maxRelayBodyBytes = 1 << 20

const (
	errMsgNotConfigured    = "API key not configured"
	errMsgMethodNotAllowed = "Method not allowed"
)

type RelayHandler struct {
	relay      *services.RelayService
	configured bool
}

// NewRelayHandler wires the relay. configured is false when no upstream
// credential is available; every chat request then fails fast.
func NewRelayHandler(relay *services.RelayService, configured bool) *RelayHandler {
	return &RelayHandler{relay: relay, configured: configured}
}

func (h *RelayHandler) Chat(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("relay_panic", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, services.InternalError(fmt.Errorf("%v", rec)))
		}
	}()

	if !h.configured {
		log.Error("relay_missing_api_key")
		writeJSON(w, http.StatusInternalServerError, models.RelayResponse{Success: false, Error: errMsgNotConfigured})
		return
	}

	var req models.RelayRequest
	body := http.MaxBytesReader(w, r.Body, maxRelayBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		log.Warn("relay_bad_body", "error", err)
		writeJSON(w, http.StatusInternalServerError, services.InternalError(err))
		return
	}

	status, resp := h.relay.Reply(r.Context(), &req)
	writeJSON(w, status, resp)
}

func (h *RelayHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, models.RelayResponse{Success: false, Error: errMsgMethodNotAllowed})
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
