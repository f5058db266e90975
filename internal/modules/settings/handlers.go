package settings

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"tradebook/internal/events"
)

// Mirror pushes the local ledger to the remote store after a mutation.
type Mirror interface {
	TriggerAsync()
}

// OpeningBalancePayload is the request/response body for the opening balance.
type OpeningBalancePayload struct {
	OpeningBalance float64 `json:"openingBalance"`
}

// Handler handles settings HTTP requests
type Handler struct {
	repo   *Repository
	events *events.Manager
	mirror Mirror
	log    zerolog.Logger
}

// NewHandler creates a new settings handler
func NewHandler(repo *Repository, ev *events.Manager, mirror Mirror, log zerolog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		events: ev,
		mirror: mirror,
		log:    log.With().Str("handler", "settings").Logger(),
	}
}

// HandleGetOpeningBalance handles GET /opening-balance
func (h *Handler) HandleGetOpeningBalance(w http.ResponseWriter, r *http.Request) {
	value, err := h.repo.OpeningBalance()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get opening balance")
		http.Error(w, "Failed to retrieve opening balance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OpeningBalancePayload{OpeningBalance: value})
}

// HandleSetOpeningBalance handles PUT /opening-balance
func (h *Handler) HandleSetOpeningBalance(w http.ResponseWriter, r *http.Request) {
	var payload OpeningBalancePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if payload.OpeningBalance < 0 {
		http.Error(w, "Opening balance cannot be negative", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetOpeningBalance(payload.OpeningBalance); err != nil {
		h.log.Error().Err(err).Msg("Failed to set opening balance")
		http.Error(w, "Failed to save opening balance", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.OpeningBalanceSet, "settings", map[string]interface{}{
		"openingBalance": payload.OpeningBalance,
	})
	if h.mirror != nil {
		h.mirror.TriggerAsync()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
