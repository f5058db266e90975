package trades

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tradebook/internal/domain"
	"tradebook/internal/events"
)

// Mirror pushes the local ledger to the remote store after a mutation.
type Mirror interface {
	TriggerAsync()
}

// Handler handles trade HTTP requests
type Handler struct {
	repo   *Repository
	events *events.Manager
	mirror Mirror
	log    zerolog.Logger
}

// NewHandler creates a new trades handler
func NewHandler(repo *Repository, ev *events.Manager, mirror Mirror, log zerolog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		events: ev,
		mirror: mirror,
		log:    log.With().Str("handler", "trades").Logger(),
	}
}

// HandleList handles GET / - all trades in replay order
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list trades")
		http.Error(w, "Failed to retrieve trades", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []domain.Trade{}
	}

	writeJSON(w, list)
}

// HandleCreate handles POST / - record a new trade
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trade := req.toTrade(uuid.NewString())
	if err := h.repo.Create(trade); err != nil {
		h.log.Error().Err(err).Msg("Failed to create trade")
		http.Error(w, "Failed to create trade", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.TradeCreated, "trades", map[string]interface{}{
		"id":   trade.ID,
		"date": trade.Date,
		"net":  trade.Net(),
	})
	h.notifyMirror()

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, trade)
}

// HandleUpdate handles PUT /{id} - edit any field except the id
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trade := req.toTrade(id)
	found, err := h.repo.Update(trade)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update trade")
		http.Error(w, "Failed to update trade", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Trade not found", http.StatusNotFound)
		return
	}

	h.events.Emit(events.TradeUpdated, "trades", map[string]interface{}{"id": id})
	h.notifyMirror()

	writeJSON(w, trade)
}

// HandleDelete handles DELETE /{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.repo.Delete(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete trade")
		http.Error(w, "Failed to delete trade", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Trade not found", http.StatusNotFound)
		return
	}

	h.events.Emit(events.TradeDeleted, "trades", map[string]interface{}{"id": id})
	h.notifyMirror()

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) notifyMirror() {
	if h.mirror != nil {
		h.mirror.TriggerAsync()
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
