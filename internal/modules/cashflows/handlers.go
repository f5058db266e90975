package cashflows

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

// Handler handles cash flow HTTP requests
type Handler struct {
	repo   *Repository
	events *events.Manager
	mirror Mirror
	log    zerolog.Logger
}

// NewHandler creates a new cash flows handler
func NewHandler(repo *Repository, ev *events.Manager, mirror Mirror, log zerolog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		events: ev,
		mirror: mirror,
		log:    log.With().Str("handler", "cash_flows").Logger(),
	}
}

// HandleList handles GET / - all cash flows in replay order
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list cash flows")
		http.Error(w, "Failed to retrieve cash flows", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []domain.CashFlow{}
	}

	writeJSON(w, list)
}

// HandleCreate handles POST / - record a deposit or withdrawal
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CashFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cf := req.toCashFlow(uuid.NewString())
	if err := h.repo.Create(cf); err != nil {
		h.log.Error().Err(err).Msg("Failed to create cash flow")
		http.Error(w, "Failed to create cash flow", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.CashFlowCreated, "cash_flows", map[string]interface{}{
		"id":     cf.ID,
		"date":   cf.Date,
		"amount": cf.Amount,
	})
	h.notifyMirror()

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, cf)
}

// HandleDelete handles DELETE /{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.repo.Delete(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete cash flow")
		http.Error(w, "Failed to delete cash flow", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Cash flow not found", http.StatusNotFound)
		return
	}

	h.events.Emit(events.CashFlowDeleted, "cash_flows", map[string]interface{}{"id": id})
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
