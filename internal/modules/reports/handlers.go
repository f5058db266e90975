package reports

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tradebook/internal/domain"
	"tradebook/internal/events"
)

// Handler exposes the report and snapshot endpoints.
type Handler struct {
	service *Service
	events  *events.Manager
	log     zerolog.Logger
}

// NewHandler creates a new reports handler
func NewHandler(service *Service, ev *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		events:  ev,
		log:     log.With().Str("handler", "reports").Logger(),
	}
}

// HandleGetPortfolio handles GET /portfolio - the full snapshot
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Portfolio(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load portfolio")
		http.Error(w, "Failed to load portfolio", http.StatusInternalServerError)
		return
	}
	writeJSON(w, p)
}

// HandleRestorePortfolio handles PUT /portfolio - replace the whole ledger
// with an imported snapshot.
func (h *Handler) HandleRestorePortfolio(w http.ResponseWriter, r *http.Request) {
	var p domain.Portfolio
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if p.OpeningBalance < 0 {
		http.Error(w, "Opening balance cannot be negative", http.StatusBadRequest)
		return
	}
	for _, tr := range p.Trades {
		if !domain.ValidDate(tr.Date) {
			http.Error(w, "Trade "+tr.ID+" has an invalid date", http.StatusBadRequest)
			return
		}
	}
	for _, cf := range p.CashFlows {
		if !domain.ValidDate(cf.Date) {
			http.Error(w, "Cash flow "+cf.ID+" has an invalid date", http.StatusBadRequest)
			return
		}
	}

	restoreIDs(&p, uuid.NewString)
	if err := h.service.Restore(r.Context(), &p); err != nil {
		h.log.Error().Err(err).Msg("Failed to restore portfolio")
		http.Error(w, "Failed to restore portfolio", http.StatusInternalServerError)
		return
	}

	h.events.Emit(events.SnapshotRestored, "reports", map[string]interface{}{
		"trades":     len(p.Trades),
		"cash_flows": len(p.CashFlows),
	})
	writeJSON(w, p)
}

// HandleSummary handles GET /reports/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute summary")
		http.Error(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}
	writeJSON(w, summary)
}

// HandleBalanceHistory handles GET /reports/balance-history. An optional
// ?smooth=N adds an SMA overlay series.
func (h *Handler) HandleBalanceHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.BalanceHistory(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute balance history")
		http.Error(w, "Failed to compute balance history", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{"history": history}

	if smoothStr := r.URL.Query().Get("smooth"); smoothStr != "" {
		period, err := strconv.Atoi(smoothStr)
		if err != nil || period < 2 || period > 365 {
			http.Error(w, "Invalid smooth period. Must be 2-365", http.StatusBadRequest)
			return
		}
		smoothed, err := h.service.SmoothedBalanceHistory(r.Context(), period)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to compute smoothed history")
			http.Error(w, "Failed to compute smoothed history", http.StatusInternalServerError)
			return
		}
		response["smoothed"] = smoothed
	}

	writeJSON(w, response)
}

// HandleDaily handles GET /reports/daily
func (h *Handler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	daily, err := h.service.Daily(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute daily stats")
		http.Error(w, "Failed to compute daily stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, daily)
}

// HandleByType handles GET /reports/by-type
func (h *Handler) HandleByType(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.service.ByType(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute type breakdown")
		http.Error(w, "Failed to compute type breakdown", http.StatusInternalServerError)
		return
	}
	writeJSON(w, breakdown)
}

// HandleRisk handles GET /reports/risk
func (h *Handler) HandleRisk(w http.ResponseWriter, r *http.Request) {
	risk, err := h.service.Risk(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute risk metrics")
		http.Error(w, "Failed to compute risk metrics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, risk)
}

// HandleExportCSV handles GET /reports/export.csv
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := "portfolio-" + time.Now().Format(domain.DateLayout) + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.service.WriteCSV(r.Context(), w); err != nil {
		h.log.Error().Err(err).Msg("Failed to export CSV")
		// Headers may already be out; nothing more to report to the client.
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
