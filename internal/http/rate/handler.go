package rate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mattcc18/financy-ledger/internal/rate"
)

type Handler struct {
	svc *rate.Service
}

func NewHandler(svc *rate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/latest", h.latest)
	r.Post("/", h.upsert)
}

type snapshotResponse struct {
	BaseCurrency string                     `json:"base_currency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	Date         *string                    `json:"date,omitempty"`
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		base = "EUR"
	}

	var onOrBefore *time.Time

	if s := r.URL.Query().Get("date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		onOrBefore = &t
	}

	snapshot, err := h.svc.Latest(r.Context(), base, onOrBefore)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := snapshotResponse{
		BaseCurrency: snapshot.BaseCurrency,
		Rates:        snapshot.Rates,
	}

	if snapshot.Date != nil {
		date := snapshot.Date.Format(time.DateOnly)
		resp.Date = &date
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type upsertRateRequest struct {
	BaseCurrency   string          `json:"base_currency"`
	TargetCurrency string          `json:"target_currency"`
	Rate           decimal.Decimal `json:"rate"`
	Date           string          `json:"date"`
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.BaseCurrency == "" || req.TargetCurrency == "" {
		http.Error(w, "base_currency and target_currency are required", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := h.svc.Upsert(r.Context(), rate.Rate{
		BaseCurrency:   req.BaseCurrency,
		TargetCurrency: req.TargetCurrency,
		Rate:           req.Rate,
		Date:           date,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
