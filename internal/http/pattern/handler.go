package pattern

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mattcc18/financy-ledger/internal/pattern"
)

type Handler struct {
	svc *pattern.Service
}

func NewHandler(svc *pattern.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	PatternType     pattern.Type `json:"pattern_type"`
	Value           string       `json:"value"`
	AccountID       *int64       `json:"account_id,omitempty"`
	Category        *string      `json:"category,omitempty"`
	TransactionType *string      `json:"transaction_type,omitempty"`
	Confidence      float64      `json:"confidence"`
	UsageCount      int          `json:"usage_count"`
}

// suggest returns the strongest learned rule for a value, or 404 when the
// store has never seen it.
func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	patternType := pattern.Type(r.URL.Query().Get("pattern_type"))
	value := r.URL.Query().Get("value")

	if patternType == "" || value == "" {
		http.Error(w, "pattern_type and value query parameters are required", http.StatusBadRequest)
		return
	}

	p := h.svc.Best(r.Context(), patternType, value)
	if p == nil {
		http.Error(w, "no learned pattern", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{
		PatternType:     p.Type,
		Value:           p.Value,
		AccountID:       p.AccountID,
		Category:        p.Category,
		TransactionType: p.TransactionType,
		Confidence:      p.Confidence,
		UsageCount:      p.UsageCount,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	PatternType     pattern.Type `json:"pattern_type"`
	Value           string       `json:"value"`
	AccountID       *int64       `json:"account_id,omitempty"`
	Category        *string      `json:"category,omitempty"`
	TransactionType *string      `json:"transaction_type,omitempty"`
	Confidence      float64      `json:"confidence"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.PatternType == "" || req.Value == "" {
		http.Error(w, "pattern_type and value are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), pattern.UpsertParams{
		Type:            req.PatternType,
		Value:           req.Value,
		AccountID:       req.AccountID,
		Category:        req.Category,
		TransactionType: req.TransactionType,
		Confidence:      req.Confidence,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
