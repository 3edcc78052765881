package balance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mattcc18/financy-ledger/internal/balance"
)

type Handler struct {
	svc *balance.Service
}

func NewHandler(svc *balance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/history/{accountName}", h.history)
}

// toResponse keys the converted value by currency ("balance_gbp"), the shape
// the frontend charting reads.
func toResponse(b *balance.Balance, currency string) map[string]any {
	resp := map[string]any{
		"balance_date":  b.Date.Format(time.DateOnly),
		"account_name":  b.AccountName,
		"account_type":  b.AccountType,
		"institution":   b.Institution,
		"currency_code": b.Currency,
		"amount":        b.Amount,
		"balance_eur":   b.AmountEUR,
	}

	if b.Converted != nil {
		resp["balance_"+strings.ToLower(currency)] = *b.Converted
	}

	return resp
}

func targetCurrency(r *http.Request) string {
	if c := r.URL.Query().Get("currency"); c != "" {
		return c
	}

	return "EUR"
}

func asOfDate(r *http.Request) (*time.Time, error) {
	s := r.URL.Query().Get("date")
	if s == "" {
		return nil, nil
	}

	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	currency := targetCurrency(r)

	asOf, err := asOfDate(r)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	balances, err := h.svc.Balances(r.Context(), currency, asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.encode(w, balances, currency)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	// account names arrive with spaces flattened to underscores
	name := strings.ReplaceAll(chi.URLParam(r, "accountName"), "_", " ")

	balances, err := h.svc.History(r.Context(), name, targetCurrency(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.encode(w, balances, targetCurrency(r))
}

func (h *Handler) encode(w http.ResponseWriter, balances []*balance.Balance, currency string) {
	resp := make([]map[string]any, len(balances))
	for i, b := range balances {
		resp[i] = toResponse(b, currency)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
