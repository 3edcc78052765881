package transfer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mattcc18/financy-ledger/internal/account"
	"github.com/mattcc18/financy-ledger/internal/ledger"
)

// Handler creates transfer and currency-exchange pairs. It resolves the two
// accounts up front so the ledger service can name each leg's counterparty.
type Handler struct {
	ledgerSvc  *ledger.Service
	accountSvc *account.Service
}

func NewHandler(ledgerSvc *ledger.Service, accountSvc *account.Service) *Handler {
	return &Handler{ledgerSvc: ledgerSvc, accountSvc: accountSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/transfers", h.transfer)
	r.Post("/currency-exchange", h.exchange)
}

type pairResponse struct {
	TransferLinkID uuid.UUID       `json:"transfer_link_id"`
	FromAccountID  int64           `json:"from_account_id"`
	ToAccountID    int64           `json:"to_account_id"`
	FromAmount     decimal.Decimal `json:"from_amount"`
	ToAmount       decimal.Decimal `json:"to_amount"`
	Description    string          `json:"description"`
}

func toPairResponse(res *ledger.PairResult) pairResponse {
	return pairResponse{
		TransferLinkID: res.TransferLinkID,
		FromAccountID:  res.FromEntry.AccountID,
		ToAccountID:    res.ToEntry.AccountID,
		FromAmount:     res.FromEntry.Amount,
		ToAmount:       res.ToEntry.Amount,
		Description:    res.FromEntry.Description,
	}
}

func (h *Handler) lookupAccount(w http.ResponseWriter, r *http.Request, id int64) *account.Account {
	a, err := h.accountSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusBadRequest)
			return nil
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil
	}

	return a
}

type transferRequest struct {
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"transaction_date"`
	Description   string          `json:"description"`
	Fees          decimal.Decimal `json:"fees"`
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	from := h.lookupAccount(w, r, req.FromAccountID)
	if from == nil {
		return
	}

	to := h.lookupAccount(w, r, req.ToAccountID)
	if to == nil {
		return
	}

	if from.CurrencyCode != to.CurrencyCode {
		http.Error(w, "accounts use different currencies, use currency-exchange instead", http.StatusBadRequest)
		return
	}

	res, err := h.ledgerSvc.Transfer(r.Context(), ledger.TransferParams{
		FromAccountID:   from.ID,
		FromAccountName: from.Name,
		ToAccountID:     to.ID,
		ToAccountName:   to.Name,
		Amount:          req.Amount,
		Date:            req.Date,
		Description:     req.Description,
		Fees:            req.Fees,
		FeeCurrency:     from.CurrencyCode,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toPairResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type exchangeRequest struct {
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	Date          time.Time       `json:"transaction_date"`
	Description   string          `json:"description"`
	Fees          decimal.Decimal `json:"fees"`
}

func (h *Handler) exchange(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	from := h.lookupAccount(w, r, req.FromAccountID)
	if from == nil {
		return
	}

	to := h.lookupAccount(w, r, req.ToAccountID)
	if to == nil {
		return
	}

	res, err := h.ledgerSvc.Exchange(r.Context(), ledger.ExchangeParams{
		FromAccountID:   from.ID,
		FromAccountName: from.Name,
		FromCurrency:    from.CurrencyCode,
		ToAccountID:     to.ID,
		ToAccountName:   to.Name,
		ToCurrency:      to.CurrencyCode,
		Amount:          req.Amount,
		ExchangeRate:    req.ExchangeRate,
		Date:            req.Date,
		Description:     req.Description,
		Fees:            req.Fees,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toPairResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
