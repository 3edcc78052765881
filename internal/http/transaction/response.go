package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mattcc18/financy-ledger/internal/ledger"
)

type transactionResponse struct {
	ID             int64           `json:"transaction_id"`
	AccountID      int64           `json:"account_id"`
	Amount         decimal.Decimal `json:"amount"`
	Type           ledger.Type     `json:"transaction_type"`
	Category       string          `json:"category,omitempty"`
	Date           time.Time       `json:"transaction_date"`
	Description    string          `json:"description,omitempty"`
	Merchant       string          `json:"merchant,omitempty"`
	TripID         *int64          `json:"trip_id,omitempty"`
	TransferLinkID *uuid.UUID      `json:"transfer_link_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toResponse(e *ledger.Entry) transactionResponse {
	return transactionResponse{
		ID:             e.ID,
		AccountID:      e.AccountID,
		Amount:         e.Amount,
		Type:           e.Type,
		Category:       e.Category,
		Date:           e.Date,
		Description:    e.Description,
		Merchant:       e.Merchant,
		TripID:         e.TripID,
		TransferLinkID: e.TransferLinkID,
		CreatedAt:      e.CreatedAt,
	}
}

func toResponseList(entries []*ledger.Entry) []transactionResponse {
	resp := make([]transactionResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
