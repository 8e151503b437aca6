package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-lightning-hub/internal/errors"
	"github.com/pribylovaa/go-lightning-hub/internal/models"
)

// transactionView — запись леджера в ответе API.
type transactionView struct {
	ID           string    `json:"id"`
	Amount       int64     `json:"amount"`
	Fee          int64     `json:"fee"`
	Timestamp    time.Time `json:"timestamp"`
	PaymentType  string    `json:"payment_type"`
	TransferType string    `json:"transfer_type"`
	Status       string    `json:"status"`
	Destination  string    `json:"destination,omitempty"`
}

func toTransactionView(tx *models.Transaction) transactionView {
	return transactionView{
		ID:           tx.ID.String(),
		Amount:       tx.Amount,
		Fee:          tx.Fee,
		Timestamp:    tx.Timestamp,
		PaymentType:  string(tx.PaymentType),
		TransferType: string(tx.TransferType),
		Status:       string(tx.Status),
		Destination:  tx.Destination,
	}
}

func toTransactionViews(txs []models.Transaction) []transactionView {
	out := make([]transactionView, 0, len(txs))
	for i := range txs {
		out = append(out, toTransactionView(&txs[i]))
	}
	return out
}

// Transactions — GET /gettxs?limit=&offset=: страница истории пользователя,
// новые записи первыми.
func (h *Handlers) Transactions(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	txs, err := h.Service.Transactions(r.Context(), uid, limit, offset)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionViews(txs))
}

// Transaction — GET /gettx/{id}: одна запись леджера.
// Чужая запись неотличима от несуществующей.
func (h *Handlers) Transaction(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	txID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, errValidation())
		return
	}

	tx, err := h.Service.Transaction(r.Context(), uid, txID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionView(tx))
}
