package handlers

import (
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/go-lightning-hub/internal/errors"
	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/service"
)

type addInvoiceRequest struct {
	Amount int64  `json:"amt"`
	Memo   string `json:"memo"`
}

// invoiceView — инвойс в ответе API (LNDHub-совместимые имена полей).
type invoiceView struct {
	RHash          string    `json:"r_hash"`
	PaymentRequest string    `json:"payment_request"`
	Amount         int64     `json:"amt"`
	IsPaid         bool      `json:"ispaid"`
	Timestamp      time.Time `json:"timestamp"`
	Type           string    `json:"type"`
}

func toInvoiceView(tx *models.Transaction) invoiceView {
	return invoiceView{
		RHash:          tx.ExternalID,
		PaymentRequest: service.PaymentRequestFromData(tx.Data),
		Amount:         tx.Amount,
		IsPaid:         tx.Status == models.StatusComplete,
		Timestamp:      tx.Timestamp,
		Type:           "user_invoice",
	}
}

// AddInvoice — POST /addinvoice: выпуск инвойса на приём средств.
func (h *Handlers) AddInvoice(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in addInvoiceRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errValidation())
		return
	}

	tx, err := h.Service.CreateInvoice(r.Context(), uid, in.Amount, in.Memo)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvoiceView(tx))
}

// UserInvoices — GET /getuserinvoices: все оффчейн-инвойсы пользователя.
func (h *Handlers) UserInvoices(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	txs, err := h.Service.UserInvoices(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]invoiceView, 0, len(txs))
	for i := range txs {
		out = append(out, toInvoiceView(&txs[i]))
	}

	writeJSON(w, http.StatusOK, out)
}
