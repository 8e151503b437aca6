package handlers

import (
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/go-lightning-hub/internal/errors"
	"github.com/pribylovaa/go-lightning-hub/internal/lightning"
)

type payInvoiceRequest struct {
	Invoice string `json:"invoice"`
}

type payInvoiceResponse struct {
	ID     string `json:"id"`
	Amount int64  `json:"amt"`
	Fee    int64  `json:"fee"`
	Status string `json:"status"`
}

// PayInvoice — POST /payinvoice: оплата payment request с баланса.
func (h *Handlers) PayInvoice(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in payInvoiceRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errValidation())
		return
	}

	tx, err := h.Service.PayInvoice(r.Context(), uid, in.Invoice)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payInvoiceResponse{
		ID:     tx.ID.String(),
		Amount: tx.Amount,
		Fee:    tx.Fee,
		Status: string(tx.Status),
	})
}

// decodedInvoiceView — расшифровка payment request без оплаты.
type decodedInvoiceView struct {
	Destination string    `json:"destination"`
	Amount      int64     `json:"num_satoshis"`
	Description string    `json:"description"`
	PaymentHash string    `json:"payment_hash"`
	Timestamp   time.Time `json:"timestamp"`
	ExpirySec   int64     `json:"expiry"`
}

func toDecodedInvoiceView(inv *lightning.Invoice) decodedInvoiceView {
	return decodedInvoiceView{
		Destination: inv.Destination,
		Amount:      inv.Amount,
		Description: inv.Description,
		PaymentHash: inv.PaymentHash,
		Timestamp:   inv.Timestamp,
		ExpirySec:   int64(inv.Expiry / time.Second),
	}
}

// DecodeInvoice — GET /decodeinvoice?invoice=.
func (h *Handlers) DecodeInvoice(w http.ResponseWriter, r *http.Request) {
	invoice := r.URL.Query().Get("invoice")
	if invoice == "" {
		apierrors.WriteError(w, r, errValidation())
		return
	}

	decoded, err := h.Service.DecodeInvoice(r.Context(), invoice)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDecodedInvoiceView(decoded))
}

type routeView struct {
	TotalAmount int64 `json:"total_amt"`
	TotalFees   int64 `json:"total_fees"`
	Hops        int   `json:"hops"`
}

// CheckRoute — GET /checkroute?destination=&amt=.
func (h *Handlers) CheckRoute(w http.ResponseWriter, r *http.Request) {
	dest := r.URL.Query().Get("destination")

	amt, err := queryInt(r, "amt", 0)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	route, err := h.Service.CheckRoute(r.Context(), dest, int64(amt))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, routeView{
		TotalAmount: route.TotalAmount,
		TotalFees:   route.TotalFees,
		Hops:        route.Hops,
	})
}
