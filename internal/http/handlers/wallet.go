package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-lightning-hub/internal/errors"
)

// btcBalance — LNDHub-формат сводки баланса: суммы в сатоши.
type btcBalance struct {
	TotalBalance       int64 `json:"TotalBalance"`
	AvailableBalance   int64 `json:"AvailableBalance"`
	UnconfirmedBalance int64 `json:"UnconfirmedBalance"`
}

type balanceResponse struct {
	BTC btcBalance `json:"BTC"`
}

// Balance — GET /balance.
func (h *Handlers) Balance(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	sum, err := h.Service.Balance(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{
		BTC: btcBalance{
			TotalBalance:       sum.Total,
			AvailableBalance:   sum.Available,
			UnconfirmedBalance: sum.Unconfirmed,
		},
	})
}

type pendingResponse struct {
	Pending int64 `json:"pending"`
}

// PendingBalance — GET /getpending: сумма неподтверждённых входящих средств.
func (h *Handlers) PendingBalance(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	total, err := h.Service.PendingBalance(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pendingResponse{Pending: total})
}

type addressResponse struct {
	Address string `json:"address"`
}

// CurrentAddress — GET /getbtc: текущий депозитный адрес
// (первый выдаётся лениво).
func (h *Handlers) CurrentAddress(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	addr, err := h.Service.CurrentAddress(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addressResponse{Address: addr})
}

// NewAddress — GET /newbtc: принудительно свежий депозитный адрес.
func (h *Handlers) NewAddress(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	addr, err := h.Service.NewAddress(r.Context(), uid)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addressResponse{Address: addr})
}
