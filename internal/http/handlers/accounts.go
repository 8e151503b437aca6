package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-lightning-hub/internal/errors"
	"github.com/pribylovaa/go-lightning-hub/internal/tokens"
)

type createAccountRequest struct {
	PartnerID   string `json:"partnerid"`
	AccountType string `json:"accounttype"`
}

type createAccountResponse struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// CreateAccount — POST /create.
// Пароль отдаётся в открытом виде ровно один раз.
func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var in createAccountRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errValidation())
		return
	}

	acc, err := h.Service.CreateAccount(r.Context(), in.PartnerID, in.AccountType)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createAccountResponse{
		Login:    acc.Login,
		Password: acc.Password,
	})
}

type authRequest struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Auth — POST /auth: вход по логину+паролю или ротация по refresh-токену.
// Непустой refresh_token имеет приоритет над кредами.
func (h *Handlers) Auth(w http.ResponseWriter, r *http.Request) {
	var in authRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errValidation())
		return
	}

	pair, err := h.Tokens.Authorize(r.Context(), tokens.AuthorizeRequest{
		Login:        in.Login,
		Password:     in.Password,
		RefreshToken: in.RefreshToken,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
