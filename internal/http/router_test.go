package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-lightning-hub/internal/config"
	"github.com/pribylovaa/go-lightning-hub/internal/credentials"
	apierrors "github.com/pribylovaa/go-lightning-hub/internal/errors"
	"github.com/pribylovaa/go-lightning-hub/internal/ledger"
	"github.com/pribylovaa/go-lightning-hub/internal/lightning"
	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/service"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
	"github.com/pribylovaa/go-lightning-hub/internal/tokens"
	"github.com/pribylovaa/go-lightning-hub/mocks"
)

// Сквозные тесты роутера: маршруты, bearer-авторизация и формат
// LNDHub-ответов поверх моков хранилища и ноды.

type env struct {
	router http.Handler
	st     *mocks.MockStorage
	ln     *mocks.MockClient
	tm     *tokens.Manager
}

func newEnv(t *testing.T) (*env, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	ln := mocks.NewMockClient(ctrl)

	creds := credentials.New(st, nil)
	tm := tokens.New(tokens.NewMemoryStore(nil), creds, time.Hour, nil)
	led := ledger.New(st)
	svc := service.New(st, creds, led, ln, config.WalletConfig{
		FeeLimit:      10,
		InvoiceExpiry: time.Hour,
		PayTimeout:    time.Minute,
	})

	router := NewRouter(svc, tm, Options{})
	return &env{router: router, st: st, ln: ln, tm: tm}, ctrl
}

// issueToken — выпускает валидную пару для пользователя напрямую
// через менеджер, минуя /auth.
func (e *env) issueToken(t *testing.T, user *models.User) string {
	t.Helper()

	pair, err := e.tm.Issue(context.Background(), user)
	require.NoError(t, err)
	return pair.AccessToken
}

func doJSON(t *testing.T, router http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_CreateAccount(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	e.st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)

	rr := doJSON(t, e.router, http.MethodPost, "/create", "", map[string]string{
		"partnerid":   "",
		"accounttype": "",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Login)
	require.NotEmpty(t, resp.Password)
}

func TestRouter_AuthAndBalance(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("pass-1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{ID: uuid.New(), Login: "login-1", PasswordHash: string(hash), Balance: 700}
	e.st.EXPECT().UserByLogin(gomock.Any(), "login-1").Return(user, nil)

	rr := doJSON(t, e.router, http.MethodPost, "/auth", "", map[string]string{
		"login":    "login-1",
		"password": "pass-1",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var authResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &authResp))
	require.NotEmpty(t, authResp.AccessToken)
	require.NotEmpty(t, authResp.RefreshToken)

	e.st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	e.st.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, nil)

	rr = doJSON(t, e.router, http.MethodGet, "/balance", authResp.AccessToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var balResp struct {
		BTC struct {
			AvailableBalance int64 `json:"AvailableBalance"`
			TotalBalance     int64 `json:"TotalBalance"`
		} `json:"BTC"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &balResp))
	require.Equal(t, int64(700), balResp.BTC.AvailableBalance)
}

// TestRouter_ProtectedWithoutToken — защищённые роуты без токена
// отвечают 401/1, хендлер не вызывается.
func TestRouter_ProtectedWithoutToken(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	for _, target := range []string{"/balance", "/gettxs", "/getuserinvoices", "/getinfo"} {
		rr := doJSON(t, e.router, http.MethodGet, target, "", nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code, target)

		var resp apierrors.APIError
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.True(t, resp.Error)
		require.Equal(t, apierrors.CodeBadAuth, resp.Code)
	}
}

func TestRouter_AuthBadCredentials(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	e.st.EXPECT().UserByLogin(gomock.Any(), "ghost").
		Return(nil, storage.ErrNotFound)

	rr := doJSON(t, e.router, http.MethodPost, "/auth", "", map[string]string{
		"login":    "ghost",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp apierrors.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, apierrors.CodeBadAuth, resp.Code)
}

func TestRouter_PayInvoice_InsufficientFunds(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Balance: 5}
	token := e.issueToken(t, user)

	e.ln.EXPECT().DecodeInvoice(gomock.Any(), "lnbc1invoice").
		Return(&lightning.Invoice{PaymentHash: "hash", Amount: 500}, nil)
	e.st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	rr := doJSON(t, e.router, http.MethodPost, "/payinvoice", token, map[string]string{
		"invoice": "lnbc1invoice",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp apierrors.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, apierrors.CodeNotEnough, resp.Code)
}

func TestRouter_GetTx_BadID(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New()}
	token := e.issueToken(t, user)

	rr := doJSON(t, e.router, http.MethodGet, "/gettx/not-a-uuid", token, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
