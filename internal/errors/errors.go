// errors стандартизирует ответы об ошибках HTTP-слоя гейтвея.
// На вход он принимает ошибку (sentinel-ошибки сервисного слоя),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный числовой код для кошельков-клиентов;
//   - краткое безопасное message без утечки деталей.
//
// Формат тела совместим с LNDHub-клиентами:
//
//	{"error": true, "code": <N>, "message": "<text>"}
//
// Таблица числовых кодов (контракт с кошельками, менять нельзя):
//   - 1 — bad auth (невалидные креды или токен);
//   - 2 — not enough balance;
//   - 3 — bad partner;
//   - 4 — invalid invoice;
//   - 5 — route not found;
//   - 6 — general server error;
//   - 7 — node failure (ошибка или таймаут платёжной ноды).
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-lightning-hub/internal/credentials"
	"github.com/pribylovaa/go-lightning-hub/internal/service"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
	"github.com/pribylovaa/go-lightning-hub/internal/tokens"
)

// Числовые коды протокола.
const (
	CodeBadAuth       = 1
	CodeNotEnough     = 2
	CodeBadPartner    = 3
	CodeBadInvoice    = 4
	CodeRouteNotFound = 5
	CodeServerError   = 6
	CodeNodeFailure   = 7
)

// APIError — единый формат ошибки для кошельков-клиентов.
// Error всегда true: клиенты отличают ошибку по этому полю, не по статусу.
// RequestID прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Error     bool   `json:"error"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/6, чтобы не послать
//     "200 OK" с телом ошибки и не маскировать баг;
//   - неизвестная ошибка — 500/6 (без утечки деталей).
func ToHTTP(err error) (int, APIError) {
	if err == nil {
		return http.StatusInternalServerError, apiError(CodeServerError, "server error")
	}

	switch {
	case errors.Is(err, tokens.ErrInvalidCredentials),
		errors.Is(err, tokens.ErrInvalidToken):
		return http.StatusUnauthorized, apiError(CodeBadAuth, "bad auth")
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, storage.ErrInsufficientFunds):
		return http.StatusBadRequest, apiError(CodeNotEnough, "not enough balance")
	case errors.Is(err, credentials.ErrUnknownPartner):
		return http.StatusBadRequest, apiError(CodeBadPartner, "bad partner")
	case errors.Is(err, service.ErrInvalidInvoice):
		return http.StatusBadRequest, apiError(CodeBadInvoice, "invalid invoice")
	case errors.Is(err, service.ErrRouteNotFound):
		return http.StatusBadRequest, apiError(CodeRouteNotFound, "route not found")
	case errors.Is(err, service.ErrNodeFailure),
		errors.Is(err, service.ErrPaymentPending):
		return http.StatusBadGateway, apiError(CodeNodeFailure, "node failure")
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, apiError(CodeServerError, "not found")
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, storage.ErrConflict),
		errors.Is(err, storage.ErrAlreadyExists):
		return http.StatusConflict, apiError(CodeServerError, "conflict")
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, apiError(CodeServerError, "bad request")
	default:
		return http.StatusInternalServerError, apiError(CodeServerError, "server error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func apiError(code int, msg string) APIError {
	return APIError{Error: true, Code: code, Message: msg}
}
