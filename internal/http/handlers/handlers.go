// handlers реализует LNDHub-совместимые REST-хендлеры гейтвея.
//
// Все хендлеры отдают ошибки через apierrors.WriteError — тело вида
// {"error":true,"code":N,...} с числовыми кодами протокола.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-lightning-hub/internal/http/middleware"
	"github.com/pribylovaa/go-lightning-hub/internal/service"
	"github.com/pribylovaa/go-lightning-hub/internal/tokens"
)

// Handlers агрегирует зависимости (сервисный слой и менеджер токенов).
type Handlers struct {
	Service *service.Service
	Tokens  *tokens.Manager
}

func New(svc *service.Service, tm *tokens.Manager) *Handlers {
	return &Handlers{Service: svc, Tokens: tm}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errValidation — локальная ошибка парсинга входных данных -> 400/6.
func errValidation() error {
	return fmt.Errorf("handlers: %w", service.ErrValidation)
}

// userID достаёт ID пользователя, положенный AuthBearer.
// Отсутствие означает ошибку конфигурации роутера.
func userID(ctx context.Context) (uuid.UUID, error) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		return uuid.Nil, tokens.ErrInvalidToken
	}

	return id, nil
}

// queryInt разбирает числовой query-параметр; пустое значение даёт def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errValidation()
	}

	return v, nil
}
