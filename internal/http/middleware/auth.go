package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-lightning-hub/internal/errors"
	"github.com/pribylovaa/go-lightning-hub/internal/tokens"
)

type userIDKey struct{}

// TokenValidator — проверка access-токена; контракт tokens.Manager.
type TokenValidator interface {
	Validate(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// AuthBearer извлекает Bearer-токен из Authorization, валидирует его
// и кладёт ID владельца в контекст. Запросы без валидного токена
// отклоняются с 401/1, не доходя до хендлера.
//
// Вешается только на защищённые роуты (см. router.go): /create и /auth
// работают без токена.
func AuthBearer(tv TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, tokens.ErrInvalidToken)
				return
			}

			userID, err := tv.Validate(r.Context(), token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID возвращает ID пользователя, положенный AuthBearer.
// false означает, что запрос не прошёл через AuthBearer.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
