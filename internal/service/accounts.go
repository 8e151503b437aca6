package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
)

// Account — учётные данные нового аккаунта.
// Password возвращается в открытом виде ровно один раз.
type Account struct {
	Login    string
	Password string
}

// CreateAccount создаёт новый аккаунт кошелька со сгенерированными
// логином и одноразовым паролем.
func (s *Service) CreateAccount(ctx context.Context, partnerID, accountType string) (*Account, error) {
	const op = "service.accounts.CreateAccount"

	user, password, err := s.creds.CreateAccount(ctx, partnerID, accountType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Account{
		Login:    user.Login,
		Password: password,
	}, nil
}

// userByID достаёт пользователя, маппя отсутствие в ErrNotFound.
func (s *Service) userByID(ctx context.Context, op string, id uuid.UUID) (*models.User, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return user, nil
}
