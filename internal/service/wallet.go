package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// BalanceSummary — сводка баланса пользователя.
//
// Available — авторитетный спендабельный баланс; Unconfirmed — сумма
// неподтверждённых входящих ончейн-транзакций; Total — их сумма.
type BalanceSummary struct {
	Total       int64
	Available   int64
	Unconfirmed int64
}

// Balance возвращает сводку баланса пользователя.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (*BalanceSummary, error) {
	const op = "service.wallet.Balance"

	user, err := s.userByID(ctx, op, userID)
	if err != nil {
		return nil, err
	}

	unconfirmed, err := s.ledger.PendingReceiveTotal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &BalanceSummary{
		Total:       user.Balance + unconfirmed,
		Available:   user.Balance,
		Unconfirmed: unconfirmed,
	}, nil
}

// PendingBalance возвращает сумму неподтверждённых входящих средств.
func (s *Service) PendingBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "service.wallet.PendingBalance"

	if _, err := s.userByID(ctx, op, userID); err != nil {
		return 0, err
	}

	total, err := s.ledger.PendingReceiveTotal(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

// CurrentAddress возвращает последний выданный депозитный адрес;
// если адресов ещё нет — лениво выдаёт первый через ноду.
func (s *Service) CurrentAddress(ctx context.Context, userID uuid.UUID) (string, error) {
	const op = "service.wallet.CurrentAddress"

	user, err := s.userByID(ctx, op, userID)
	if err != nil {
		return "", err
	}

	if addr := user.CurrentAddress(); addr != "" {
		return addr, nil
	}

	return s.NewAddress(ctx, userID)
}

// NewAddress запрашивает у ноды свежий депозитный адрес и дописывает его
// в историю пользователя. Адрес в рамках одного вызова никогда не
// переиспользуется — нода выдаёт новый.
func (s *Service) NewAddress(ctx context.Context, userID uuid.UUID) (string, error) {
	const op = "service.wallet.NewAddress"

	if _, err := s.userByID(ctx, op, userID); err != nil {
		return "", err
	}

	addr, err := s.ln.DepositAddress(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrNodeFailure)
	}

	if err := s.store.AppendAddress(ctx, userID, addr); err != nil {
		return "", fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return addr, nil
}
