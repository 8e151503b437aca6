package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-lightning-hub/internal/lightning"
	"github.com/pribylovaa/go-lightning-hub/internal/models"
)

// PayInvoice оплачивает payment request с баланса пользователя.
//
// Порядок: расшифровка инвойса -> проверка покрытия amount+fee (иначе
// ErrInsufficientFunds без записи в леджер) -> pending send -> вызов ноды
// -> терминальный переход. Списание происходит только при подтверждённом
// settlement и атомарно с переходом в complete. Таймаут ноды оставляет
// транзакцию pending ("исход неизвестен") до фоновой реконсиляции.
func (s *Service) PayInvoice(ctx context.Context, userID uuid.UUID, invoice string) (*models.Transaction, error) {
	const op = "service.payments.PayInvoice"

	if invoice == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInvoice)
	}

	decoded, err := s.ln.DecodeInvoice(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInvoice)
	}

	if decoded.Amount <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInvoice)
	}

	user, err := s.userByID(ctx, op, userID)
	if err != nil {
		return nil, err
	}

	// Проверка покрытия до какой-либо записи: при отказе леджер и баланс
	// остаются нетронутыми.
	if user.Balance < decoded.Amount+s.cfg.FeeLimit {
		return nil, fmt.Errorf("%s: %w", op, ErrInsufficientFunds)
	}

	tx := &models.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		ExternalID:   decoded.PaymentHash,
		Destination:  decoded.Destination,
		Amount:       decoded.Amount,
		Fee:          s.cfg.FeeLimit,
		Timestamp:    s.now().UTC(),
		PaymentType:  models.PaymentOffchain,
		TransferType: models.TransferSend,
		Status:       models.StatusPending,
		Data:         invoiceData(invoice),
	}

	if err := s.store.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payCtx := ctx
	if s.cfg.PayTimeout > 0 {
		var cancel context.CancelFunc
		payCtx, cancel = context.WithTimeout(ctx, s.cfg.PayTimeout)
		defer cancel()
	}

	result, err := s.ln.Pay(payCtx, invoice)
	if err != nil {
		switch {
		case payCtx.Err() != nil:
			// Исход неизвестен: запись остаётся pending, реконсиляция
			// переведёт её в терминальный статус по данным ноды.
			return nil, fmt.Errorf("%s: %w", op, ErrPaymentPending)
		case errors.Is(err, lightning.ErrNoRoute):
			return s.cancelPayment(ctx, op, tx.ID, ErrRouteNotFound)
		default:
			return s.cancelPayment(ctx, op, tx.ID, ErrNodeFailure)
		}
	}

	completed, err := s.store.CompleteSend(ctx, tx.ID, result.FeePaid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return completed, nil
}

// cancelPayment отменяет pending-платёж без изменения баланса и
// возвращает исходную причину отказа.
func (s *Service) cancelPayment(ctx context.Context, op string, txID uuid.UUID, cause error) (*models.Transaction, error) {
	if _, err := s.store.ResolveTransaction(ctx, txID, models.StatusCancelled); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return nil, fmt.Errorf("%s: %w", op, cause)
}

// DecodeInvoice расшифровывает payment request без оплаты.
func (s *Service) DecodeInvoice(ctx context.Context, invoice string) (*lightning.Invoice, error) {
	const op = "service.payments.DecodeInvoice"

	if invoice == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInvoice)
	}

	decoded, err := s.ln.DecodeInvoice(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInvoice)
	}

	return decoded, nil
}

// CheckRoute проверяет наличие маршрута до получателя на заданную сумму.
func (s *Service) CheckRoute(ctx context.Context, destination string, amount int64) (*lightning.Route, error) {
	const op = "service.payments.CheckRoute"

	if destination == "" || amount <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrValidation)
	}

	route, err := s.ln.QueryRoute(ctx, destination, amount)
	if err != nil {
		if errors.Is(err, lightning.ErrNoRoute) {
			return nil, fmt.Errorf("%s: %w", op, ErrRouteNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrNodeFailure)
	}

	return route, nil
}
