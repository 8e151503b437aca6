package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-lightning-hub/internal/lightning"
	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
	"github.com/pribylovaa/go-lightning-hub/pkg/log"
)

// ReconcilePending сверяет pending-записи леджера с фактическим состоянием
// ноды и доводит их до терминального статуса. Вызывается фоновым воркером;
// один проход обрабатывает все pending-записи на момент выборки.
//
// Гонка с обработчиком, завершившим запись между выборкой и обновлением,
// разрешается на стороне хранилища: ErrConflict здесь не ошибка.
func (s *Service) ReconcilePending(ctx context.Context) error {
	const op = "service.reconcile.ReconcilePending"

	pending, err := s.ledger.Pending(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg := log.From(ctx)

	for i := range pending {
		tx := &pending[i]

		// Ончейн-поступления подтверждает внешний наблюдатель блокчейна,
		// здесь их не трогаем.
		if tx.PaymentType != models.PaymentOffchain {
			continue
		}

		var rerr error
		switch tx.TransferType {
		case models.TransferReceive:
			rerr = s.reconcileReceive(ctx, tx)
		case models.TransferSend:
			rerr = s.reconcileSend(ctx, tx)
		}

		if rerr != nil && !errors.Is(rerr, storage.ErrConflict) {
			lg.Warn("reconcile failed",
				"tx_id", tx.ID.String(),
				"err", rerr.Error(),
			)
		}
	}

	return nil
}

func (s *Service) reconcileReceive(ctx context.Context, tx *models.Transaction) error {
	state, err := s.ln.InvoiceStatus(ctx, tx.ExternalID)
	if err != nil {
		return err
	}

	switch state {
	case lightning.InvoiceSettled:
		_, err = s.store.CompleteReceive(ctx, tx.ID)
		return err
	case lightning.InvoiceCanceled:
		_, err = s.store.ResolveTransaction(ctx, tx.ID, models.StatusExpired)
		return err
	default:
		return nil
	}
}

func (s *Service) reconcileSend(ctx context.Context, tx *models.Transaction) error {
	state, err := s.ln.PaymentStatus(ctx, tx.ExternalID)
	if err != nil {
		return err
	}

	switch state {
	case lightning.PaymentSucceeded:
		_, err = s.store.CompleteSend(ctx, tx.ID, tx.Fee)
		return err
	case lightning.PaymentFailed:
		_, err = s.store.ResolveTransaction(ctx, tx.ID, models.StatusCancelled)
		return err
	default:
		return nil
	}
}
