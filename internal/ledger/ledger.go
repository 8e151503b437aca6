// ledger — движок выборок по леджеру транзакций.
//
// Пакет строит типовые фильтры (models.TransactionFilter) поверх
// storage.TransactionStorage и отвечает на запросы баланса и истории.
// Семантика фильтра: пустое измерение — "без ограничения", непустые
// измерения комбинируются по И, внутри измерения — по ИЛИ.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
)

// Service выполняет выборки и агрегаты по леджеру.
type Service struct {
	store storage.TransactionStorage
}

// New создаёт Service.
func New(store storage.TransactionStorage) *Service {
	return &Service{store: store}
}

// Query возвращает записи, подпадающие под фильтр. Порядок не гарантируется —
// сортировка на вызывающей стороне.
func (s *Service) Query(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	const op = "ledger.Query"

	txs, err := s.store.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}

// History возвращает страницу истории пользователя (свежие первыми).
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	const op = "ledger.History"

	txs, err := s.store.TransactionsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}

// UserInvoices возвращает оффчейн-инвойсы пользователя (receive, любой статус).
func (s *Service) UserInvoices(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	const op = "ledger.UserInvoices"

	txs, err := s.store.ListTransactions(ctx, models.TransactionFilter{
		UserIDs:       []uuid.UUID{userID},
		PaymentTypes:  []models.PaymentType{models.PaymentOffchain},
		TransferTypes: []models.TransferType{models.TransferReceive},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}

// PendingReceiveTotal возвращает сумму неподтверждённых входящих
// ончейн-транзакций пользователя (unconfirmed balance).
func (s *Service) PendingReceiveTotal(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "ledger.PendingReceiveTotal"

	txs, err := s.store.ListTransactions(ctx, models.TransactionFilter{
		UserIDs:       []uuid.UUID{userID},
		PaymentTypes:  []models.PaymentType{models.PaymentOnchain},
		TransferTypes: []models.TransferType{models.TransferReceive},
		Statuses:      []models.TransactionStatus{models.StatusPending},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int64
	for _, tx := range txs {
		total += tx.Amount
	}

	return total, nil
}

// Pending возвращает все незавершённые записи леджера (для реконсиляции).
func (s *Service) Pending(ctx context.Context) ([]models.Transaction, error) {
	const op = "ledger.Pending"

	txs, err := s.store.ListTransactions(ctx, models.TransactionFilter{
		Statuses: []models.TransactionStatus{models.StatusPending},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}
