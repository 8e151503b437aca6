package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
)

// invoicePayload — непрозрачный пейлоад записи леджера с сырым payment request.
type invoicePayload struct {
	PaymentRequest string `json:"payment_request"`
}

func invoiceData(paymentRequest string) string {
	raw, _ := json.Marshal(invoicePayload{PaymentRequest: paymentRequest})
	return string(raw)
}

// PaymentRequestFromData достаёт payment request из пейлоада записи.
func PaymentRequestFromData(data string) string {
	var p invoicePayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return ""
	}

	return p.PaymentRequest
}

// CreateInvoice выпускает инвойс на приём средств и создаёт pending
// receive в леджере. Баланс не меняется до подтверждения settlement.
func (s *Service) CreateInvoice(ctx context.Context, userID uuid.UUID, amount int64, memo string) (*models.Transaction, error) {
	const op = "service.invoices.CreateInvoice"

	if amount <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrValidation)
	}

	if _, err := s.userByID(ctx, op, userID); err != nil {
		return nil, err
	}

	invoice, err := s.ln.CreateInvoice(ctx, amount, memo, s.cfg.InvoiceExpiry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNodeFailure)
	}

	tx := &models.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		ExternalID:   invoice.PaymentHash,
		Amount:       amount,
		Timestamp:    s.now().UTC(),
		PaymentType:  models.PaymentOffchain,
		TransferType: models.TransferReceive,
		Status:       models.StatusPending,
		Data:         invoiceData(invoice.PaymentRequest),
	}

	if err := s.store.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

// UserInvoices возвращает оффчейн-инвойсы пользователя.
func (s *Service) UserInvoices(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	const op = "service.invoices.UserInvoices"

	txs, err := s.ledger.UserInvoices(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}

// Transactions возвращает страницу истории пользователя.
func (s *Service) Transactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	const op = "service.invoices.Transactions"

	txs, err := s.ledger.History(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}

// Transaction возвращает запись леджера по ID.
// Чужая транзакция неотличима от несуществующей (ErrNotFound).
func (s *Service) Transaction(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error) {
	const op = "service.invoices.Transaction"

	tx, err := s.store.TransactionByID(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if tx.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return tx, nil
}
