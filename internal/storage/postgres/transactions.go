package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
)

const txColumns = `id, user_id, external_id, destination, amount, fee, timestamp, payment_type, transfer_type, status, data`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.ExternalID,
		&tx.Destination,
		&tx.Amount,
		&tx.Fee,
		&tx.Timestamp,
		&tx.PaymentType,
		&tx.TransferType,
		&tx.Status,
		&tx.Data,
	)
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

// SaveTransaction создаёт новую запись леджера.
func (s *Storage) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	const op = "storage.postgres.SaveTransaction"

	query := `
        INSERT INTO transactions(` + txColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `

	_, err := s.db.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.ExternalID,
		tx.Destination,
		tx.Amount,
		tx.Fee,
		tx.Timestamp,
		tx.PaymentType,
		tx.TransferType,
		tx.Status,
		tx.Data,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TransactionByID находит запись по ID.
func (s *Storage) TransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	const op = "storage.postgres.TransactionByID"

	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

// ListTransactions возвращает записи, подпадающие под фильтр.
// Пустое измерение фильтра не ограничивает выборку; непустые измерения
// объединяются по И, внутри измерения — по ИЛИ (= ANY).
// Порядок результата не гарантируется.
func (s *Storage) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	const op = "storage.postgres.ListTransactions"

	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.UserIDs) > 0 {
		conds = append(conds, "user_id = ANY("+arg(filter.UserIDs)+")")
	}
	if len(filter.PaymentTypes) > 0 {
		conds = append(conds, "payment_type = ANY("+arg(toStrings(filter.PaymentTypes))+")")
	}
	if len(filter.TransferTypes) > 0 {
		conds = append(conds, "transfer_type = ANY("+arg(toStrings(filter.TransferTypes))+")")
	}
	if len(filter.Statuses) > 0 {
		conds = append(conds, "status = ANY("+arg(toStrings(filter.Statuses))+")")
	}

	query := `SELECT ` + txColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return collectTransactions(op, rows)
}

// TransactionsByUser возвращает страницу истории пользователя.
// Сортировка фиксирована: timestamp DESC, id DESC.
func (s *Storage) TransactionsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	const op = "storage.postgres.TransactionsByUser"

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + txColumns + `
        FROM transactions
        WHERE user_id = $1
        ORDER BY timestamp DESC, id DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := s.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return collectTransactions(op, rows)
}

// CompleteReceive переводит pending receive в complete и зачисляет amount
// владельцу. Переход и зачисление выполняются в одной SQL-транзакции.
func (s *Storage) CompleteReceive(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	const op = "storage.postgres.CompleteReceive"

	return s.completeTx(ctx, op, id, func(tx *models.Transaction) int64 {
		return tx.Amount
	}, nil)
}

// CompleteSend переводит pending send в complete, фиксирует фактическую
// комиссию и списывает amount+fee. Если списание увело бы баланс в минус,
// транзакция БД откатывается и возвращается ErrInsufficientFunds.
func (s *Storage) CompleteSend(ctx context.Context, id uuid.UUID, fee int64) (*models.Transaction, error) {
	const op = "storage.postgres.CompleteSend"

	return s.completeTx(ctx, op, id, func(tx *models.Transaction) int64 {
		return -(tx.Amount + tx.Fee)
	}, &fee)
}

// completeTx — общий путь завершения pending-записи: guard по статусу,
// опциональная фиксация комиссии и атомарное изменение баланса владельца.
func (s *Storage) completeTx(ctx context.Context, op string, id uuid.UUID, delta func(*models.Transaction) int64, fee *int64) (*models.Transaction, error) {
	dbTx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer dbTx.Rollback(ctx)

	var (
		row pgx.Row
		upd = `
            UPDATE transactions
            SET status = 'complete'
            WHERE id = $1 AND status = 'pending'
            RETURNING ` + txColumns
	)

	if fee != nil {
		upd = `
            UPDATE transactions
            SET status = 'complete', fee = $2
            WHERE id = $1 AND status = 'pending'
            RETURNING ` + txColumns
		row = dbTx.QueryRow(ctx, upd, id, *fee)
	} else {
		row = dbTx.QueryRow(ctx, upd, id)
	}

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyMissing(ctx, op, id)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := delta(tx)

	cmdTag, err := dbTx.Exec(ctx, `
        UPDATE users
        SET balance = balance + $2, updated_at = now()
        WHERE id = $1 AND balance + $2 >= 0
    `, tx.UserID, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInsufficientFunds)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

// ResolveTransaction переводит pending-запись в терминальный статус
// expired/cancelled без изменения баланса.
func (s *Storage) ResolveTransaction(ctx context.Context, id uuid.UUID, status models.TransactionStatus) (*models.Transaction, error) {
	const op = "storage.postgres.ResolveTransaction"

	if !status.Terminal() || status == models.StatusComplete {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
	}

	query := `
        UPDATE transactions
        SET status = $2
        WHERE id = $1 AND status = 'pending'
        RETURNING ` + txColumns

	tx, err := scanTransaction(s.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyMissing(ctx, op, id)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

// classifyMissing различает "записи нет" и "запись уже терминальна":
// guard WHERE status='pending' отдал 0 строк в обоих случаях.
func (s *Storage) classifyMissing(ctx context.Context, op string, id uuid.UUID) error {
	var status models.TransactionStatus
	err := s.db.QueryRow(ctx, `SELECT status FROM transactions WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w", op, storage.ErrConflict)
}

func collectTransactions(op string, rows pgx.Rows) ([]models.Transaction, error) {
	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, string(v))
	}

	return out
}
