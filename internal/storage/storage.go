package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/транзакция).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (логин/id).
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict — попытка перевести транзакцию из терминального статуса.
	// Повторный сигнал settlement никогда не приводит к двойному
	// списанию/зачислению — он наблюдает этот конфликт.
	ErrConflict = errors.New("status conflict")
	// ErrInsufficientFunds — списание увело бы баланс в минус.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByLogin находит пользователя по логину.
	UserByLogin(ctx context.Context, login string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// AppendAddress дописывает новый депозитный адрес в историю пользователя.
	AppendAddress(ctx context.Context, id uuid.UUID, address string) error
}

// TransactionStorage выполняет операции над леджером.
//
// Переходы статусов и сопутствующие изменения баланса атомарны:
// либо переход применён целиком и виден, либо не применён вовсе.
type TransactionStorage interface {
	// SaveTransaction создаёт новую запись леджера (обычно в статусе pending).
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	// TransactionByID находит запись по ID.
	TransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	// ListTransactions возвращает записи, подпадающие под фильтр.
	// Порядок не гарантируется.
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	// TransactionsByUser возвращает страницу истории пользователя,
	// отсортированную по времени (свежие первыми).
	TransactionsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error)
	// CompleteReceive переводит pending receive в complete и зачисляет
	// amount на баланс владельца. Терминальный статус -> ErrConflict.
	CompleteReceive(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	// CompleteSend переводит pending send в complete, фиксирует фактическую
	// комиссию fee и списывает amount+fee с баланса владельца.
	// Недостаток средств -> ErrInsufficientFunds (без изменений),
	// терминальный статус -> ErrConflict.
	CompleteSend(ctx context.Context, id uuid.UUID, fee int64) (*models.Transaction, error)
	// ResolveTransaction переводит pending-запись в указанный терминальный
	// статус (expired/cancelled) без изменения баланса.
	ResolveTransaction(ctx context.Context, id uuid.UUID, status models.TransactionStatus) (*models.Transaction, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	TransactionStorage
	Close()
}
