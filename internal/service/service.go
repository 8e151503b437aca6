// service содержит бизнес-логику кошелька-гейтвея:
// создание аккаунтов, учёт баланса и леджера, платежи и инвойсы
// через клиент платёжной ноды.
//
// Основные аспекты:
//   - экземпляр Service безопасен для конкурентного использования при
//     потокобезопасных зависимостях (storage, клиент ноды);
//   - атомарные точки — изъятие refresh-токена (пакет tokens) и
//     списание/зачисление баланса (SQL-транзакция в storage);
//   - неуспешная операция не оставляет частичных изменений баланса
//     или леджера; внутренних ретраев нет.
package service

import (
	"errors"
	"time"

	"github.com/pribylovaa/go-lightning-hub/internal/config"
	"github.com/pribylovaa/go-lightning-hub/internal/credentials"
	"github.com/pribylovaa/go-lightning-hub/internal/ledger"
	"github.com/pribylovaa/go-lightning-hub/internal/lightning"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
)

var (
	// ErrNotFound — неизвестный пользователь или транзакция.
	// Транспорт: HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrValidation — некорректные поля запроса (сумма <= 0 и т.п.).
	// Транспорт: HTTP 400.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientFunds — баланс не покрывает сумму с комиссией.
	// Операция не оставляет следов в леджере. Код 2, HTTP 400.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidInvoice — payment request не разбирается или не наш.
	// Код 4, HTTP 400.
	ErrInvalidInvoice = errors.New("invalid invoice")

	// ErrRouteNotFound — маршрут до получателя не найден. Код 5, HTTP 400.
	ErrRouteNotFound = errors.New("route not found")

	// ErrNodeFailure — ошибка клиента платёжной ноды. Код 7, HTTP 502.
	ErrNodeFailure = errors.New("node failure")

	// ErrPaymentPending — исход платежа неизвестен (таймаут ноды);
	// транзакция остаётся pending до реконсиляции. Код 7, HTTP 502.
	ErrPaymentPending = errors.New("payment status unknown")

	// ErrConflict — повторный переход уже терминальной транзакции.
	// Баланс не меняется. Транспорт: HTTP 409.
	ErrConflict = errors.New("status conflict")
)

// Service описывает бизнес-логику кошелька.
type Service struct {
	store  storage.Storage
	creds  *credentials.Store
	ledger *ledger.Service
	ln     lightning.Client
	cfg    config.WalletConfig
	now    func() time.Time
}

// New создаёт новый экземпляр Service.
func New(store storage.Storage, creds *credentials.Store, led *ledger.Service, ln lightning.Client, cfg config.WalletConfig) *Service {
	return &Service{
		store:  store,
		creds:  creds,
		ledger: led,
		ln:     ln,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SetClock подменяет источник времени (для детерминированных тестов).
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// mapStorageErr переводит ошибки хранилища в доменные.
func mapStorageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrConflict):
		return ErrConflict
	case errors.Is(err, storage.ErrInsufficientFunds):
		return ErrInsufficientFunds
	default:
		return err
	}
}
