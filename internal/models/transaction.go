package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentType — тип платежа: ончейн или оффчейн (lightning).
type PaymentType string

const (
	PaymentOnchain  PaymentType = "onchain"
	PaymentOffchain PaymentType = "offchain"
)

// TransferType — направление перевода относительно владельца.
type TransferType string

const (
	TransferSend    TransferType = "send"
	TransferReceive TransferType = "receive"
)

// TransactionStatus — статус записи в леджере.
// Переходы однонаправленные: pending -> {complete, expired, cancelled};
// достигнутый терминальный статус больше не меняется.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusComplete  TransactionStatus = "complete"
	StatusExpired   TransactionStatus = "expired"
	StatusCancelled TransactionStatus = "cancelled"
)

// Terminal — true для статусов, из которых нет переходов.
func (s TransactionStatus) Terminal() bool {
	return s == StatusComplete || s == StatusExpired || s == StatusCancelled
}

// Transaction — запись леджера о платеже или инвойсе пользователя.
//
// ExternalID — идентификатор во внешней платёжной сети (payment hash
// инвойса или txid ончейн-перевода). Data — непрозрачный JSON-пейлоад
// (например, сырой payment request), который леджер не интерпретирует.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ExternalID   string
	Destination  string
	Amount       int64
	Fee          int64
	Timestamp    time.Time
	PaymentType  PaymentType
	TransferType TransferType
	Status       TransactionStatus
	Data         string
}
