// lightning задаёт контракт клиента платёжной ноды.
//
// Гейтвей не разбирает сетевые форматы сам: парсинг инвойсов, маршрутизация
// и ончейн-адреса — ответственность ноды. Клиент непрозрачен для ядра и
// инжектируется как явная зависимость (см. реализацию LND REST в lnd.go).
package lightning

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidInvoice — нода не смогла разобрать payment request
	// или он относится к другой сети.
	ErrInvalidInvoice = errors.New("invalid invoice")
	// ErrNoRoute — маршрут до получателя не найден.
	ErrNoRoute = errors.New("no route")
	// ErrPaymentFailed — нода сообщила об ошибке платежа.
	ErrPaymentFailed = errors.New("payment failed")
)

// Invoice — расшифрованный платёжный запрос.
type Invoice struct {
	PaymentRequest string
	PaymentHash    string
	Destination    string
	Amount         int64 // в минимальных единицах (сатоши).
	Description    string
	Timestamp      time.Time
	Expiry         time.Duration
}

// Route — сведения о найденном маршруте платежа.
type Route struct {
	TotalAmount int64
	TotalFees   int64
	Hops        int
}

// PaymentResult — результат исполнения платежа нодой.
type PaymentResult struct {
	Preimage    string
	PaymentHash string
	FeePaid     int64
	Route       *Route
}

// NodeInfo — сводка о состоянии ноды.
type NodeInfo struct {
	Pubkey        string
	Alias         string
	BlockHeight   uint32
	NumPeers      int
	SyncedToChain bool
	Version       string
}

// InvoiceState — состояние инвойса на стороне ноды.
type InvoiceState string

const (
	InvoiceOpen     InvoiceState = "open"
	InvoiceSettled  InvoiceState = "settled"
	InvoiceCanceled InvoiceState = "canceled"
)

// PaymentState — состояние исходящего платежа на стороне ноды.
type PaymentState string

const (
	PaymentInFlight  PaymentState = "in_flight"
	PaymentSucceeded PaymentState = "succeeded"
	PaymentFailed    PaymentState = "failed"
)

// Client — операции платёжной ноды, потребляемые гейтвеем.
// Все вызовы — потенциально медленный I/O и принимают контекст.
type Client interface {
	// Connect устанавливает соединение с пиром (pubkey@host:port).
	Connect(ctx context.Context, peer string) error
	// DepositAddress запрашивает новый ончейн-адрес.
	DepositAddress(ctx context.Context) (string, error)
	// Pay оплачивает payment request.
	Pay(ctx context.Context, invoice string) (*PaymentResult, error)
	// CreateInvoice выпускает инвойс на приём средств.
	CreateInvoice(ctx context.Context, amount int64, description string, expiry time.Duration) (*Invoice, error)
	// DecodeInvoice расшифровывает payment request без оплаты.
	DecodeInvoice(ctx context.Context, invoice string) (*Invoice, error)
	// QueryRoute ищет маршрут до получателя на заданную сумму.
	QueryRoute(ctx context.Context, destination string, amount int64) (*Route, error)
	// InvoiceStatus возвращает состояние инвойса по payment hash.
	InvoiceStatus(ctx context.Context, paymentHash string) (InvoiceState, error)
	// PaymentStatus возвращает состояние исходящего платежа по payment hash.
	PaymentStatus(ctx context.Context, paymentHash string) (PaymentState, error)
	// Info возвращает сводку о ноде.
	Info(ctx context.Context) (*NodeInfo, error)
}
