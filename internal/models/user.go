package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя-кошелька.
//
// Balance — авторитетный баланс в минимальных единицах валюты (сатоши);
// поддерживается транзакционно вместе с переходами статусов транзакций
// и никогда не уходит в минус.
// Addresses — история выданных депозитных адресов (append-only,
// последний элемент — самый свежий).
type User struct {
	ID           uuid.UUID
	Login        string
	PasswordHash string
	PartnerID    string
	AccountType  string
	Addresses    []string
	Balance      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CurrentAddress возвращает последний выданный депозитный адрес
// или пустую строку, если адреса ещё не выдавались.
func (u *User) CurrentAddress() string {
	if len(u.Addresses) == 0 {
		return ""
	}

	return u.Addresses[len(u.Addresses)-1]
}
