package models

import "github.com/google/uuid"

// TransactionFilter — фильтр выборки по леджеру.
//
// Семантика измерений:
//   - пустой набор по измерению означает "без ограничения", а не "ничего";
//   - внутри измерения элементы объединяются по ИЛИ;
//   - непустые измерения комбинируются по И.
//
// Порядок результата фильтром не задаётся — сортировка на вызывающей стороне.
type TransactionFilter struct {
	UserIDs       []uuid.UUID
	PaymentTypes  []PaymentType
	TransferTypes []TransferType
	Statuses      []TransactionStatus
}

// Matches сообщает, подпадает ли транзакция под фильтр.
// Используется in-memory реализациями и тестами; SQL-хранилище
// транслирует ту же семантику в WHERE-условия.
func (f TransactionFilter) Matches(tx *Transaction) bool {
	if len(f.UserIDs) > 0 && !containsUUID(f.UserIDs, tx.UserID) {
		return false
	}

	if len(f.PaymentTypes) > 0 && !contains(f.PaymentTypes, tx.PaymentType) {
		return false
	}

	if len(f.TransferTypes) > 0 && !contains(f.TransferTypes, tx.TransferType) {
		return false
	}

	if len(f.Statuses) > 0 && !contains(f.Statuses, tx.Status) {
		return false
	}

	return true
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}

	return false
}

func containsUUID(set []uuid.UUID, v uuid.UUID) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}

	return false
}
