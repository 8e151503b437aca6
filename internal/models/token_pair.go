package models

import "time"

// TokenPair — пара токенов, выдаваемая при логине или ротации.
//
// Описание:
//   - AccessToken — непрозрачный случайный идентификатор для доступа к API;
//   - RefreshToken — парный одноразовый секрет для выпуска новой пары;
//   - ExpiresAt — момент истечения обоих токенов (UTC).
//
// Пара живёт и умирает целиком: использование refresh-токена атомарно
// инвалидирует оба члена пары.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
