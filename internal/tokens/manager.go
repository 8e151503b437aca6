// tokens реализует менеджер непрозрачных bearer-токенов:
// выпуск, валидацию и одноразовую ротацию пар access+refresh.
//
// Основные аспекты:
//   - токены — случайные непрозрачные идентификаторы; отображение
//     токен -> пользователь живёт только в Store, подписи и claims нет;
//   - пара access+refresh выпускается и инвалидируются целиком; использование
//     refresh-токена атомарно изымает оба члена пары, при конкурентной ротации
//     одного токена выигрывает ровно один вызов;
//   - ответ валидации не различает "токена не было" и "токен истёк" —
//     наружу уходит единый ErrInvalidToken.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Транспорт: код 1 (bad auth), HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh) отсутствует, истёк или уже
	// использован. Единая ошибка — причину отказа наружу не раскрываем.
	// Транспорт: код 1 (bad auth), HTTP 401.
	ErrInvalidToken = errors.New("invalid token")
)

// CredentialStore — контракт хранилища учётных данных, потребляемый менеджером.
type CredentialStore interface {
	ByLogin(ctx context.Context, login string) (*models.User, error)
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
}

// AuthorizeRequest — запрос авторизации: либо логин+пароль, либо refresh-токен.
// Непустой RefreshToken имеет приоритет.
type AuthorizeRequest struct {
	Login        string
	Password     string
	RefreshToken string
}

// Manager выпускает, проверяет и ротирует пары токенов.
// Экземпляр безопасен для конкурентного использования.
type Manager struct {
	store Store
	creds CredentialStore
	ttl   time.Duration
	now   func() time.Time
}

// New создаёт Manager. now == nil означает time.Now.
func New(store Store, creds CredentialStore, ttl time.Duration, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}

	return &Manager{
		store: store,
		creds: creds,
		ttl:   ttl,
		now:   now,
	}
}

// Issue выпускает новую пару токенов для пользователя.
func (m *Manager) Issue(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	const op = "tokens.Manager.Issue"

	rec := Record{
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
		UserID:       user.ID,
		ExpiresAt:    m.now().UTC().Add(m.ttl),
	}

	if err := m.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
		ExpiresAt:    rec.ExpiresAt,
	}, nil
}

// Validate проверяет access-токен и возвращает ID владельца.
// Отсутствующий и истёкший токены дают одинаковый ErrInvalidToken.
func (m *Manager) Validate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	const op = "tokens.Manager.Validate"

	if accessToken == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	rec, ok, err := m.store.Access(ctx, accessToken)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	// Store с ленивой эвикцией мог отдать просроченную запись — перепроверяем.
	if !ok || !m.now().Before(rec.ExpiresAt) {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return rec.UserID, nil
}

// Authorize выполняет вход по логину+паролю или ротацию по refresh-токену
// и возвращает свежую пару токенов.
func (m *Manager) Authorize(ctx context.Context, req AuthorizeRequest) (*models.TokenPair, error) {
	const op = "tokens.Manager.Authorize"

	if req.RefreshToken != "" {
		pair, err := m.refresh(ctx, req.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return pair, nil
	}

	pair, err := m.login(ctx, req.Login, req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// refresh — одноразовая ротация: изъять пару, переразрешить пользователя, выпустить новую.
func (m *Manager) refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "tokens.Manager.refresh"

	rec, ok, err := m.store.ConsumeRefresh(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !ok || !m.now().Before(rec.ExpiresAt) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	user, err := m.creds.ByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m.Issue(ctx, user)
}

// login — вход по логину и паролю.
// Неизвестный логин и неверный пароль дают одинаковый отказ.
func (m *Manager) login(ctx context.Context, login, password string) (*models.TokenPair, error) {
	const op = "tokens.Manager.login"

	if login == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := m.creds.ByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !m.creds.CheckPassword(user, password) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return m.Issue(ctx, user)
}

// Sweep удаляет просроченные записи из хранилища токенов (для фоновой уборки).
func (m *Manager) Sweep(ctx context.Context) error {
	const op = "tokens.Manager.Sweep"

	if err := m.store.Sweep(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
