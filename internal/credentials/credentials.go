// credentials реализует хранилище учётных данных кошелька:
// создание аккаунтов со сгенерированными логином и одноразовым паролем,
// поиск пользователей и проверку пароля (bcrypt).
//
// Пароль в открытом виде возвращается ровно один раз — при создании
// аккаунта; дальше хранится только bcrypt-хэш.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
)

var (
	// ErrUnknownPartner — partner_id не входит в список разрешённых партнёров.
	// Транспорт: код 3 (bad partner), HTTP 400.
	ErrUnknownPartner = errors.New("unknown partner")
)

// defaultAccountType — тип аккаунта по умолчанию.
const defaultAccountType = "common"

// Store — хранилище учётных данных поверх storage.UserStorage.
type Store struct {
	users    storage.UserStorage
	partners map[string]struct{} // пустая карта = партнёры не ограничены.
}

// New создаёт Store. partners — список разрешённых partner_id;
// пустой список снимает ограничение.
func New(users storage.UserStorage, partners []string) *Store {
	set := make(map[string]struct{}, len(partners))
	for _, p := range partners {
		set[p] = struct{}{}
	}

	return &Store{users: users, partners: set}
}

// CreateAccount создаёт нового пользователя со сгенерированными логином
// и одноразовым паролем. Возвращает пользователя и пароль в открытом виде.
func (s *Store) CreateAccount(ctx context.Context, partnerID, accountType string) (*models.User, string, error) {
	const op = "credentials.CreateAccount"

	if partnerID != "" && len(s.partners) > 0 {
		if _, ok := s.partners[partnerID]; !ok {
			return nil, "", fmt.Errorf("%s: %w", op, ErrUnknownPartner)
		}
	}

	if accountType == "" {
		accountType = defaultAccountType
	}

	password := uuid.NewString()
	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Login:        uuid.NewString(),
		PasswordHash: hash,
		PartnerID:    partnerID,
		AccountType:  accountType,
		Addresses:    []string{},
		Balance:      0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return user, password, nil
}

// ByLogin находит пользователя по логину.
func (s *Store) ByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "credentials.ByLogin"

	user, err := s.users.UserByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ByID находит пользователя по ID.
func (s *Store) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "credentials.ByID"

	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// CheckPassword сравнивает пароль с хэшем пользователя.
func (s *Store) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "credentials.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}
