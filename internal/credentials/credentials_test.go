package credentials

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/mocks"
)

func TestCreateAccount_GeneratedCredentials(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	s := New(st, nil)

	var saved *models.User
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		})

	user, password, err := s.CreateAccount(context.Background(), "", "")
	require.NoError(t, err)
	require.NotEmpty(t, user.Login)
	require.NotEmpty(t, password)
	require.Equal(t, "common", user.AccountType)

	// Хранится только bcrypt-хэш; открытый пароль проверяется против него.
	require.NotNil(t, saved)
	require.NotEqual(t, password, saved.PasswordHash)
	require.True(t, s.CheckPassword(saved, password))
	require.False(t, s.CheckPassword(saved, "wrong"))
}

func TestCreateAccount_PartnerList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStorage(ctrl)
	s := New(st, []string{"partner-a"})

	// Разрешённый партнёр проходит.
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
	user, _, err := s.CreateAccount(context.Background(), "partner-a", "vip")
	require.NoError(t, err)
	require.Equal(t, "partner-a", user.PartnerID)
	require.Equal(t, "vip", user.AccountType)

	// Неизвестный — отклоняется до записи.
	_, _, err = s.CreateAccount(context.Background(), "partner-x", "")
	require.ErrorIs(t, err, ErrUnknownPartner)
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := New(mocks.NewMockStorage(ctrl), nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{PasswordHash: string(hash)}
	require.True(t, s.CheckPassword(u, "secret"))
	require.False(t, s.CheckPassword(u, "Secret"))
}
