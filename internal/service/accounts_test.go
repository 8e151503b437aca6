package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-lightning-hub/internal/credentials"
	"github.com/pribylovaa/go-lightning-hub/internal/models"
)

func TestCreateAccount_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	var saved *models.User
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		})

	acc, err := svc.CreateAccount(context.Background(), "partner-a", "")
	require.NoError(t, err)
	require.NotEmpty(t, acc.Login)
	require.NotEmpty(t, acc.Password)

	// В хранилище уходит bcrypt-хэш, не открытый пароль.
	require.NotNil(t, saved)
	require.NotEqual(t, acc.Password, saved.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte(acc.Password)))
	require.Equal(t, "common", saved.AccountType)
	require.Equal(t, int64(0), saved.Balance)
}

// TestCreateAccount_UnknownPartner — partner_id вне списка отклоняется
// до какой-либо записи.
func TestCreateAccount_UnknownPartner(t *testing.T) {
	t.Parallel()

	svc, _, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreateAccount(context.Background(), "partner-unknown", "")
	require.ErrorIs(t, err, credentials.ErrUnknownPartner)
}
