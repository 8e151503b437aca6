package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
	"github.com/pribylovaa/go-lightning-hub/internal/storage"
)

func TestUsers_SaveAndFind(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := mustUser(t, st, 100)

	byLogin, err := st.UserByLogin(ctx, u.Login)
	require.NoError(t, err)
	require.Equal(t, u.ID, byLogin.ID)
	require.Equal(t, int64(100), byLogin.Balance)

	byID, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Login, byID.Login)
}

func TestUsers_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	_, err := st.UserByLogin(ctx, "no-such-login")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.UserByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestUsers_DuplicateLogin — уникальность логина маппится в ErrAlreadyExists.
func TestUsers_DuplicateLogin(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := mustUser(t, st, 0)

	now := time.Now().UTC()
	dup := &models.User{
		ID:           uuid.New(),
		Login:        u.Login,
		PasswordHash: "other",
		AccountType:  "common",
		Addresses:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := st.SaveUser(ctx, dup)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestUsers_AppendAddress — история адресов append-only,
// последний элемент — самый свежий.
func TestUsers_AppendAddress(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := mustUser(t, st, 0)

	require.NoError(t, st.AppendAddress(ctx, u.ID, "bc1first"))
	require.NoError(t, st.AppendAddress(ctx, u.ID, "bc1second"))

	got, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"bc1first", "bc1second"}, got.Addresses)
	require.Equal(t, "bc1second", got.CurrentAddress())
}

func TestUsers_AppendAddress_UnknownUser(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	err := st.AppendAddress(context.Background(), uuid.New(), "bc1addr")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
