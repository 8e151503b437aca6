package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/go-lightning-hub/internal/models"
)

// Общий каркас интеграционных тестов пакета postgres:
// - поднимает реальный PostgreSQL через testcontainers-go (postgres:16-alpine);
// - применяет миграции из ./migrations;
// - пропускается без GO_TEST_INTEGRATION.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — корень репозитория относительно текущего файла.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — временный PostgreSQL с применёнными миграциями.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	for _, m := range []string{"1_init_users.up.sql", "2_init_transactions.up.sql"} {
		_, err = pool.Exec(ctx, readMigration(t, m))
		require.NoError(t, err, "apply %s", m)
	}

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

// mustUser — создаёт пользователя с заданным балансом.
func mustUser(t *testing.T, st *Storage, balance int64) *models.User {
	t.Helper()

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New(),
		Login:        uuid.NewString(),
		PasswordHash: "hash",
		AccountType:  "common",
		Addresses:    []string{},
		Balance:      balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.SaveUser(context.Background(), u))
	return u
}

// mustTx — создаёт запись леджера в заданном статусе.
func mustTx(t *testing.T, st *Storage, userID uuid.UUID, pt models.PaymentType, tt models.TransferType, status models.TransactionStatus, amount, fee int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		ExternalID:   uuid.NewString(),
		Amount:       amount,
		Fee:          fee,
		Timestamp:    time.Now().UTC(),
		PaymentType:  pt,
		TransferType: tt,
		Status:       status,
		Data:         "{}",
	}
	require.NoError(t, st.SaveTransaction(context.Background(), tx))
	return tx
}
