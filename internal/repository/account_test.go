package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enbat/horizon-server-go/internal/model"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create mock database")
	return sqlx.NewDb(db, "sqlmock"), mock
}

func accountColumns() []string {
	return []string{"id", "email", "user_id", "status", "created_at"}
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matching account", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()
		repo := NewAccountRepository(db)

		mock.ExpectQuery(`SELECT \* FROM admin_accounts WHERE email = \$1`).
			WithArgs("user@example.com").
			WillReturnRows(sqlmock.NewRows(accountColumns()).
				AddRow(1, "user@example.com", "uid-1", "confirmed", time.Now()))

		account, err := repo.FindByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, int64(1), account.ID)
		assert.Equal(t, model.AccountStatusConfirmed, account.Status)
	})

	t.Run("returns nil without error when absent", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()
		repo := NewAccountRepository(db)

		mock.ExpectQuery(`SELECT \* FROM admin_accounts WHERE email = \$1`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		account, err := repo.FindByEmail(ctx, "missing@example.com")
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("propagates query errors", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()
		repo := NewAccountRepository(db)

		mock.ExpectQuery(`SELECT \* FROM admin_accounts WHERE email = \$1`).
			WithArgs("user@example.com").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.FindByEmail(ctx, "user@example.com")
		assert.Error(t, err)
	})
}

func TestAccountRepository_FindAll(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM admin_accounts`).
		WillReturnRows(sqlmock.NewRows(accountColumns()).
			AddRow(2, "b@example.com", "uid-2", "pending", time.Now()).
			AddRow(1, "a@example.com", "uid-1", "confirmed", time.Now()))

	accounts, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, int64(2), accounts[0].ID)
	assert.Equal(t, model.AccountStatusPending, accounts[0].Status)
}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`INSERT INTO admin_accounts \(email, user_id, status\)`).
		WithArgs("new@example.com", "uid-9", "pending").
		WillReturnRows(sqlmock.NewRows(accountColumns()).
			AddRow(9, "new@example.com", "uid-9", "pending", time.Now()))

	account, err := repo.Create(context.Background(), model.CreateAdminAccountParams{
		Email:  "new@example.com",
		UserID: "uid-9",
		Status: model.AccountStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), account.ID)
	assert.Equal(t, model.AccountStatusPending, account.Status)
}

func TestAccountRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("returns updated row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()
		repo := NewAccountRepository(db)

		mock.ExpectQuery(`UPDATE admin_accounts SET status = \$2`).
			WithArgs(int64(3), "confirmed").
			WillReturnRows(sqlmock.NewRows(accountColumns()).
				AddRow(3, "c@example.com", "uid-3", "confirmed", time.Now()))

		account, err := repo.UpdateStatus(ctx, 3, model.AccountStatusConfirmed)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, model.AccountStatusConfirmed, account.Status)
	})

	t.Run("returns nil for unknown id", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()
		repo := NewAccountRepository(db)

		mock.ExpectQuery(`UPDATE admin_accounts SET status = \$2`).
			WithArgs(int64(99), "confirmed").
			WillReturnError(sql.ErrNoRows)

		account, err := repo.UpdateStatus(ctx, 99, model.AccountStatusConfirmed)
		require.NoError(t, err)
		assert.Nil(t, account)
	})
}
