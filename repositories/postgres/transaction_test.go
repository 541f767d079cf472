package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"go.uber.org/zap"
)

func TestInTransaction_CallbackContextCarriesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	txMgr := NewTransactionManager(db, zap.NewNop())
	err := txMgr.InTransaction(context.Background(), func(ctx context.Context, tx repositories.Transaction) error {
		got, ok := GetTransactionFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, tx, got)

		_, isTx := GetExecutor(ctx, db).(*sql.Tx)
		assert.True(t, isTx)
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTransaction_RepositoryCallsRunInsideIt(t *testing.T) {
	user := models.NewUser("ada@example.com", "Ada Lovelace", models.RoleStudent, "hash")

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs(user.Email).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	txMgr := NewTransactionManager(db, zap.NewNop())
	users := NewUserRepository(db, zap.NewNop())

	err := txMgr.InTransaction(context.Background(), func(ctx context.Context, tx repositories.Transaction) error {
		exists, err := users.EmailExists(ctx, user.Email)
		if err != nil {
			return err
		}
		require.False(t, exists)
		return users.Create(ctx, user)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTransaction_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	txMgr := NewTransactionManager(db, zap.NewNop())
	err := txMgr.InTransaction(context.Background(), func(ctx context.Context, tx repositories.Transaction) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_FallsBackToPool(t *testing.T) {
	db, _ := newMockDB(t)

	executor := GetExecutor(context.Background(), db)

	assert.Same(t, db.DB, executor)
}
