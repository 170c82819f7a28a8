package dbtx

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithTx_NilTx(t *testing.T) {
	ctx := context.Background()
	ctxWithTx := ContextWithTx(ctx, nil)

	tx := TxFromContext(ctxWithTx)
	assert.Nil(t, tx, "nil tx should return nil from context")
}

func TestTxFromContext_NoTx(t *testing.T) {
	ctx := context.Background()
	tx := TxFromContext(ctx)
	assert.Nil(t, tx, "context without tx should return nil")
}

func TestGetExecutor_WithoutTx(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	executor := GetExecutor(context.Background(), db)
	assert.Equal(t, Executor(db), executor, "executor should be the pool when no tx in context")
}

func TestGetExecutor_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	ctx := ContextWithTx(context.Background(), tx)
	executor := GetExecutor(ctx, db)
	assert.Equal(t, Executor(tx), executor, "executor should be the tx when one is in context")

	mock.ExpectRollback()
	_ = tx.Rollback()
}

func TestRunInTransaction_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err = RunInTransaction(context.Background(), db, func(ctx context.Context) error {
		called = true
		assert.NotNil(t, TxFromContext(ctx), "tx should be installed in the callback's context")
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_FunctionError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	expectedErr := errors.New("function error")
	err = RunInTransaction(context.Background(), db, func(ctx context.Context) error {
		return expectedErr
	})

	assert.Equal(t, expectedErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectedErr := errors.New("begin error")
	mock.ExpectBegin().WillReturnError(expectedErr)

	err = RunInTransaction(context.Background(), db, func(ctx context.Context) error {
		t.Fatal("function should not be called")
		return nil
	})

	assert.Equal(t, expectedErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_Panic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = RunInTransaction(context.Background(), db, func(ctx context.Context) error {
			panic("test panic")
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A ctx already carrying a tx (the "Rollback: true" envelope wraps the
// whole dispatch, and a mutation inside it opens its own RunInTransaction)
// must nest via SAVEPOINT rather than BEGIN, per spec §9.
func TestRunInTransaction_NestedUsesSavepoint(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	outerTx, err := db.Begin()
	require.NoError(t, err)

	mock.ExpectExec("SAVEPOINT").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("RELEASE SAVEPOINT").WillReturnResult(sqlmock.NewResult(0, 0))

	outerCtx := ContextWithTx(context.Background(), outerTx)

	called := false
	err = RunInTransaction(outerCtx, db, func(ctx context.Context) error {
		called = true
		assert.Equal(t, outerTx, TxFromContext(ctx), "nested call keeps the same *sql.Tx in context")
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectRollback()
	_ = outerTx.Rollback()
}

func TestRunInTransaction_NestedErrorRollsBackToSavepoint(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	outerTx, err := db.Begin()
	require.NoError(t, err)

	mock.ExpectExec("SAVEPOINT").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ROLLBACK TO SAVEPOINT").WillReturnResult(sqlmock.NewResult(0, 0))

	outerCtx := ContextWithTx(context.Background(), outerTx)

	expectedErr := errors.New("nested failure")
	err = RunInTransaction(outerCtx, db, func(ctx context.Context) error {
		return expectedErr
	})

	assert.Equal(t, expectedErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectRollback()
	_ = outerTx.Rollback()
}
