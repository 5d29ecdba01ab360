package leavebalance_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/yashcpg/leave1/internal/domain"
	"github.com/yashcpg/leave1/internal/leavebalance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupBalanceRepoTest(t *testing.T) (leavebalance.Repository, *sql.Tx, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	return leavebalance.NewRepository(nil).WithTx(tx), tx, mock
}

func TestLeaveBalanceRepository_Debit(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success subtracts only when enough remain", func(t *testing.T) {
		repo, _, mock := setupBalanceRepoTest(t)

		mock.ExpectExec(`UPDATE leave_balances SET remaining_days = remaining_days - \$3, updated_at = NOW\(\) WHERE employee_id = \$1 AND leave_type = \$2 AND remaining_days >= \$3`).
			WithArgs(employeeID, "ANNUAL", 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		debited, err := repo.Debit(context.Background(), employeeID, domain.LeaveTypeAnnual, 5)
		assert.NoError(t, err)
		assert.True(t, debited)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative short remainder reports false", func(t *testing.T) {
		repo, _, mock := setupBalanceRepoTest(t)

		mock.ExpectExec(`remaining_days >= \$3`).
			WithArgs(employeeID, "SICK", 10).
			WillReturnResult(sqlmock.NewResult(0, 0))

		debited, err := repo.Debit(context.Background(), employeeID, domain.LeaveTypeSick, 10)
		assert.NoError(t, err)
		assert.False(t, debited)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative exec error propagates", func(t *testing.T) {
		repo, _, mock := setupBalanceRepoTest(t)

		mock.ExpectExec(`UPDATE leave_balances`).
			WithArgs(employeeID, "ANNUAL", 3).
			WillReturnError(sql.ErrConnDone)

		debited, err := repo.Debit(context.Background(), employeeID, domain.LeaveTypeAnnual, 3)
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.False(t, debited)
	})
}

func TestLeaveBalanceRepository_Upsert(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success inserts or overwrites the entitlement", func(t *testing.T) {
		repo, _, mock := setupBalanceRepoTest(t)

		mock.ExpectExec(`INSERT INTO leave_balances .+ ON CONFLICT \(employee_id, leave_type\) DO UPDATE SET remaining_days = EXCLUDED.remaining_days`).
			WithArgs(employeeID, "UNPAID", 12).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(context.Background(), employeeID, domain.LeaveTypeUnpaid, 12)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
