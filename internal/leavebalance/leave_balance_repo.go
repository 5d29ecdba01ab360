package leavebalance

import (
	"context"
	"database/sql"

	"github.com/yashcpg/leave1/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployeeAndType(ctx context.Context, employeeID string, leaveType domain.LeaveType) (*LeaveBalance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	Upsert(ctx context.Context, employeeID string, leaveType domain.LeaveType, remainingDays int) error
	Debit(ctx context.Context, employeeID string, leaveType domain.LeaveType, days int) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindByEmployeeAndType(ctx context.Context, employeeID string, leaveType domain.LeaveType) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", string(leaveType)).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("leave_type ASC").
		Find(&balances).Error
	return balances, err
}

// Upsert sets the remaining entitlement for (employee, type), creating the
// row on first allocation. Raw SQL so it stays a single atomic statement.
func (r *repository) Upsert(ctx context.Context, employeeID string, leaveType domain.LeaveType, remainingDays int) error {
	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type, remaining_days, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW(), NOW())
		ON CONFLICT (employee_id, leave_type) DO UPDATE
		SET remaining_days = EXCLUDED.remaining_days, updated_at = NOW()
	`
	_, err := r.execer().ExecContext(ctx, query, employeeID, string(leaveType), remainingDays)
	return err
}

// Debit subtracts days from the balance only when enough remain. The
// WHERE guard makes concurrent approvals race-safe: the second one sees
// zero rows affected and reports insufficient balance. A missing balance
// row reports the same way.
func (r *repository) Debit(ctx context.Context, employeeID string, leaveType domain.LeaveType, days int) (bool, error) {
	query := `
		UPDATE leave_balances
		SET remaining_days = remaining_days - $3, updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2 AND remaining_days >= $3
	`
	res, err := r.execer().ExecContext(ctx, query, employeeID, string(leaveType), days)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
