package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"github.com/yashcpg/leave1/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindAllByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	UpdateDecision(ctx context.Context, id string, status domain.LeaveStatus, managerID string, actionedAt time.Time) error
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

// Create is raw SQL so the insert can share a transaction with the outbox
// row written for the same submission.
func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (
			id, employee_id, manager_id, leave_type, start_date, end_date,
			reason, status, date_requested, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`

	var managerID any
	if l.ManagerID != nil {
		managerID = *l.ManagerID
	}

	_, err := r.execer().ExecContext(
		ctx, query,
		l.ID, l.EmployeeID, managerID, string(l.LeaveType),
		l.StartDate, l.EndDate, l.Reason, string(l.Status), l.DateRequested,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date_requested DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByManager(ctx context.Context, managerID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("date_requested DESC").
		Find(&requests).Error
	return requests, err
}

// UpdateDecision records the outcome of a pending request. The extra
// status guard in the WHERE clause keeps a concurrent decision from
// overwriting one that already landed.
func (r *repository) UpdateDecision(ctx context.Context, id string, status domain.LeaveStatus, managerID string, actionedAt time.Time) error {
	query := `
		UPDATE leave_requests
		SET status = $2, manager_id = $3, date_actioned = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`
	res, err := r.execer().ExecContext(ctx, query, id, string(status), managerID, actionedAt, string(domain.LeaveStatusPending))
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
