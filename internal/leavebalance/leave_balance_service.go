package leavebalance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yashcpg/leave1/internal/domain"
	"github.com/yashcpg/leave1/internal/employee"
	lberrors "github.com/yashcpg/leave1/internal/leavebalance/errors"
	"github.com/yashcpg/leave1/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetMine(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error)
	Allocate(ctx context.Context, req AllocateLeaveBalanceRequest) (LeaveBalanceResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{db: db, repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) GetMine(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error) {
	if employeeID == "" {
		return nil, apperror.ErrUnauthorized
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, lberrors.ErrInvalidEmployeeID
	}

	balances, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch leave balances", 500)
	}

	out := make([]LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, ToResponse(b))
	}
	return out, nil
}

// Allocate sets (not adds) the remaining entitlement for one employee and
// leave type. Managers use it for yearly grants and corrections.
func (s *service) Allocate(ctx context.Context, req AllocateLeaveBalanceRequest) (LeaveBalanceResponse, error) {
	leaveType := domain.LeaveType(req.LeaveType)
	if !leaveType.Valid() {
		return LeaveBalanceResponse{}, lberrors.ErrInvalidLeaveType
	}
	if req.RemainingDays < 0 {
		return LeaveBalanceResponse{}, lberrors.ErrNegativeDays
	}

	if _, err := s.employeeRepo.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveBalanceResponse{}, lberrors.ErrEmployeeNotFound
		}
		return LeaveBalanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to verify employee", 500)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveBalanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to start transaction", 500)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Upsert(ctx, req.EmployeeID, leaveType, req.RemainingDays); err != nil {
		return LeaveBalanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to allocate leave balance", 500)
	}

	if err := tx.Commit(); err != nil {
		return LeaveBalanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to commit transaction", 500)
	}

	s.logger.Info("leave balance allocated",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.Int("remaining_days", req.RemainingDays),
	)

	balance, err := s.repo.FindByEmployeeAndType(ctx, req.EmployeeID, leaveType)
	if err != nil {
		return LeaveBalanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch leave balance", 500)
	}
	return ToResponse(*balance), nil
}
