package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yashcpg/leave1/internal/domain"
	"github.com/yashcpg/leave1/internal/leavebalance"
	"github.com/yashcpg/leave1/internal/leaverequest"
	"github.com/yashcpg/leave1/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheTTL = 60 * time.Second

type DashboardResponse struct {
	EmployeeID    string                              `json:"employee_id"`
	PendingCount  int                                 `json:"pending_count"`
	LeaveHistory  []leaverequest.LeaveRequestResponse `json:"leave_history"`
	LeaveBalances []leavebalance.LeaveBalanceResponse `json:"leave_balances"`
}

type Service interface {
	Get(ctx context.Context, employeeID string) (DashboardResponse, error)
}

type service struct {
	leaveRequestRepo leaverequest.Repository
	balanceRepo      leavebalance.Repository
	rdb              *redis.Client
	group            singleflight.Group
	logger           *zap.Logger
}

func NewService(
	leaveRequestRepo leaverequest.Repository,
	balanceRepo leavebalance.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		leaveRequestRepo: leaveRequestRepo,
		balanceRepo:      balanceRepo,
		rdb:              rdb,
		logger:           l,
	}
}

// Get serves the employee dashboard from redis when warm. On a miss,
// singleflight collapses concurrent loads into one query per key.
func (s *service) Get(ctx context.Context, employeeID string) (DashboardResponse, error) {
	if employeeID == "" {
		return DashboardResponse{}, apperror.ErrUnauthorized
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return DashboardResponse{}, apperror.InvalidField("employee_id")
	}

	key := GetDashboardKey(employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp DashboardResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
			s.rdb.Del(ctx, key)
		}
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.load(ctx, employeeID, key)
	})
	if err != nil {
		return DashboardResponse{}, err
	}

	return result.(DashboardResponse), nil
}

func (s *service) load(ctx context.Context, employeeID, key string) (DashboardResponse, error) {
	requests, err := s.leaveRequestRepo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return DashboardResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch leave history", 500)
	}

	balances, err := s.balanceRepo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return DashboardResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch leave balances", 500)
	}

	resp := DashboardResponse{
		EmployeeID:    employeeID,
		LeaveHistory:  make([]leaverequest.LeaveRequestResponse, 0, len(requests)),
		LeaveBalances: make([]leavebalance.LeaveBalanceResponse, 0, len(balances)),
	}
	for _, l := range requests {
		if l.Status == domain.LeaveStatusPending {
			resp.PendingCount++
		}
		resp.LeaveHistory = append(resp.LeaveHistory, leaverequest.ToResponse(l))
	}
	for _, b := range balances {
		resp.LeaveBalances = append(resp.LeaveBalances, leavebalance.ToResponse(b))
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache dashboard", zap.String("employee_id", employeeID), zap.Error(err))
			}
		}
	}

	return resp, nil
}
