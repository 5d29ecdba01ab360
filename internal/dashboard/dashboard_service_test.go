package dashboard_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/yashcpg/leave1/internal/dashboard"
	"github.com/yashcpg/leave1/internal/domain"
	"github.com/yashcpg/leave1/internal/leavebalance"
	"github.com/yashcpg/leave1/internal/leaverequest"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRequestRepository struct {
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequest, error)
}

func (f *fakeLeaveRequestRepository) WithTx(tx *sql.Tx) leaverequest.Repository { return f }

func (f *fakeLeaveRequestRepository) Create(ctx context.Context, l *leaverequest.LeaveRequest) error {
	return nil
}

func (f *fakeLeaveRequestRepository) FindByID(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRequestRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]leaverequest.LeaveRequest, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) FindAllByManager(ctx context.Context, managerID string) ([]leaverequest.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRequestRepository) UpdateDecision(ctx context.Context, id string, status domain.LeaveStatus, managerID string, actionedAt time.Time) error {
	return nil
}

type fakeBalanceRepository struct {
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]leavebalance.LeaveBalance, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository { return f }

func (f *fakeBalanceRepository) FindByEmployeeAndType(ctx context.Context, employeeID string, leaveType domain.LeaveType) (*leavebalance.LeaveBalance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]leavebalance.LeaveBalance, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) Upsert(ctx context.Context, employeeID string, leaveType domain.LeaveType, remainingDays int) error {
	return nil
}

func (f *fakeBalanceRepository) Debit(ctx context.Context, employeeID string, leaveType domain.LeaveType, days int) (bool, error) {
	return true, nil
}

func TestDashboardService_Get(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	cacheKey := dashboard.GetDashboardKey(employeeID.String())

	t.Run("success cache hit skips repos", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		cached := dashboard.DashboardResponse{
			EmployeeID:   employeeID.String(),
			PendingCount: 2,
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		redisMock.ExpectGet(cacheKey).SetVal(string(payload))

		lrRepo := &fakeLeaveRequestRepository{
			findAllByEmployeeFn: func(ctx context.Context, eid string) ([]leaverequest.LeaveRequest, error) {
				t.Fatal("repo must not be hit on a cache hit")
				return nil, nil
			},
		}
		svc := dashboard.NewService(lrRepo, &fakeBalanceRepository{}, rdb)

		resp, err := svc.Get(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.PendingCount)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success cache miss loads and caches", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.Regexp().ExpectSet(cacheKey, `.*`, 60*time.Second).SetVal("OK")

		lrRepo := &fakeLeaveRequestRepository{
			findAllByEmployeeFn: func(ctx context.Context, eid string) ([]leaverequest.LeaveRequest, error) {
				return []leaverequest.LeaveRequest{
					{
						ID:            uuid.New(),
						EmployeeID:    employeeID,
						LeaveType:     domain.LeaveTypeAnnual,
						StartDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
						EndDate:       time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
						Status:        domain.LeaveStatusPending,
						DateRequested: time.Now().UTC(),
					},
					{
						ID:            uuid.New(),
						EmployeeID:    employeeID,
						LeaveType:     domain.LeaveTypeSick,
						StartDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
						EndDate:       time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
						Status:        domain.LeaveStatusApproved,
						DateRequested: time.Now().UTC(),
					},
				}, nil
			},
		}
		lbRepo := &fakeBalanceRepository{
			findAllByEmployeeFn: func(ctx context.Context, eid string) ([]leavebalance.LeaveBalance, error) {
				return []leavebalance.LeaveBalance{
					{ID: uuid.New(), EmployeeID: employeeID, LeaveType: domain.LeaveTypeAnnual, RemainingDays: 10},
				}, nil
			},
		}

		svc := dashboard.NewService(lrRepo, lbRepo, rdb)

		resp, err := svc.Get(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.PendingCount)
		assert.Len(t, resp.LeaveHistory, 2)
		assert.Len(t, resp.LeaveBalances, 1)
		assert.Equal(t, 3, resp.LeaveHistory[0].TotalDays)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		svc := dashboard.NewService(&fakeLeaveRequestRepository{}, &fakeBalanceRepository{}, rdb)

		_, err := svc.Get(ctx, "not-a-uuid")

		assert.Error(t, err)
	})
}

func TestCacheInvalidator_InvalidateEmployee(t *testing.T) {
	employeeID := uuid.New().String()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectDel(dashboard.GetDashboardKey(employeeID)).SetVal(1)

	invalidator := dashboard.NewCacheInvalidator(rdb)
	invalidator.InvalidateEmployee(context.Background(), employeeID)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}
