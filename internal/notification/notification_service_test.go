package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/yashcpg/leave1/internal/domain"
	"github.com/yashcpg/leave1/internal/notification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepository struct {
	createFn            func(ctx context.Context, n *notification.Notification) error
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]notification.Notification, error)
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]notification.Notification, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func TestNotificationService_Record(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		var created *notification.Notification
		repo := &fakeNotificationRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				created = n
				return nil
			},
		}
		svc := notification.NewService(repo)

		err := svc.Record(ctx, notification.RecordNotificationRequest{
			EmployeeID: employeeID,
			Type:       domain.NotificationLeaveApproved,
			Message:    "Your ANNUAL leave request has been APPROVED.",
			EventID:    "evt-1",
			OccurredAt: time.Now().UTC(),
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, domain.NotificationLeaveApproved, created.Type)
		assert.Equal(t, "evt-1", created.EventID)
	})

	t.Run("success duplicate event is a no-op", func(t *testing.T) {
		repo := &fakeNotificationRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := notification.NewService(repo)

		err := svc.Record(ctx, notification.RecordNotificationRequest{
			EmployeeID: employeeID,
			Type:       domain.NotificationLeaveRejected,
			Message:    "Your SICK leave request has been REJECTED.",
			EventID:    "evt-2",
		})

		assert.NoError(t, err)
	})

	t.Run("negative invalid type", func(t *testing.T) {
		svc := notification.NewService(&fakeNotificationRepository{})

		err := svc.Record(ctx, notification.RecordNotificationRequest{
			EmployeeID: employeeID,
			Type:       "SMS",
			Message:    "hello",
		})

		assert.Error(t, err)
	})
}

func TestNotificationService_GetMine(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeNotificationRepository{
			findAllByEmployeeFn: func(ctx context.Context, eid string) ([]notification.Notification, error) {
				assert.Equal(t, employeeID.String(), eid)
				return []notification.Notification{
					{
						ID:         uuid.New(),
						EmployeeID: employeeID,
						Type:       domain.NotificationLeaveRequested,
						Message:    "A SICK leave request from 2026-09-01 to 2026-09-02 is awaiting your decision.",
						DateSent:   time.Now().UTC(),
					},
				}, nil
			},
		}
		svc := notification.NewService(repo)

		resp, err := svc.GetMine(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "LEAVE_REQUESTED", resp[0].Type)
	})

	t.Run("negative missing identity", func(t *testing.T) {
		svc := notification.NewService(&fakeNotificationRepository{})

		_, err := svc.GetMine(ctx, "")

		assert.Error(t, err)
	})
}
