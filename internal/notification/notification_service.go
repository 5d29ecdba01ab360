package notification

import (
	"context"
	"errors"
	"time"

	"github.com/yashcpg/leave1/internal/domain"
	"github.com/yashcpg/leave1/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type RecordNotificationRequest struct {
	EmployeeID string
	ManagerID  *string
	Type       domain.NotificationType
	Message    string
	EventID    string
	OccurredAt time.Time
}

type Service interface {
	GetMine(ctx context.Context, employeeID string) ([]NotificationResponse, error)
	Record(ctx context.Context, req RecordNotificationRequest) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetMine(ctx context.Context, employeeID string) ([]NotificationResponse, error) {
	if employeeID == "" {
		return nil, apperror.ErrUnauthorized
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("employee_id")
	}

	notifications, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch notifications", 500)
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, ToResponse(n))
	}
	return out, nil
}

// Record persists one notification for a consumed event. A unique
// violation on event_id means the event was already handled, so redelivery
// is a no-op rather than an error.
func (s *service) Record(ctx context.Context, req RecordNotificationRequest) error {
	if !req.Type.Valid() {
		return apperror.InvalidField("type")
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return apperror.InvalidField("employee_id")
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return apperror.InvalidField("manager_id")
		}
		managerID = &mid
	}

	sentAt := req.OccurredAt
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}

	err = s.repo.Create(ctx, &Notification{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		ManagerID:  managerID,
		Type:       req.Type,
		Message:    req.Message,
		EventID:    req.EventID,
		DateSent:   sentAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Debug("duplicate notification event skipped", zap.String("event_id", req.EventID))
			return nil
		}
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to record notification", 500)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
