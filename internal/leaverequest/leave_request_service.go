package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/yashcpg/leave1/internal/domain"
	"github.com/yashcpg/leave1/internal/events"
	"github.com/yashcpg/leave1/internal/leavebalance"
	lrerrors "github.com/yashcpg/leave1/internal/leaverequest/errors"
	"github.com/yashcpg/leave1/internal/messaging/kafka"
	"github.com/yashcpg/leave1/internal/shared/apperror"
	"github.com/yashcpg/leave1/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MsgSubmitted = "Leave request submitted successfully."
	MsgUpdated   = "Leave request updated."
)

// CacheInvalidator drops cached read models for one employee after a
// state change commits. Wired to the dashboard cache.
type CacheInvalidator interface {
	InvalidateEmployee(ctx context.Context, employeeID string)
}

type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (ApplyLeaveResponse, error)
	Decide(ctx context.Context, managerID, requestID string, approved bool) (DecideLeaveResponse, error)
	GetMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	GetTeam(ctx context.Context, managerID string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, actorID, requestID string) (LeaveRequestResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	balanceRepo leavebalance.Repository
	outboxRepo  kafka.OutboxRepository
	invalidator CacheInvalidator
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, balanceRepo leavebalance.Repository) Service {
	return &service{
		db:          db,
		repo:        repo,
		balanceRepo: balanceRepo,
		logger:      zap.L().Named("leaverequest.service"),
	}
}

// NewServiceWithOutbox wires the event outbox and the dashboard cache
// invalidator on top of NewService. Either may be nil in tests.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	balanceRepo leavebalance.Repository,
	outboxRepo kafka.OutboxRepository,
	invalidator CacheInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		balanceRepo: balanceRepo,
		outboxRepo:  outboxRepo,
		invalidator: invalidator,
		logger:      l,
	}
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (ApplyLeaveResponse, error) {
	if employeeID == "" {
		return ApplyLeaveResponse{}, lrerrors.ErrEmployeeIDMissing
	}
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return ApplyLeaveResponse{}, lrerrors.ErrInvalidEmployeeID
	}

	leaveType := domain.LeaveType(req.LeaveType)
	if !leaveType.Valid() {
		return ApplyLeaveResponse{}, apperror.InvalidField("leave_type")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return ApplyLeaveResponse{}, lrerrors.ErrInvalidDateFormat
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return ApplyLeaveResponse{}, lrerrors.ErrInvalidDateFormat
	}

	// Day granularity in UTC: applying today is fine, yesterday is not.
	if startDate.Before(todayUTC()) {
		return ApplyLeaveResponse{}, lrerrors.ErrPastStartDate
	}
	if endDate.Before(startDate) {
		return ApplyLeaveResponse{}, lrerrors.ErrInvalidDateRange
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return ApplyLeaveResponse{}, apperror.InvalidField("manager_id")
		}
		managerID = &mid
	}

	leaveRequest := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    empID,
		ManagerID:     managerID,
		LeaveType:     leaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		Reason:        req.Reason,
		Status:        domain.LeaveStatusPending,
		DateRequested: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ApplyLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to start transaction", 500)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, leaveRequest); err != nil {
		return ApplyLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to create leave request", 500)
	}

	if err := s.enqueueRequestedEvent(ctx, tx, leaveRequest); err != nil {
		return ApplyLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to enqueue event", 500)
	}

	if err := tx.Commit(); err != nil {
		return ApplyLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to commit transaction", 500)
	}

	s.invalidateDashboard(ctx, employeeID)

	contextutil.GetLogger(ctx, s.logger).Info("leave request submitted",
		zap.String("leave_request_id", leaveRequest.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", string(leaveType)),
		zap.Int("total_days", leaveRequest.TotalDays()),
	)

	return ApplyLeaveResponse{
		Message: MsgSubmitted,
		Request: ToResponse(*leaveRequest),
	}, nil
}

func (s *service) Decide(ctx context.Context, managerID, requestID string, approved bool) (DecideLeaveResponse, error) {
	if managerID == "" {
		return DecideLeaveResponse{}, lrerrors.ErrEmployeeIDMissing
	}
	if _, err := uuid.Parse(managerID); err != nil {
		return DecideLeaveResponse{}, lrerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return DecideLeaveResponse{}, lrerrors.ErrInvalidLeaveRequestID
	}

	leaveRequest, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DecideLeaveResponse{}, lrerrors.ErrLeaveRequestNotFound
		}
		return DecideLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch leave request", 500)
	}

	target := domain.LeaveStatusRejected
	if approved {
		target = domain.LeaveStatusApproved
	}
	if !leaveRequest.Status.CanTransitionTo(target) {
		return DecideLeaveResponse{}, lrerrors.ErrAlreadyActioned
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DecideLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to start transaction", 500)
	}
	defer tx.Rollback()

	if approved {
		debited, err := s.balanceRepo.WithTx(tx).Debit(
			ctx,
			leaveRequest.EmployeeID.String(),
			leaveRequest.LeaveType,
			leaveRequest.TotalDays(),
		)
		if err != nil {
			return DecideLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to debit leave balance", 500)
		}
		if !debited {
			return DecideLeaveResponse{}, lrerrors.ErrInsufficientBalance
		}
	}

	actionedAt := time.Now().UTC()
	if err := s.repo.WithTx(tx).UpdateDecision(ctx, requestID, target, managerID, actionedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DecideLeaveResponse{}, lrerrors.ErrAlreadyActioned
		}
		return DecideLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to update leave request", 500)
	}

	if err := s.enqueueDecidedEvent(ctx, tx, leaveRequest, managerID, target, actionedAt); err != nil {
		return DecideLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to enqueue event", 500)
	}

	if err := tx.Commit(); err != nil {
		return DecideLeaveResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to commit transaction", 500)
	}

	s.invalidateDashboard(ctx, leaveRequest.EmployeeID.String())

	contextutil.GetLogger(ctx, s.logger).Info("leave request decided",
		zap.String("leave_request_id", requestID),
		zap.String("manager_id", managerID),
		zap.String("status", string(target)),
	)

	mid := uuid.MustParse(managerID)
	leaveRequest.Status = target
	leaveRequest.ManagerID = &mid
	leaveRequest.DateActioned = &actionedAt

	return DecideLeaveResponse{
		Message: MsgUpdated,
		Request: ToResponse(*leaveRequest),
	}, nil
}

func (s *service) GetMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	if employeeID == "" {
		return nil, lrerrors.ErrEmployeeIDMissing
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, lrerrors.ErrInvalidEmployeeID
	}

	requests, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch leave requests", 500)
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetTeam(ctx context.Context, managerID string) ([]LeaveRequestResponse, error) {
	if managerID == "" {
		return nil, lrerrors.ErrEmployeeIDMissing
	}
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, lrerrors.ErrInvalidEmployeeID
	}

	requests, err := s.repo.FindAllByManager(ctx, managerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch leave requests", 500)
	}
	return mapToListResponse(requests), nil
}

// GetByID only serves the request's owner or its assigned manager.
func (s *service) GetByID(ctx context.Context, actorID, requestID string) (LeaveRequestResponse, error) {
	if actorID == "" {
		return LeaveRequestResponse{}, lrerrors.ErrEmployeeIDMissing
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return LeaveRequestResponse{}, lrerrors.ErrInvalidLeaveRequestID
	}

	leaveRequest, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, lrerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to fetch leave request", 500)
	}

	isOwner := leaveRequest.EmployeeID.String() == actorID
	isAssignedManager := leaveRequest.ManagerID != nil && leaveRequest.ManagerID.String() == actorID
	if !isOwner && !isAssignedManager {
		return LeaveRequestResponse{}, apperror.ErrForbidden
	}

	return ToResponse(*leaveRequest), nil
}

func (s *service) enqueueRequestedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	if s.outboxRepo == nil {
		return nil
	}

	event := events.LeaveRequestedEvent{
		EventType:      "leave.requested",
		LeaveRequestID: l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		LeaveType:      string(l.LeaveType),
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		OccurredAt:     l.DateRequested,
	}
	if l.ManagerID != nil {
		event.ManagerID = l.ManagerID.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueDecidedEvent(
	ctx context.Context,
	tx *sql.Tx,
	l *LeaveRequest,
	managerID string,
	status domain.LeaveStatus,
	occurredAt time.Time,
) error {
	if s.outboxRepo == nil {
		return nil
	}

	event := events.LeaveDecidedEvent{
		EventType:      "leave.decided",
		LeaveRequestID: l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		ManagerID:      managerID,
		LeaveType:      string(l.LeaveType),
		Status:         string(status),
		OccurredAt:     occurredAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateDashboard(ctx context.Context, employeeID string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateEmployee(ctx, employeeID)
	}
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, l := range requests {
		out = append(out, ToResponse(l))
	}
	return out
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
