package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yashcpg/leave1/internal/domain"
	"github.com/yashcpg/leave1/internal/events"
	"github.com/yashcpg/leave1/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveRequested materializes an in-app notification for the
// assigned manager whenever a leave request is submitted. The event id is
// derived from the request id, so redelivery never creates duplicates.
func ConsumeLeaveRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_requested")
	log.Info("leave requested consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave requested consumer stopped")
				return
			}
			log.Error("fetch leave requested message failed", zap.Error(err))
			continue
		}

		var event events.LeaveRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// Without an assigned manager there is nobody to notify.
		if event.ManagerID == "" {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = notificationService.Record(ctx, notification.RecordNotificationRequest{
			EmployeeID: event.ManagerID,
			ManagerID:  nil,
			Type:       domain.NotificationLeaveRequested,
			Message: fmt.Sprintf(
				"A %s leave request from %s to %s is awaiting your decision.",
				event.LeaveType, event.StartDate, event.EndDate,
			),
			EventID:    event.LeaveRequestID + ":" + event.EventType,
			OccurredAt: event.OccurredAt,
		})
		if err != nil {
			log.Error("record leave requested notification failed",
				zap.String("leave_request_id", event.LeaveRequestID),
				zap.String("manager_id", event.ManagerID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave requested message failed", zap.Error(err))
			continue
		}

		log.Info("leave requested notification recorded",
			zap.String("leave_request_id", event.LeaveRequestID),
			zap.String("manager_id", event.ManagerID),
		)
	}
}
