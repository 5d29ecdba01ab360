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

// ConsumeLeaveDecided tells the requesting employee how their leave
// request was decided.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		notificationType := domain.NotificationLeaveRejected
		if event.Status == string(domain.LeaveStatusApproved) {
			notificationType = domain.NotificationLeaveApproved
		}

		managerID := event.ManagerID
		err = notificationService.Record(ctx, notification.RecordNotificationRequest{
			EmployeeID: event.EmployeeID,
			ManagerID:  &managerID,
			Type:       notificationType,
			Message:    fmt.Sprintf("Your %s leave request has been %s.", event.LeaveType, event.Status),
			EventID:    event.LeaveRequestID + ":" + event.EventType,
			OccurredAt: event.OccurredAt,
		})
		if err != nil {
			log.Error("record leave decided notification failed",
				zap.String("leave_request_id", event.LeaveRequestID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("leave decided notification recorded",
			zap.String("leave_request_id", event.LeaveRequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("status", event.Status),
		)
	}
}
