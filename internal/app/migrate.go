package app

import (
	"github.com/yashcpg/leave1/internal/employee"
	"github.com/yashcpg/leave1/internal/leavebalance"
	"github.com/yashcpg/leave1/internal/leaverequest"
	"github.com/yashcpg/leave1/internal/notification"

	"gorm.io/gorm"
)

// The outbox table is owned by raw SQL, so it is created here instead of
// through AutoMigrate.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&leaverequest.LeaveRequest{},
		&leavebalance.LeaveBalance{},
		&notification.Notification{},
	); err != nil {
		return err
	}

	return db.Exec(outboxDDL).Error
}
