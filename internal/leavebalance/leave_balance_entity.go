package leavebalance

import (
	"time"

	"github.com/yashcpg/leave1/internal/domain"

	"github.com/google/uuid"
)

// LeaveBalance holds the remaining entitlement for one employee and one
// leave type. remaining_days never goes negative: the only debit path is
// a conditional UPDATE guarded by remaining_days >= span.
type LeaveBalance struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type"`
	LeaveType     domain.LeaveType `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_balances_employee_type"`
	RemainingDays int              `gorm:"type:int;not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
