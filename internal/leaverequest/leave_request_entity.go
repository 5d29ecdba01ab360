package leaverequest

import (
	"time"

	"github.com/yashcpg/leave1/internal/domain"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	ManagerID     *uuid.UUID         `gorm:"type:uuid;index"`
	LeaveType     domain.LeaveType   `gorm:"type:varchar(20);not null"`
	StartDate     time.Time          `gorm:"type:date;not null"`
	EndDate       time.Time          `gorm:"type:date;not null"`
	Reason        string             `gorm:"type:text"`
	Status        domain.LeaveStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DateRequested time.Time          `gorm:"not null"`
	DateActioned  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalDays is the inclusive span of the request. A single-day request
// (start == end) counts as one day.
func (l *LeaveRequest) TotalDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
