package notification

import (
	"time"

	"github.com/yashcpg/leave1/internal/domain"

	"github.com/google/uuid"
)

// Notification is a materialized in-app record built by the event
// consumer. EventID carries a unique index so replayed Kafka messages
// cannot produce duplicates.
type Notification struct {
	ID         uuid.UUID               `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID               `gorm:"type:uuid;not null;index"`
	ManagerID  *uuid.UUID              `gorm:"type:uuid"`
	Type       domain.NotificationType `gorm:"type:varchar(30);not null"`
	Message    string                  `gorm:"type:text;not null"`
	EventID    string                  `gorm:"type:varchar(64);uniqueIndex"`
	DateSent   time.Time               `gorm:"not null"`
	CreatedAt  time.Time
}
