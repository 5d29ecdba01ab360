package events

import "time"

const LeaveDecidedTopic = "lms.leave.decided.v1"

type LeaveDecidedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID string    `json:"leave_request_id"`
	EmployeeID     string    `json:"employee_id"`
	ManagerID      string    `json:"manager_id"`
	LeaveType      string    `json:"leave_type"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
