package notification

import "time"

type NotificationResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	ManagerID  *string   `json:"manager_id,omitempty"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	DateSent   time.Time `json:"date_sent"`
}

func ToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         n.ID.String(),
		EmployeeID: n.EmployeeID.String(),
		Type:       string(n.Type),
		Message:    n.Message,
		DateSent:   n.DateSent,
	}
	if n.ManagerID != nil {
		id := n.ManagerID.String()
		resp.ManagerID = &id
	}
	return resp
}
