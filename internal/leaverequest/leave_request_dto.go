package leaverequest

import "time"

type ApplyLeaveRequest struct {
	LeaveType string  `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Reason    string  `json:"reason" binding:"max=500"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type LeaveRequestResponse struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	ManagerID     *string    `json:"manager_id,omitempty"`
	LeaveType     string     `json:"leave_type"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	TotalDays     int        `json:"total_days"`
	Reason        string     `json:"reason,omitempty"`
	Status        string     `json:"status"`
	DateRequested time.Time  `json:"date_requested"`
	DateActioned  *time.Time `json:"date_actioned,omitempty"`
}

type ApplyLeaveResponse struct {
	Message string               `json:"message"`
	Request LeaveRequestResponse `json:"request"`
}

type DecideLeaveResponse struct {
	Message string               `json:"message"`
	Request LeaveRequestResponse `json:"request"`
}

func ToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveType:     string(l.LeaveType),
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     l.TotalDays(),
		Reason:        l.Reason,
		Status:        string(l.Status),
		DateRequested: l.DateRequested,
		DateActioned:  l.DateActioned,
	}
	if l.ManagerID != nil {
		id := l.ManagerID.String()
		resp.ManagerID = &id
	}
	return resp
}
