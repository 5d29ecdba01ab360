package leavebalance

type AllocateLeaveBalanceRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	LeaveType     string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	RemainingDays int    `json:"remaining_days" binding:"min=0"`
}

type LeaveBalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	LeaveType     string `json:"leave_type"`
	RemainingDays int    `json:"remaining_days"`
}

func ToResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		LeaveType:     string(b.LeaveType),
		RemainingDays: b.RemainingDays,
	}
}
