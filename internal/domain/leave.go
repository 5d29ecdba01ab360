package domain

// LeaveType is the closed set of leave categories. Balances are tracked
// per (employee, type).
type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "ANNUAL"
	LeaveTypeSick   LeaveType = "SICK"
	LeaveTypeUnpaid LeaveType = "UNPAID"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypeUnpaid:
		return true
	}
	return false
}

// LeaveStatus models the one-way lifecycle of a leave request:
// PENDING moves to APPROVED or REJECTED exactly once, then never changes.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected:
		return true
	}
	return false
}

func (s LeaveStatus) CanTransitionTo(target LeaveStatus) bool {
	if s != LeaveStatusPending {
		return false
	}
	return target == LeaveStatusApproved || target == LeaveStatusRejected
}

type NotificationType string

const (
	NotificationLeaveRequested NotificationType = "LEAVE_REQUESTED"
	NotificationLeaveApproved  NotificationType = "LEAVE_APPROVED"
	NotificationLeaveRejected  NotificationType = "LEAVE_REJECTED"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLeaveRequested, NotificationLeaveApproved, NotificationLeaveRejected:
		return true
	}
	return false
}
