package errors

import (
	"net/http"

	"github.com/yashcpg/leave1/internal/shared/apperror"
)

var (
	ErrEmployeeIDMissing = &apperror.AppError{
		Code:       apperror.CodeUnauthorized,
		Message:    "Invalid token: Employee ID not found.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrInvalidEmployeeID = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Invalid employee id",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidLeaveRequestID = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Invalid leave request id",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidDateFormat = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Dates must be in YYYY-MM-DD format",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPastStartDate = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Cannot apply for past dates.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidDateRange = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "End date must be on or after start date",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrLeaveRequestNotFound = &apperror.AppError{
		Code:       apperror.CodeNotFound,
		Message:    "Leave request not found.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrAlreadyActioned = &apperror.AppError{
		Code:       apperror.CodeInvalidState,
		Message:    "Leave request has already been actioned",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInsufficientBalance = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Insufficient leave balance.",
		HTTPStatus: http.StatusBadRequest,
	}
)
