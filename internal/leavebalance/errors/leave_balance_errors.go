package errors

import (
	"net/http"

	"github.com/yashcpg/leave1/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Invalid employee id",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidLeaveType = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Invalid leave type",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrNegativeDays = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Remaining days cannot be negative",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrEmployeeNotFound = &apperror.AppError{
		Code:       apperror.CodeNotFound,
		Message:    "Employee not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrBalanceNotFound = &apperror.AppError{
		Code:       apperror.CodeNotFound,
		Message:    "Leave balance not found",
		HTTPStatus: http.StatusNotFound,
	}
)
