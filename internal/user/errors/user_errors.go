package usererrors

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of Admin, Coordinator, Supervisor, Student",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of Pending, Active, Rejected",
		http.StatusBadRequest,
	)

	ErrUserNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Only pending users can be approved or rejected",
		http.StatusConflict,
	)

	ErrApprovalNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to review this user",
		http.StatusForbidden,
	)

	ErrPendingListNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to view pending users",
		http.StatusForbidden,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)
)
