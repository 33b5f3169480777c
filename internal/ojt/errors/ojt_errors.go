package ojterrors

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"OJT record not found",
		http.StatusNotFound,
	)

	ErrInvalidRecordID = apperror.InvalidField("record_id")

	ErrParticipantsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"student_id, coordinator_id, and supervisor_id are required",
		http.StatusBadRequest,
	)

	ErrParticipantNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced user does not exist",
		http.StatusBadRequest,
	)

	ErrParticipantRole = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced user does not hold the expected role",
		http.StatusBadRequest,
	)

	ErrCompanyNameRequired = apperror.RequiredField("company_name")

	ErrStartDateRequired = apperror.RequiredField("start_date")

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"dates must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)

	ErrInvalidRequiredHours = apperror.New(
		apperror.CodeInvalidInput,
		"required_hours must be greater than 0",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of Ongoing, Completed, Dropped",
		http.StatusBadRequest,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"OJT record status cannot change that way",
		http.StatusConflict,
	)

	ErrOngoingRecordExists = apperror.New(
		apperror.CodeConflict,
		"Student already has an ongoing OJT record",
		http.StatusConflict,
	)

	ErrReferenceNoExists = apperror.New(
		apperror.CodeConflict,
		"OJT reference number already exists",
		http.StatusConflict,
	)
)
