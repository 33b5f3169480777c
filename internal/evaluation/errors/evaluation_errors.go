package evaluationerrors

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
)

var (
	ErrEvaluationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Evaluation not found",
		http.StatusNotFound,
	)

	ErrStudentIDRequired = apperror.RequiredField("student_id")

	ErrInvalidCriteria = apperror.New(
		apperror.CodeInvalidInput,
		"criteria must be a JSON object",
		http.StatusBadRequest,
	)

	ErrInvalidScore = apperror.New(
		apperror.CodeInvalidInput,
		"total_score must be between 0 and 100",
		http.StatusBadRequest,
	)

	ErrStudentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"student_id does not reference a student",
		http.StatusBadRequest,
	)

	ErrEvaluatorNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"supervisor_id must reference a supervisor or coordinator",
		http.StatusBadRequest,
	)
)
