package predictionerrors

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
)

var (
	ErrStudentIDRequired = apperror.RequiredField("student_id")

	ErrStudentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Student not found",
		http.StatusNotFound,
	)

	ErrNoOJTRecord = apperror.New(
		apperror.CodeNotFound,
		"Student not found or no OJT record",
		http.StatusNotFound,
	)

	ErrInvalidRiskLevel = apperror.New(
		apperror.CodeInvalidInput,
		"level must be High or Medium",
		http.StatusBadRequest,
	)

	ErrInvalidInsight = apperror.New(
		apperror.CodeInvalidInput,
		"student_id, model_name, insight_type and a JSON result are required",
		http.StatusBadRequest,
	)

	ErrInvalidConfidence = apperror.New(
		apperror.CodeInvalidInput,
		"confidence must be between 0 and 1",
		http.StatusBadRequest,
	)

	ErrAIServiceUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"AI prediction service unavailable",
		http.StatusServiceUnavailable,
	)

	ErrAIServiceBadResponse = apperror.New(
		apperror.CodeServiceUnavailable,
		"AI prediction service returned an invalid response",
		http.StatusBadGateway,
	)
)
