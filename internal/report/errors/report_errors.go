package reporterrors

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"Report not found",
		http.StatusNotFound,
	)

	ErrReportTypeRequired = apperror.RequiredField("report_type")

	ErrInvalidContent = apperror.New(
		apperror.CodeInvalidInput,
		"content must be valid JSON",
		http.StatusBadRequest,
	)

	ErrGeneratorNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"generated_by does not reference a user",
		http.StatusBadRequest,
	)
)
