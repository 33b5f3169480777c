package chatboterrors

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
)

var (
	ErrUserIDRequired   = apperror.RequiredField("user_id")
	ErrQueryRequired    = apperror.RequiredField("query")
	ErrResponseRequired = apperror.RequiredField("response")

	ErrUserNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"user_id does not reference a user",
		http.StatusBadRequest,
	)
)
