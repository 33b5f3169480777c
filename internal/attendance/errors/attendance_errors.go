package attendanceerrors

import (
	"net/http"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)

	ErrTimeInAlreadyRecorded = apperror.New(
		apperror.CodeDuplicateSegment,
		"Time-in already recorded for this segment",
		http.StatusBadRequest,
	)

	ErrTimeOutAlreadyRecorded = apperror.New(
		apperror.CodeDuplicateSegment,
		"Time-out already recorded for this segment",
		http.StatusBadRequest,
	)

	ErrStudentIDRequired = apperror.RequiredField("student_id")

	ErrTimeOutRequired = apperror.RequiredField("time_out")

	ErrRecordKeyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"attendance_id or both student_id and date are required",
		http.StatusBadRequest,
	)

	ErrInvalidSegment = apperror.New(
		apperror.CodeInvalidInput,
		"segment is not valid for this operation",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"time must be formatted as HH:MM or HH:MM:SS",
		http.StatusBadRequest,
	)

	ErrInvalidAttendanceID = apperror.InvalidField("attendance_id")

	ErrAttendanceRejected = apperror.New(
		apperror.CodeInvalidInput,
		"Attendance record was rejected by the store",
		http.StatusBadRequest,
	)
)
