package requesterrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before end_date",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start_date cannot be in the past",
		http.StatusBadRequest,
	)
	ErrSubmitNotCreated = apperror.New(
		apperror.CodeInvalidState,
		"you cannot submit a request which has already been submitted",
		http.StatusBadRequest,
	)
	ErrApproveNotAwaiting = apperror.New(
		apperror.CodeInvalidState,
		"you can only approve requests that are awaiting",
		http.StatusBadRequest,
	)
	ErrRejectNotAwaiting = apperror.New(
		apperror.CodeInvalidState,
		"you can only reject requests that are awaiting",
		http.StatusBadRequest,
	)
	ErrAlreadyProcessedByApprover = apperror.New(
		apperror.CodeInvalidState,
		"the request has already been processed by you",
		http.StatusBadRequest,
	)
	ErrNotAnApprover = apperror.New(
		apperror.CodeNotFound,
		"you are not an approver of this request",
		http.StatusNotFound,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		`status can be only one of "CREATED", "AWAITING", "APPROVED" or "REJECTED"`,
		http.StatusBadRequest,
	)
)

// Errors carrying identifiers are built where the ids are known.

func RequestNotFound(requestID uint) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeNotFound,
		http.StatusNotFound,
		"request with id '%d' does not exist",
		requestID,
	)
}

func UserNotFound(userID uint) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeNotFound,
		http.StatusNotFound,
		"user with id '%d' does not exist",
		userID,
	)
}

func OverlappingRequest(requesterID uint, start, end string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"there is a request from user with id '%d' for the period '%s' - '%s': requests by the same user cannot overlap",
		requesterID, start, end,
	)
}

func AlreadyProcessed(requestID uint, action string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"request with id '%d' has already been processed and cannot be %s",
		requestID, action,
	)
}
