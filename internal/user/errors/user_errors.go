package usererrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var ErrInitialAdminProtected = apperror.New(
	apperror.CodeConflict,
	"the initial admin account cannot be deleted",
	http.StatusConflict,
)

func UserNotFound(userID uint) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeNotFound,
		http.StatusNotFound,
		"user with id '%d' does not exist",
		userID,
	)
}

func UserNameTaken(userName string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"user with username '%s' already exists",
		userName,
	)
}

func EmailTaken(email string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"user with email '%s' already exists",
		email,
	)
}
