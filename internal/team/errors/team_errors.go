package teamerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

func TeamNotFound(teamID uint) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeNotFound,
		http.StatusNotFound,
		"team with id '%d' does not exist",
		teamID,
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

func TitleTaken(title string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"team with title '%s' already exists",
		title,
	)
}

func AlreadyMember(userID, teamID uint) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"user with id '%d' is already a member of team '%d'",
		userID, teamID,
	)
}

func NotAMember(userID, teamID uint) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"user with id '%d' is not a member of team '%d'",
		userID, teamID,
	)
}

func AlreadyLeads(userID uint) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"user with id '%d' already leads a team",
		userID,
	)
}

func LeaderNotMember(userID, teamID uint) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeConflict,
		http.StatusConflict,
		"user with id '%d' must be a member of team '%d' to lead it",
		userID, teamID,
	)
}
