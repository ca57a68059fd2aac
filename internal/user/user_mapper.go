package user

import (
	"strconv"
	"time"
)

func formatActor(id uint) string {
	if id == 0 {
		return "none"
	}
	return strconv.FormatUint(uint64(id), 10)
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		UserName:       u.UserName,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		CreatorID:      formatActor(u.CreatorID),
		LastModifierID: formatActor(u.LastModifierID),
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, mapToResponse(u))
	}
	return out
}
