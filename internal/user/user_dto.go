package user

type CreateUserRequest struct {
	UserName  string `json:"user_name" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=ADMIN EMPLOYEE"`

	// TeamID joins the new user to a team right away.
	TeamID *uint `json:"team_id"`
}

type UpdateUserRequest struct {
	UserName  string `json:"user_name" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=ADMIN EMPLOYEE"`

	// Password is rehashed only when provided.
	Password string `json:"password" binding:"omitempty,min=8"`
}

type UserResponse struct {
	ID             uint   `json:"id"`
	UserName       string `json:"user_name"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Role           string `json:"role"`
	CreatorID      string `json:"creator_id"`
	LastModifierID string `json:"last_modifier_id"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type UserDetailResponse struct {
	UserResponse
	Teams        []string `json:"teams"`
	LedTeams     []string `json:"led_teams"`
	RequestCount int      `json:"request_count"`
}
