package team

type CreateTeamRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	LeaderID    *uint  `json:"leader_id"`
}

type UpdateTeamRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	LeaderID    *uint  `json:"leader_id"`
}

type TeamResponse struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	LeaderID       string `json:"leader_id"`
	CreatorID      string `json:"creator_id"`
	LastModifierID string `json:"last_modifier_id"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type TeamDetailResponse struct {
	TeamResponse
	Members []string `json:"members"`
}

// TeamOption is the slim projection served to dropdowns; it is what the
// options cache stores.
type TeamOption struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}
