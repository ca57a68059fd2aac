package request

type CreateRequestRequest struct {
	Type        string `json:"type" binding:"required,oneof=PAID UNPAID SICK"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Description string `json:"description" binding:"required,min=3"`
}

type UpdateRequestRequest struct {
	Type        string `json:"type" binding:"required,oneof=PAID UNPAID SICK"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Description string `json:"description" binding:"required,min=3"`
}

type RequestResponse struct {
	ID             uint   `json:"id"`
	Status         string `json:"status"`
	Type           string `json:"type"`
	Description    string `json:"description"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	RequesterID    string `json:"requester_id"`
	CreatorID      string `json:"creator_id"`
	LastModifierID string `json:"last_modifier_id"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type RequestDetailResponse struct {
	RequestResponse
	TotalDays   int      `json:"total_days"`
	WorkingDays int      `json:"working_days"`
	Approvers   []string `json:"approvers"`
}
