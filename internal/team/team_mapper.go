package team

import (
	"strconv"
	"time"
)

const dateTimeLayout = time.RFC3339

// formatActor mirrors the request package's projection rule: zero actor ids
// render as "none".
func formatActor(id uint) string {
	if id == 0 {
		return "none"
	}
	return strconv.FormatUint(uint64(id), 10)
}

func formatLeader(id *uint) string {
	if id == nil {
		return "none"
	}
	return formatActor(*id)
}

func mapToResponse(t Team) TeamResponse {
	return TeamResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		LeaderID:       formatLeader(t.LeaderID),
		CreatorID:      formatActor(t.CreatorID),
		LastModifierID: formatActor(t.LastModifierID),
		CreatedAt:      t.CreatedAt.UTC().Format(dateTimeLayout),
		UpdatedAt:      t.UpdatedAt.UTC().Format(dateTimeLayout),
	}
}

func mapToListResponse(teams []Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, mapToResponse(t))
	}
	return out
}

func mapToOptions(teams []Team) []TeamOption {
	out := make([]TeamOption, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamOption{ID: t.ID, Title: t.Title})
	}
	return out
}
