package request

import (
	"strconv"
	"time"
)

// formatActor projects an actor id, using "none" for the zero id. Audit
// columns of rows that predate an actor (or whose actor was deleted) carry
// zero, and clients expect the sentinel rather than "0".
func formatActor(id uint) string {
	if id == 0 {
		return "none"
	}
	return strconv.FormatUint(uint64(id), 10)
}

func mapToResponse(r TimeOffRequest) RequestResponse {
	return RequestResponse{
		ID:             r.ID,
		Status:         r.Status,
		Type:           r.Type,
		Description:    r.Description,
		StartDate:      r.StartDate.Format(dateLayout),
		EndDate:        r.EndDate.Format(dateLayout),
		RequesterID:    formatActor(r.RequesterID),
		CreatorID:      formatActor(r.CreatorID),
		LastModifierID: formatActor(r.LastModifierID),
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(requests []TimeOffRequest) []RequestResponse {
	out := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, mapToResponse(r))
	}
	return out
}
