package team

import (
	"context"

	"go-workforce/internal/request"
)

// DirectoryAdapter exposes team membership to the request workflow engine
// through the engine's own interface, so the request package never imports
// this one.
type DirectoryAdapter struct {
	repo    Repository
	reqRepo request.Repository
}

func NewDirectoryAdapter(repo Repository, reqRepo request.Repository) *DirectoryAdapter {
	return &DirectoryAdapter{repo: repo, reqRepo: reqRepo}
}

func (d *DirectoryAdapter) TeamsOf(ctx context.Context, userID uint) ([]request.TeamRef, error) {
	teams, err := d.repo.TeamsOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	refs := make([]request.TeamRef, 0, len(teams))
	for _, t := range teams {
		refs = append(refs, request.TeamRef{
			ID:       t.ID,
			Title:    t.Title,
			LeaderID: t.LeaderID,
		})
	}
	return refs, nil
}

func (d *DirectoryAdapter) TeammateEmailsOf(ctx context.Context, userID uint) ([]string, error) {
	teams, err := d.repo.TeamsOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{})
	var ids []uint
	for _, t := range teams {
		memberIDs, err := d.repo.MemberIDs(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range memberIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return d.reqRepo.EmailsOf(ctx, ids)
}
