package request

import "context"

// TeamRef is the slice of team state the engine needs to compute an
// approver set: who leads it, if anyone.
type TeamRef struct {
	ID       uint
	Title    string
	LeaderID *uint
}

// Directory resolves team membership for the workflow engine. The team
// package implements it; the engine never walks entity graphs itself.
//
//go:generate mockgen -source=directory.go -destination=mock/directory_mock.go -package=mock
type Directory interface {
	TeamsOf(ctx context.Context, userID uint) ([]TeamRef, error)
	// TeammateEmailsOf returns the deduplicated emails of every member of
	// every team the user belongs to, the user included.
	TeammateEmailsOf(ctx context.Context, userID uint) ([]string, error)
}
