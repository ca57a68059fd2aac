package request

import (
	"context"
	"database/sql"
	"net/http"

	"go-workforce/internal/shared/apperror"
)

// Ledger is the assignment bookkeeping layer of the workflow engine. It
// wraps the repository so the service reads like the state machine it is:
// assign, mark processed, ask whether everyone answered.
type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

func (l *Ledger) WithTx(tx *sql.Tx) *Ledger {
	return &Ledger{repo: l.repo.WithTx(tx)}
}

// Assign records an unprocessed slot for the approver. Assigning the same
// approver twice is a conflict, not an upsert.
func (l *Ledger) Assign(ctx context.Context, requestID, approverID uint) error {
	existing, err := l.repo.GetAssignment(ctx, requestID, approverID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.Newf(
			apperror.CodeConflict,
			http.StatusConflict,
			"user with id '%d' is already an approver of request '%d'",
			approverID, requestID,
		)
	}
	return l.repo.CreateAssignment(ctx, &ApproverAssignment{
		RequestID:  requestID,
		ApproverID: approverID,
	})
}

// MarkProcessed flips the approver's slot. Missing slot is NotFound so
// callers can distinguish "not an approver" from storage failure.
func (l *Ledger) MarkProcessed(ctx context.Context, requestID, approverID uint) error {
	a, err := l.repo.GetAssignment(ctx, requestID, approverID)
	if err != nil {
		return err
	}
	if a == nil {
		return apperror.Newf(
			apperror.CodeNotFound,
			http.StatusNotFound,
			"user with id '%d' is not an approver of request '%d'",
			approverID, requestID,
		)
	}
	a.IsProcessed = true
	return l.repo.UpdateAssignment(ctx, a)
}

// AllProcessed reports whether no unprocessed slots remain. A request with
// zero slots counts as fully processed.
func (l *Ledger) AllProcessed(ctx context.Context, requestID uint) (bool, error) {
	count, err := l.repo.CountUnprocessedAssignments(ctx, requestID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// HasProcessed reports whether the approver holds a slot and has answered.
func (l *Ledger) HasProcessed(ctx context.Context, requestID, approverID uint) (bool, error) {
	a, err := l.repo.GetAssignment(ctx, requestID, approverID)
	if err != nil {
		return false, err
	}
	return a != nil && a.IsProcessed, nil
}

// ApproverIDs lists the request's approvers in ascending id order.
func (l *Ledger) ApproverIDs(ctx context.Context, requestID uint) ([]uint, error) {
	assignments, err := l.repo.GetAssignments(ctx, requestID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ApproverID)
	}
	return ids, nil
}
