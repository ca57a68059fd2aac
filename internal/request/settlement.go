package request

import (
	"context"
	"database/sql"
	"errors"

	"go-workforce/internal/notification"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Settler finishes requests whose approver set shrank out from under them.
// Team membership changes and user deletion can remove the last unprocessed
// assignment without anyone pressing approve; the awaiting request must
// still reach APPROVED.
type Settler struct {
	repo     Repository
	notifier notification.Notifier
	logger   *zap.Logger
}

func NewSettler(repo Repository, notifier notification.Notifier, logger ...*zap.Logger) *Settler {
	l := zap.L().Named("request.settler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.settler")
	}
	return &Settler{repo: repo, notifier: notifier, logger: l}
}

func (s *Settler) WithTx(tx *sql.Tx) *Settler {
	return &Settler{
		repo:     s.repo.WithTx(tx),
		notifier: s.notifier.WithTx(tx),
		logger:   s.logger,
	}
}

// SettleAwaiting approves the request if it is AWAITING with no unprocessed
// assignments left. Returns whether a transition happened. The caller holds
// the request's keyed lock and owns the transaction.
func (s *Settler) SettleAwaiting(ctx context.Context, requestID, actorID uint) (bool, error) {
	r, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if r.Status != StatusAwaiting {
		return false, nil
	}

	unprocessed, err := s.repo.CountUnprocessedAssignments(ctx, requestID)
	if err != nil {
		return false, err
	}
	if unprocessed > 0 {
		return false, nil
	}

	r.Status = StatusApproved
	r.LastModifierID = actorID
	if err := s.repo.Update(ctx, r); err != nil {
		return false, err
	}

	email, err := s.repo.EmailOf(ctx, r.RequesterID)
	if err != nil {
		return false, err
	}
	if err := s.notifier.Notify(ctx, []string{email}, approvedSubject(r), approvedBody(r)); err != nil {
		s.logger.Warn("settlement notification enqueue failed",
			zap.Uint("request_id", requestID),
			zap.Error(err),
		)
	}

	s.logger.Info("request settled",
		zap.Uint("request_id", requestID),
		zap.Uint("actor_id", actorID),
	)
	return true, nil
}
