package request

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	requesterrors "go-workforce/internal/request/errors"
	"go-workforce/internal/notification"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/lock"

	"github.com/rickar/cal/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusCreated  = "CREATED"
	StatusAwaiting = "AWAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	TypePaid   = "PAID"
	TypeUnpaid = "UNPAID"
	TypeSick   = "SICK"
)

func isTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID uint, req CreateRequestRequest) (RequestResponse, error)
	CreateFor(ctx context.Context, actorID, requesterID uint, req CreateRequestRequest) (RequestResponse, error)
	GetByID(ctx context.Context, id uint) (RequestDetailResponse, error)
	ListByRequester(ctx context.Context, requesterID uint) ([]RequestResponse, error)
	ListAwaitingForApprover(ctx context.Context, approverID uint) ([]RequestResponse, error)
	ListByStatus(ctx context.Context, status string) ([]RequestResponse, error)
	Update(ctx context.Context, actorID, id uint, req UpdateRequestRequest) (RequestResponse, error)
	Submit(ctx context.Context, actorID, id uint) (RequestResponse, error)
	Approve(ctx context.Context, actorID, id uint) (RequestResponse, error)
	Reject(ctx context.Context, actorID, id uint) (RequestResponse, error)
	Delete(ctx context.Context, actorID, id uint) error
}

// service is the workflow engine. Every mutating call takes the request's
// keyed lock before opening its transaction, so two racing final approvals
// cannot both conclude they fired the Approved transition.
type service struct {
	db       *sql.DB
	repo     Repository
	ledger   *Ledger
	dir      Directory
	notifier notification.Notifier
	locks    *lock.Keyed
	clock    clock.Clock
	calendar *cal.BusinessCalendar
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	dir Directory,
	notifier notification.Notifier,
	locks *lock.Keyed,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		ledger:   NewLedger(repo),
		dir:      dir,
		notifier: notifier,
		locks:    locks,
		clock:    clk,
		calendar: newBusinessCalendar(),
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actorID uint, req CreateRequestRequest) (RequestResponse, error) {
	return s.CreateFor(ctx, actorID, actorID, req)
}

func (s *service) CreateFor(ctx context.Context, actorID, requesterID uint, req CreateRequestRequest) (RequestResponse, error) {
	s.logger.Debug("create request requested",
		zap.Uint("actor_id", actorID),
		zap.Uint("requester_id", requesterID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	start, end, err := s.parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create request validation failed", zap.Error(err))
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.UserExists(ctx, requesterID)
	if err != nil {
		s.logger.Error("create request user lookup failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if !exists {
		return RequestResponse{}, requesterrors.UserNotFound(requesterID)
	}

	if err := s.checkOverlap(ctx, qtx, requesterID, start, end, nil); err != nil {
		return RequestResponse{}, err
	}

	r := &TimeOffRequest{
		RequesterID:    requesterID,
		CreatorID:      actorID,
		Type:           req.Type,
		Description:    req.Description,
		StartDate:      start,
		EndDate:        end,
		Status:         StatusCreated,
		LastModifierID: actorID,
	}
	if err := qtx.Create(ctx, r); err != nil {
		s.logger.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("create request success",
		zap.Uint("request_id", r.ID),
		zap.Uint("requester_id", requesterID),
	)

	return mapToResponse(*r), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (RequestDetailResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestDetailResponse{}, requesterrors.RequestNotFound(id)
		}
		return RequestDetailResponse{}, err
	}

	approverIDs, err := s.ledger.ApproverIDs(ctx, id)
	if err != nil {
		return RequestDetailResponse{}, err
	}
	approvers, err := s.repo.UserNamesOf(ctx, approverIDs)
	if err != nil {
		return RequestDetailResponse{}, err
	}
	if approvers == nil {
		approvers = []string{}
	}

	return RequestDetailResponse{
		RequestResponse: mapToResponse(*r),
		TotalDays:       TotalDays(r.StartDate, r.EndDate),
		WorkingDays:     WorkingDays(s.calendar, r.StartDate, r.EndDate),
		Approvers:       approvers,
	}, nil
}

func (s *service) ListByRequester(ctx context.Context, requesterID uint) ([]RequestResponse, error) {
	requests, err := s.repo.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListAwaitingForApprover(ctx context.Context, approverID uint) ([]RequestResponse, error) {
	requests, err := s.repo.FindAwaitingByApprover(ctx, approverID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListByStatus(ctx context.Context, status string) ([]RequestResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case StatusCreated, StatusAwaiting, StatusApproved, StatusRejected:
	default:
		return nil, requesterrors.ErrInvalidStatusFilter
	}

	requests, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) Update(ctx context.Context, actorID, id uint, req UpdateRequestRequest) (RequestResponse, error) {
	s.logger.Debug("update request requested",
		zap.Uint("request_id", id),
		zap.Uint("actor_id", actorID),
	)

	start, end, err := s.parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("update request validation failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	led := s.ledger.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	r, err := s.loadRequest(ctx, qtx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if isTerminal(r.Status) {
		return RequestResponse{}, requesterrors.AlreadyProcessed(id, "edited")
	}

	if err := s.checkOverlap(ctx, qtx, r.RequesterID, start, end, &id); err != nil {
		return RequestResponse{}, err
	}

	assignments, err := qtx.GetAssignments(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}

	r.Type = req.Type
	r.Description = req.Description
	r.StartDate = start
	r.EndDate = end
	r.Status = StatusCreated
	r.LastModifierID = actorID

	if err := qtx.ResetAssignments(ctx, id); err != nil {
		return RequestResponse{}, err
	}
	if err := qtx.Update(ctx, r); err != nil {
		s.logger.Error("update request persist failed",
			zap.Uint("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	// A request that was already in flight re-enters the submit flow with
	// the new details.
	if len(assignments) > 0 {
		if err := s.runSubmit(ctx, qtx, led, ntx, r); err != nil {
			return RequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update request commit failed",
			zap.Uint("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	s.logger.Info("update request success",
		zap.Uint("request_id", id),
		zap.String("status", r.Status),
	)

	return mapToResponse(*r), nil
}

func (s *service) Submit(ctx context.Context, actorID, id uint) (RequestResponse, error) {
	s.logger.Debug("submit request requested",
		zap.Uint("request_id", id),
		zap.Uint("actor_id", actorID),
	)

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	led := s.ledger.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	r, err := s.loadRequest(ctx, qtx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if r.Status != StatusCreated {
		s.logger.Warn("submit request invalid status",
			zap.Uint("request_id", id),
			zap.String("status", r.Status),
		)
		return RequestResponse{}, requesterrors.ErrSubmitNotCreated
	}

	r.LastModifierID = actorID
	if err := s.runSubmit(ctx, qtx, led, ntx, r); err != nil {
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit request commit failed",
			zap.Uint("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	s.logger.Info("submit request success",
		zap.Uint("request_id", id),
		zap.String("status", r.Status),
	)

	return mapToResponse(*r), nil
}

func (s *service) Approve(ctx context.Context, actorID, id uint) (RequestResponse, error) {
	s.logger.Debug("approve request requested",
		zap.Uint("request_id", id),
		zap.Uint("approver_id", actorID),
	)

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	led := s.ledger.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	r, err := s.prepareDecision(ctx, qtx, id, actorID, requesterrors.ErrApproveNotAwaiting)
	if err != nil {
		return RequestResponse{}, err
	}

	if err := led.MarkProcessed(ctx, id, actorID); err != nil {
		return RequestResponse{}, err
	}

	done, err := led.AllProcessed(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if done {
		r.Status = StatusApproved
		r.LastModifierID = actorID
		if err := qtx.Update(ctx, r); err != nil {
			s.logger.Error("approve request persist failed",
				zap.Uint("request_id", id),
				zap.Error(err),
			)
			return RequestResponse{}, err
		}

		email, err := qtx.EmailOf(ctx, r.RequesterID)
		if err != nil {
			return RequestResponse{}, err
		}
		s.notify(ctx, ntx, []string{email}, approvedSubject(r), approvedBody(r))
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve request commit failed",
			zap.Uint("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	s.logger.Info("approve request success",
		zap.Uint("request_id", id),
		zap.Uint("approver_id", actorID),
		zap.String("status", r.Status),
	)

	return mapToResponse(*r), nil
}

func (s *service) Reject(ctx context.Context, actorID, id uint) (RequestResponse, error) {
	s.logger.Debug("reject request requested",
		zap.Uint("request_id", id),
		zap.Uint("approver_id", actorID),
	)

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	led := s.ledger.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	r, err := s.prepareDecision(ctx, qtx, id, actorID, requesterrors.ErrRejectNotAwaiting)
	if err != nil {
		return RequestResponse{}, err
	}

	if err := led.MarkProcessed(ctx, id, actorID); err != nil {
		return RequestResponse{}, err
	}

	// One rejection is final regardless of the other approvers.
	r.Status = StatusRejected
	r.LastModifierID = actorID
	if err := qtx.Update(ctx, r); err != nil {
		s.logger.Error("reject request persist failed",
			zap.Uint("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	approverIDs, err := led.ApproverIDs(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	recipients := []uint{r.RequesterID}
	for _, aid := range approverIDs {
		if aid != actorID {
			recipients = append(recipients, aid)
		}
	}
	emails, err := qtx.EmailsOf(ctx, recipients)
	if err != nil {
		return RequestResponse{}, err
	}
	s.notify(ctx, ntx, emails, rejectedSubject(r), rejectedBody(r, s.requesterName(ctx, qtx, r.RequesterID)))

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject request commit failed",
			zap.Uint("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	s.logger.Info("reject request success",
		zap.Uint("request_id", id),
		zap.Uint("approver_id", actorID),
	)

	return mapToResponse(*r), nil
}

func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	s.logger.Debug("delete request requested",
		zap.Uint("request_id", id),
		zap.Uint("actor_id", actorID),
	)

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete request begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := s.loadRequest(ctx, qtx, id)
	if err != nil {
		return err
	}
	if isTerminal(r.Status) {
		return requesterrors.AlreadyProcessed(id, "deleted")
	}

	if err := qtx.DeleteAssignments(ctx, id); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete request persist failed",
			zap.Uint("request_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete request commit failed",
			zap.Uint("request_id", id),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("delete request success", zap.Uint("request_id", id))
	return nil
}

// runSubmit is the shared submit transition: compute the approver set, then
// either auto-approve or fan the request out for approval. The caller owns
// the transaction and has already reset the request's status to CREATED.
func (s *service) runSubmit(ctx context.Context, qtx Repository, led *Ledger, n notification.Notifier, r *TimeOffRequest) error {
	approvers, err := s.computeApprovers(ctx, qtx, r.RequesterID)
	if err != nil {
		return err
	}

	if len(approvers) == 0 || r.Type == TypeSick {
		return s.autoApprove(ctx, qtx, n, r)
	}

	if err := qtx.DeleteAssignments(ctx, r.ID); err != nil {
		return err
	}
	for _, approverID := range approvers {
		if err := led.Assign(ctx, r.ID, approverID); err != nil {
			return err
		}
	}

	r.Status = StatusAwaiting
	if err := qtx.Update(ctx, r); err != nil {
		return err
	}

	emails, err := qtx.EmailsOf(ctx, approvers)
	if err != nil {
		return err
	}
	s.notify(ctx, n, emails, submittedSubject(r), submittedBody(r, s.requesterName(ctx, qtx, r.RequesterID)))
	return nil
}

// autoApprove marks any existing assignments processed and moves the request
// straight to APPROVED. Sick leave notifies every teammate so the team knows
// the requester is out; everything else notifies the requester alone.
func (s *service) autoApprove(ctx context.Context, qtx Repository, n notification.Notifier, r *TimeOffRequest) error {
	assignments, err := qtx.GetAssignments(ctx, r.ID)
	if err != nil {
		return err
	}
	for i := range assignments {
		if assignments[i].IsProcessed {
			continue
		}
		assignments[i].IsProcessed = true
		if err := qtx.UpdateAssignment(ctx, &assignments[i]); err != nil {
			return err
		}
	}

	r.Status = StatusApproved
	if err := qtx.Update(ctx, r); err != nil {
		return err
	}

	var recipients []string
	if r.Type == TypeSick {
		recipients, err = s.dir.TeammateEmailsOf(ctx, r.RequesterID)
		if err != nil {
			return err
		}
	}
	if len(recipients) == 0 {
		email, err := qtx.EmailOf(ctx, r.RequesterID)
		if err != nil {
			return err
		}
		recipients = []string{email}
	}

	s.notify(ctx, n, recipients, submittedSubject(r), autoApprovedBody(r, s.requesterName(ctx, qtx, r.RequesterID)))
	return nil
}

// computeApprovers resolves who must sign off: the leaders of the
// requester's teams, never the requester, skipping any leader currently on
// approved leave.
func (s *service) computeApprovers(ctx context.Context, qtx Repository, requesterID uint) ([]uint, error) {
	teams, err := s.dir.TeamsOf(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{})
	var candidates []uint
	for _, t := range teams {
		if t.LeaderID == nil || *t.LeaderID == requesterID {
			continue
		}
		if _, ok := seen[*t.LeaderID]; ok {
			continue
		}
		seen[*t.LeaderID] = struct{}{}
		candidates = append(candidates, *t.LeaderID)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	today := s.clock.Now()
	approvers := make([]uint, 0, len(candidates))
	for _, leaderID := range candidates {
		onLeave, err := qtx.HasActiveApprovedRequest(ctx, leaderID, today)
		if err != nil {
			return nil, err
		}
		if !onLeave {
			approvers = append(approvers, leaderID)
		}
	}
	return approvers, nil
}

// prepareDecision loads the request and validates that the actor may still
// answer: status AWAITING, assignment exists, not yet processed.
func (s *service) prepareDecision(ctx context.Context, qtx Repository, id, actorID uint, notAwaiting error) (*TimeOffRequest, error) {
	r, err := s.loadRequest(ctx, qtx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusAwaiting {
		return nil, notAwaiting
	}

	a, err := qtx.GetAssignment(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, requesterrors.ErrNotAnApprover
	}
	if a.IsProcessed {
		return nil, requesterrors.ErrAlreadyProcessedByApprover
	}
	return r, nil
}

func (s *service) checkOverlap(ctx context.Context, qtx Repository, requesterID uint, start, end time.Time, excludeID *uint) error {
	existing, err := qtx.FindOverlapping(ctx, requesterID, start, end, excludeID)
	if err != nil {
		s.logger.Error("overlap check failed", zap.Error(err))
		return err
	}
	if existing != nil {
		s.logger.Warn("overlapping request detected",
			zap.Uint("requester_id", requesterID),
			zap.Uint("conflicting_id", existing.ID),
		)
		return requesterrors.OverlappingRequest(
			requesterID,
			existing.StartDate.Format(dateDisplayLayout),
			existing.EndDate.Format(dateDisplayLayout),
		)
	}
	return nil
}

func (s *service) parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, requesterrors.ErrInvalidDateRange
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return time.Time{}, time.Time{}, requesterrors.ErrStartDateInPast
	}
	return start, end, nil
}

func (s *service) loadRequest(ctx context.Context, qtx Repository, id uint) (*TimeOffRequest, error) {
	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requesterrors.RequestNotFound(id)
		}
		return nil, err
	}
	return r, nil
}

// requesterName is best effort: email copy degrades to the numeric id when
// the lookup fails.
func (s *service) requesterName(ctx context.Context, qtx Repository, requesterID uint) string {
	names, err := qtx.UserNamesOf(ctx, []uint{requesterID})
	if err != nil || len(names) == 0 {
		return formatActor(requesterID)
	}
	return names[0]
}

func (s *service) notify(ctx context.Context, n notification.Notifier, recipients []string, subject, body string) {
	if err := n.Notify(ctx, recipients, subject, body); err != nil {
		s.logger.Warn("notification enqueue failed",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
