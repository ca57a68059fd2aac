package team

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"go-workforce/internal/notification"
	"go-workforce/internal/request"
	"go-workforce/internal/shared/lock"
	teamerrors "go-workforce/internal/team/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const TeamOptionsCacheKey = "team:options"

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID uint, req CreateTeamRequest) (TeamResponse, error)
	GetAll(ctx context.Context) ([]TeamResponse, error)
	GetOptions(ctx context.Context) ([]TeamOption, error)
	GetByID(ctx context.Context, id uint) (TeamDetailResponse, error)
	Update(ctx context.Context, actorID, id uint, req UpdateTeamRequest) (TeamResponse, error)
	Delete(ctx context.Context, actorID, id uint) error
	AddMember(ctx context.Context, actorID, teamID, userID uint) error
	RemoveMember(ctx context.Context, actorID, teamID, userID uint) error
	PromoteToLeader(ctx context.Context, actorID, teamID, userID uint) error
}

// service owns teams and the workflow fallout of membership changes: a
// join, leave or promotion rewires the approver assignments of the affected
// awaiting requests. Affected request ids are locked in ascending order
// before the transaction opens, the same discipline the request engine uses.
type service struct {
	db       *sql.DB
	repo     Repository
	reqRepo  request.Repository
	settler  *request.Settler
	notifier notification.Notifier
	locks    *lock.Keyed
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	reqRepo request.Repository,
	settler *request.Settler,
	notifier notification.Notifier,
	locks *lock.Keyed,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		reqRepo:  reqRepo,
		settler:  settler,
		notifier: notifier,
		locks:    locks,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actorID uint, req CreateTeamRequest) (TeamResponse, error) {
	s.logger.Debug("create team requested",
		zap.Uint("actor_id", actorID),
		zap.String("title", req.Title),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create team begin tx failed", zap.Error(err))
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qreq := s.reqRepo.WithTx(tx)

	existing, err := qtx.FindByTitle(ctx, req.Title)
	if err != nil {
		return TeamResponse{}, err
	}
	if existing != nil {
		return TeamResponse{}, teamerrors.TitleTaken(req.Title)
	}

	if req.LeaderID != nil {
		exists, err := qreq.UserExists(ctx, *req.LeaderID)
		if err != nil {
			return TeamResponse{}, err
		}
		if !exists {
			return TeamResponse{}, teamerrors.UserNotFound(*req.LeaderID)
		}
		leads, err := qtx.LeadsAnyTeam(ctx, *req.LeaderID, nil)
		if err != nil {
			return TeamResponse{}, err
		}
		if leads {
			return TeamResponse{}, teamerrors.AlreadyLeads(*req.LeaderID)
		}
	}

	t := &Team{
		Title:          req.Title,
		Description:    req.Description,
		LeaderID:       req.LeaderID,
		CreatorID:      actorID,
		LastModifierID: actorID,
	}
	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create team persist failed", zap.Error(err))
		return TeamResponse{}, err
	}

	// The leader is a member like anyone else.
	if req.LeaderID != nil {
		if err := qtx.AddMember(ctx, t.ID, *req.LeaderID); err != nil {
			return TeamResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create team commit failed", zap.Error(err))
		return TeamResponse{}, err
	}
	s.invalidateOptionsCache(ctx)
	s.logger.Info("create team success",
		zap.Uint("team_id", t.ID),
		zap.String("title", t.Title),
	)

	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TeamResponse, error) {
	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(teams), nil
}

func (s *service) GetOptions(ctx context.Context) ([]TeamOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, TeamOptionsCacheKey).Result(); err == nil {
			var resp []TeamOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(TeamOptionsCacheKey, func() (interface{}, error) {
		teams, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToOptions(teams)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, TeamOptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]TeamOption), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (TeamDetailResponse, error) {
	t, err := s.loadTeam(ctx, s.repo, id)
	if err != nil {
		return TeamDetailResponse{}, err
	}

	memberIDs, err := s.repo.MemberIDs(ctx, id)
	if err != nil {
		return TeamDetailResponse{}, err
	}
	members, err := s.reqRepo.UserNamesOf(ctx, memberIDs)
	if err != nil {
		return TeamDetailResponse{}, err
	}
	if members == nil {
		members = []string{}
	}

	return TeamDetailResponse{
		TeamResponse: mapToResponse(*t),
		Members:      members,
	}, nil
}

func (s *service) Update(ctx context.Context, actorID, id uint, req UpdateTeamRequest) (TeamResponse, error) {
	s.logger.Debug("update team requested",
		zap.Uint("team_id", id),
		zap.Uint("actor_id", actorID),
	)

	current, err := s.loadTeam(ctx, s.repo, id)
	if err != nil {
		return TeamResponse{}, err
	}

	// A leadership change rewires assignments on every member's awaiting
	// requests; those ids must be locked before the transaction opens.
	var candidates []uint
	leaderChanges := !sameLeader(current.LeaderID, req.LeaderID)
	if leaderChanges {
		memberIDs, err := s.repo.MemberIDs(ctx, id)
		if err != nil {
			return TeamResponse{}, err
		}
		candidates, err = s.awaitingRequestIDsOfUsers(ctx, memberIDs)
		if err != nil {
			return TeamResponse{}, err
		}
	}
	unlock := s.lockAll(candidates)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update team begin tx failed", zap.Error(err))
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qreq := s.reqRepo.WithTx(tx)

	t, err := s.loadTeam(ctx, qtx, id)
	if err != nil {
		return TeamResponse{}, err
	}

	existing, err := qtx.FindByTitle(ctx, req.Title)
	if err != nil {
		return TeamResponse{}, err
	}
	if existing != nil && existing.ID != id {
		return TeamResponse{}, teamerrors.TitleTaken(req.Title)
	}

	if leaderChanges && req.LeaderID != nil {
		member, err := qtx.IsMember(ctx, id, *req.LeaderID)
		if err != nil {
			return TeamResponse{}, err
		}
		if !member {
			return TeamResponse{}, teamerrors.LeaderNotMember(*req.LeaderID, id)
		}
		leads, err := qtx.LeadsAnyTeam(ctx, *req.LeaderID, &id)
		if err != nil {
			return TeamResponse{}, err
		}
		if leads {
			return TeamResponse{}, teamerrors.AlreadyLeads(*req.LeaderID)
		}
	}

	if leaderChanges {
		if err := s.rewireLeadership(ctx, qreq, tx, candidates, t.LeaderID, req.LeaderID, actorID); err != nil {
			return TeamResponse{}, err
		}
	}

	t.Title = req.Title
	t.Description = req.Description
	t.LeaderID = req.LeaderID
	t.LastModifierID = actorID
	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("update team persist failed",
			zap.Uint("team_id", id),
			zap.Error(err),
		)
		return TeamResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update team commit failed",
			zap.Uint("team_id", id),
			zap.Error(err),
		)
		return TeamResponse{}, err
	}
	s.invalidateOptionsCache(ctx)
	s.logger.Info("update team success", zap.Uint("team_id", id))

	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	s.logger.Debug("delete team requested",
		zap.Uint("team_id", id),
		zap.Uint("actor_id", actorID),
	)

	t, err := s.loadTeam(ctx, s.repo, id)
	if err != nil {
		return err
	}

	// The departing leader approves nothing further; the affected awaiting
	// requests may settle.
	var candidates []uint
	if t.LeaderID != nil {
		candidates, err = s.reqRepo.RequestIDsWithUnprocessedApprover(ctx, *t.LeaderID)
		if err != nil {
			return err
		}
	}
	unlock := s.lockAll(candidates)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete team begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qreq := s.reqRepo.WithTx(tx)
	settler := s.settler.WithTx(tx)

	if t.LeaderID != nil {
		if err := qreq.DeleteUnprocessedAssignmentsByApprover(ctx, *t.LeaderID); err != nil {
			return err
		}
		for _, rid := range candidates {
			if _, err := settler.SettleAwaiting(ctx, rid, actorID); err != nil {
				return err
			}
		}
	}

	if err := qtx.RemoveAllMembers(ctx, id); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete team persist failed",
			zap.Uint("team_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete team commit failed",
			zap.Uint("team_id", id),
			zap.Error(err),
		)
		return err
	}
	s.invalidateOptionsCache(ctx)
	s.logger.Info("delete team success", zap.Uint("team_id", id))
	return nil
}

func (s *service) AddMember(ctx context.Context, actorID, teamID, userID uint) error {
	s.logger.Debug("add team member requested",
		zap.Uint("team_id", teamID),
		zap.Uint("user_id", userID),
		zap.Uint("actor_id", actorID),
	)

	t, err := s.loadTeam(ctx, s.repo, teamID)
	if err != nil {
		return err
	}
	exists, err := s.reqRepo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return teamerrors.UserNotFound(userID)
	}
	member, err := s.repo.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member {
		return teamerrors.AlreadyMember(userID, teamID)
	}

	// Joining retroactively subjects the new member's in-flight requests to
	// the team leader's approval.
	var candidates []uint
	if t.LeaderID != nil && *t.LeaderID != userID {
		candidates, err = s.awaitingRequestIDsOfUsers(ctx, []uint{userID})
		if err != nil {
			return err
		}
	}
	unlock := s.lockAll(candidates)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add team member begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qreq := s.reqRepo.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	if err := qtx.AddMember(ctx, teamID, userID); err != nil {
		s.logger.Error("add team member persist failed", zap.Error(err))
		return err
	}

	pending := 0
	for _, rid := range candidates {
		r, err := qreq.FindByID(ctx, rid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if r.Status != request.StatusAwaiting {
			continue
		}
		pending++
		a, err := qreq.GetAssignment(ctx, rid, *t.LeaderID)
		if err != nil {
			return err
		}
		if a != nil {
			continue
		}
		if err := qreq.CreateAssignment(ctx, &request.ApproverAssignment{
			RequestID:  rid,
			ApproverID: *t.LeaderID,
		}); err != nil {
			return err
		}
	}

	if err := s.notifyMemberAdded(ctx, qtx, qreq, ntx, t, userID, pending); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add team member commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("add team member success",
		zap.Uint("team_id", teamID),
		zap.Uint("user_id", userID),
	)
	return nil
}

func (s *service) RemoveMember(ctx context.Context, actorID, teamID, userID uint) error {
	s.logger.Debug("remove team member requested",
		zap.Uint("team_id", teamID),
		zap.Uint("user_id", userID),
		zap.Uint("actor_id", actorID),
	)

	t, err := s.loadTeam(ctx, s.repo, teamID)
	if err != nil {
		return err
	}
	member, err := s.repo.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !member {
		return teamerrors.NotAMember(userID, teamID)
	}

	isLeader := t.LeaderID != nil && *t.LeaderID == userID

	var candidates []uint
	switch {
	case isLeader:
		candidates, err = s.reqRepo.RequestIDsWithUnprocessedApprover(ctx, userID)
	case t.LeaderID != nil:
		candidates, err = s.awaitingRequestIDsOfUsers(ctx, []uint{userID})
	}
	if err != nil {
		return err
	}
	unlock := s.lockAll(candidates)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove team member begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qreq := s.reqRepo.WithTx(tx)
	ntx := s.notifier.WithTx(tx)
	settler := s.settler.WithTx(tx)

	if isLeader {
		// The leader's pending approvals evaporate everywhere, not just
		// in this team, since leading this team was the only source of
		// their approver role.
		t.LeaderID = nil
		t.LastModifierID = actorID
		if err := qtx.Update(ctx, t); err != nil {
			return err
		}
		if err := qreq.DeleteUnprocessedAssignmentsByApprover(ctx, userID); err != nil {
			return err
		}
		for _, rid := range candidates {
			if _, err := settler.SettleAwaiting(ctx, rid, actorID); err != nil {
				return err
			}
		}
	} else if t.LeaderID != nil {
		// The team stops being a stakeholder in the departing member's
		// requests. Nobody replaces the leader's slot; the request may
		// settle as a result.
		for _, rid := range candidates {
			if err := qreq.DeleteAssignment(ctx, rid, *t.LeaderID); err != nil {
				return err
			}
			if _, err := settler.SettleAwaiting(ctx, rid, actorID); err != nil {
				return err
			}
		}
	}

	if err := qtx.RemoveMember(ctx, teamID, userID); err != nil {
		s.logger.Error("remove team member persist failed", zap.Error(err))
		return err
	}

	if err := s.notifyMemberRemoved(ctx, qtx, qreq, ntx, t, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove team member commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("remove team member success",
		zap.Uint("team_id", teamID),
		zap.Uint("user_id", userID),
		zap.Bool("was_leader", isLeader),
	)
	return nil
}

func (s *service) PromoteToLeader(ctx context.Context, actorID, teamID, userID uint) error {
	s.logger.Debug("promote team leader requested",
		zap.Uint("team_id", teamID),
		zap.Uint("user_id", userID),
		zap.Uint("actor_id", actorID),
	)

	t, err := s.loadTeam(ctx, s.repo, teamID)
	if err != nil {
		return err
	}
	exists, err := s.reqRepo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return teamerrors.UserNotFound(userID)
	}
	leads, err := s.repo.LeadsAnyTeam(ctx, userID, nil)
	if err != nil {
		return err
	}
	if leads {
		return teamerrors.AlreadyLeads(userID)
	}
	member, err := s.repo.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !member {
		return teamerrors.NotAMember(userID, teamID)
	}

	memberIDs, err := s.repo.MemberIDs(ctx, teamID)
	if err != nil {
		return err
	}
	candidates, err := s.awaitingRequestIDsOfUsers(ctx, memberIDs)
	if err != nil {
		return err
	}
	unlock := s.lockAll(candidates)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("promote team leader begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qreq := s.reqRepo.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	newLeader := userID
	if err := s.rewireLeadership(ctx, qreq, tx, candidates, t.LeaderID, &newLeader, actorID); err != nil {
		return err
	}

	t.LeaderID = &newLeader
	t.LastModifierID = actorID
	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("promote team leader persist failed", zap.Error(err))
		return err
	}

	if err := s.notifyLeaderChanged(ctx, qtx, qreq, ntx, t, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("promote team leader commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("promote team leader success",
		zap.Uint("team_id", teamID),
		zap.Uint("leader_id", userID),
	)
	return nil
}

// rewireLeadership swaps approver slots on the candidate requests: the old
// leader's slot goes away, the new leader (if any) gets an unprocessed one.
// The new leader's own requests are rewired too; they become an approver of
// their own leave, which is the documented behavior of a promotion.
func (s *service) rewireLeadership(
	ctx context.Context,
	qreq request.Repository,
	tx *sql.Tx,
	candidates []uint,
	oldLeader, newLeader *uint,
	actorID uint,
) error {
	settler := s.settler.WithTx(tx)

	for _, rid := range candidates {
		r, err := qreq.FindByID(ctx, rid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if r.Status != request.StatusAwaiting {
			continue
		}

		if oldLeader != nil {
			if err := qreq.DeleteAssignment(ctx, rid, *oldLeader); err != nil {
				return err
			}
		}
		if newLeader != nil {
			a, err := qreq.GetAssignment(ctx, rid, *newLeader)
			if err != nil {
				return err
			}
			if a == nil {
				if err := qreq.CreateAssignment(ctx, &request.ApproverAssignment{
					RequestID:  rid,
					ApproverID: *newLeader,
				}); err != nil {
					return err
				}
			}
			continue
		}

		// Leadership cleared with no successor: the request may have lost
		// its last unprocessed slot.
		if _, err := settler.SettleAwaiting(ctx, rid, actorID); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) notifyMemberAdded(
	ctx context.Context,
	qtx Repository,
	qreq request.Repository,
	ntx notification.Notifier,
	t *Team,
	userID uint,
	pending int,
) error {
	memberName := s.userName(ctx, qreq, userID)

	memberIDs, err := qtx.MemberIDs(ctx, t.ID)
	if err != nil {
		return err
	}

	var others []uint
	for _, id := range memberIDs {
		if id == userID {
			continue
		}
		if t.LeaderID != nil && id == *t.LeaderID {
			continue
		}
		others = append(others, id)
	}

	if len(memberIDs) > 1 && len(others) > 0 {
		emails, err := qreq.EmailsOf(ctx, others)
		if err != nil {
			return err
		}
		s.notify(ctx, ntx, emails, memberAddedSubject(t), memberAddedBody(t, memberName))
	}

	memberEmail, err := qreq.EmailOf(ctx, userID)
	if err != nil {
		return err
	}
	s.notify(ctx, ntx, []string{memberEmail}, memberAddedSubject(t), youWereAddedBody(t))

	if t.LeaderID != nil && *t.LeaderID != userID {
		leaderEmail, err := qreq.EmailOf(ctx, *t.LeaderID)
		if err != nil {
			return err
		}
		s.notify(ctx, ntx, []string{leaderEmail}, memberAddedSubject(t), leaderPendingBody(t, memberName, pending))
	}
	return nil
}

func (s *service) notifyMemberRemoved(
	ctx context.Context,
	qtx Repository,
	qreq request.Repository,
	ntx notification.Notifier,
	t *Team,
	userID uint,
) error {
	memberName := s.userName(ctx, qreq, userID)

	remaining, err := qtx.MemberIDs(ctx, t.ID)
	if err != nil {
		return err
	}
	if len(remaining) > 0 {
		emails, err := qreq.EmailsOf(ctx, remaining)
		if err != nil {
			return err
		}
		s.notify(ctx, ntx, emails, memberRemovedSubject(t), memberRemovedBody(t, memberName))
	}

	removedEmail, err := qreq.EmailOf(ctx, userID)
	if err != nil {
		return err
	}
	s.notify(ctx, ntx, []string{removedEmail}, memberRemovedSubject(t), youWereRemovedBody(t))
	return nil
}

func (s *service) notifyLeaderChanged(
	ctx context.Context,
	qtx Repository,
	qreq request.Repository,
	ntx notification.Notifier,
	t *Team,
	leaderID uint,
) error {
	leaderName := s.userName(ctx, qreq, leaderID)

	memberIDs, err := qtx.MemberIDs(ctx, t.ID)
	if err != nil {
		return err
	}
	emails, err := qreq.EmailsOf(ctx, memberIDs)
	if err != nil {
		return err
	}
	s.notify(ctx, ntx, emails, leaderChangedSubject(t), leaderChangedBody(t, leaderName))
	return nil
}

// awaitingRequestIDsOfUsers collects the awaiting request ids of the given
// requesters, deduplicated and sorted ascending for the lock order.
func (s *service) awaitingRequestIDsOfUsers(ctx context.Context, userIDs []uint) ([]uint, error) {
	seen := make(map[uint]struct{})
	var ids []uint
	for _, uid := range userIDs {
		requests, err := s.reqRepo.FindByRequester(ctx, uid)
		if err != nil {
			return nil, err
		}
		for _, r := range requests {
			if r.Status != request.StatusAwaiting {
				continue
			}
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			ids = append(ids, r.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// lockAll takes the keyed lock on every id (already sorted ascending) and
// returns the matching unlock.
func (s *service) lockAll(ids []uint) func() {
	for _, id := range ids {
		s.locks.Lock(id)
	}
	return func() {
		for i := len(ids) - 1; i >= 0; i-- {
			s.locks.Unlock(ids[i])
		}
	}
}

func (s *service) loadTeam(ctx context.Context, repo Repository, id uint) (*Team, error) {
	t, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamerrors.TeamNotFound(id)
		}
		return nil, err
	}
	return t, nil
}

func (s *service) userName(ctx context.Context, qreq request.Repository, userID uint) string {
	names, err := qreq.UserNamesOf(ctx, []uint{userID})
	if err != nil || len(names) == 0 {
		return formatActor(userID)
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

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, TeamOptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate team options cache",
			zap.String("key", TeamOptionsCacheKey),
			zap.Error(err),
		)
	}
}

func sameLeader(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
