package user

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"go-workforce/internal/request"
	"go-workforce/internal/shared/lock"
	"go-workforce/internal/team"
	teamerrors "go-workforce/internal/team/errors"
	usererrors "go-workforce/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID uint, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id uint) (UserDetailResponse, error)
	Update(ctx context.Context, actorID, id uint, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, id uint) error
}

// service owns user accounts. Deleting one is the heavy operation: the
// user's own requests disappear, their pending approver slots disappear,
// any team they led loses its leader, and awaiting requests left with only
// processed assignments settle to APPROVED.
type service struct {
	db       *sql.DB
	repo     Repository
	teamRepo team.Repository
	reqRepo  request.Repository
	settler  *request.Settler
	locks    *lock.Keyed
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	teamRepo team.Repository,
	reqRepo request.Repository,
	settler *request.Settler,
	locks *lock.Keyed,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		teamRepo: teamRepo,
		reqRepo:  reqRepo,
		settler:  settler,
		locks:    locks,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actorID uint, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.Uint("actor_id", actorID),
		zap.String("user_name", req.UserName),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qteam := s.teamRepo.WithTx(tx)

	if err := s.checkUniqueness(ctx, qtx, req.UserName, req.Email, nil); err != nil {
		return UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		UserName:       req.UserName,
		Email:          strings.ToLower(req.Email),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PasswordHash:   string(hash),
		Role:           req.Role,
		CreatorID:      actorID,
		LastModifierID: actorID,
	}
	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	// The fresh account has no requests yet, so the initial join carries
	// none of the membership fallout.
	if req.TeamID != nil {
		if _, err := qteam.FindByID(ctx, *req.TeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return UserResponse{}, teamerrors.TeamNotFound(*req.TeamID)
			}
			return UserResponse{}, err
		}
		if err := qteam.AddMember(ctx, *req.TeamID, u.ID); err != nil {
			return UserResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}
	s.logger.Info("create user success",
		zap.Uint("user_id", u.ID),
		zap.String("user_name", u.UserName),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (UserDetailResponse, error) {
	u, err := s.loadUser(ctx, s.repo, id)
	if err != nil {
		return UserDetailResponse{}, err
	}

	teams, err := s.teamRepo.TeamsOfUser(ctx, id)
	if err != nil {
		return UserDetailResponse{}, err
	}
	teamTitles := make([]string, 0, len(teams))
	ledTitles := []string{}
	for _, t := range teams {
		teamTitles = append(teamTitles, t.Title)
		if t.LeaderID != nil && *t.LeaderID == id {
			ledTitles = append(ledTitles, t.Title)
		}
	}

	requests, err := s.reqRepo.FindByRequester(ctx, id)
	if err != nil {
		return UserDetailResponse{}, err
	}

	return UserDetailResponse{
		UserResponse: mapToResponse(*u),
		Teams:        teamTitles,
		LedTeams:     ledTitles,
		RequestCount: len(requests),
	}, nil
}

func (s *service) Update(ctx context.Context, actorID, id uint, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested",
		zap.Uint("user_id", id),
		zap.Uint("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := s.loadUser(ctx, qtx, id)
	if err != nil {
		return UserResponse{}, err
	}

	if err := s.checkUniqueness(ctx, qtx, req.UserName, req.Email, &id); err != nil {
		return UserResponse{}, err
	}

	u.UserName = req.UserName
	u.Email = strings.ToLower(req.Email)
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Role = req.Role
	u.LastModifierID = actorID

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, err
		}
		u.PasswordHash = string(hash)
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update user commit failed",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return UserResponse{}, err
	}
	s.logger.Info("update user success", zap.Uint("user_id", id))

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	s.logger.Debug("delete user requested",
		zap.Uint("user_id", id),
		zap.Uint("actor_id", actorID),
	)

	u, err := s.loadUser(ctx, s.repo, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(u.UserName, InitialAdminUserName) {
		return usererrors.ErrInitialAdminProtected
	}

	// Lock every request the deletion touches: the user's own, and those
	// still waiting on their answer.
	approvable, err := s.reqRepo.RequestIDsWithUnprocessedApprover(ctx, id)
	if err != nil {
		return err
	}
	own, err := s.reqRepo.FindByRequester(ctx, id)
	if err != nil {
		return err
	}
	seen := make(map[uint]struct{})
	var candidates []uint
	for _, rid := range approvable {
		if _, ok := seen[rid]; !ok {
			seen[rid] = struct{}{}
			candidates = append(candidates, rid)
		}
	}
	ownIDs := make([]uint, 0, len(own))
	for _, r := range own {
		ownIDs = append(ownIDs, r.ID)
		if _, ok := seen[r.ID]; !ok {
			seen[r.ID] = struct{}{}
			candidates = append(candidates, r.ID)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	unlock := s.lockAll(candidates)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete user begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qteam := s.teamRepo.WithTx(tx)
	qreq := s.reqRepo.WithTx(tx)
	settler := s.settler.WithTx(tx)

	// 1. The user stops being an approver; requests that only waited on
	// them settle.
	if err := qreq.DeleteUnprocessedAssignmentsByApprover(ctx, id); err != nil {
		return err
	}
	for _, rid := range approvable {
		if _, err := settler.SettleAwaiting(ctx, rid, actorID); err != nil {
			return err
		}
	}

	// 2. Any team they led loses its leader.
	if err := qteam.ClearLeadership(ctx, id); err != nil {
		return err
	}

	// 3. Their own requests and assignments go away.
	for _, rid := range ownIDs {
		if err := qreq.DeleteAssignments(ctx, rid); err != nil {
			return err
		}
		if err := qreq.Delete(ctx, rid); err != nil {
			return err
		}
	}

	// 4. Memberships, then the account itself.
	if err := qteam.RemoveUserFromAllTeams(ctx, id); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete user persist failed",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete user commit failed",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("delete user success", zap.Uint("user_id", id))
	return nil
}

func (s *service) checkUniqueness(ctx context.Context, qtx Repository, userName, email string, excludeID *uint) error {
	byName, err := qtx.FindByUserName(ctx, userName)
	if err != nil {
		return err
	}
	if byName != nil && (excludeID == nil || byName.ID != *excludeID) {
		return usererrors.UserNameTaken(userName)
	}

	byEmail, err := qtx.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if byEmail != nil && (excludeID == nil || byEmail.ID != *excludeID) {
		return usererrors.EmailTaken(email)
	}
	return nil
}

func (s *service) loadUser(ctx context.Context, repo Repository, id uint) (*User, error) {
	u, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.UserNotFound(id)
		}
		return nil, err
	}
	return u, nil
}

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
