package user_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"go-workforce/internal/notification"
	"go-workforce/internal/request"
	"go-workforce/internal/shared/lock"
	"go-workforce/internal/team"
	"go-workforce/internal/user"
	usererrors "go-workforce/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn         func(ctx context.Context, u *user.User) error
	findByIDFn       func(ctx context.Context, id uint) (*user.User, error)
	findByUserNameFn func(ctx context.Context, userName string) (*user.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*user.User, error)
	findAllFn        func(ctx context.Context) ([]user.User, error)
	updateFn         func(ctx context.Context, u *user.User) error
	deleteFn         func(ctx context.Context, id uint) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByUserName(ctx context.Context, userName string) (*user.User, error) {
	if f.findByUserNameFn != nil {
		return f.findByUserNameFn(ctx, userName)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id uint) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeTeamRepository struct {
	findByIDFn               func(ctx context.Context, id uint) (*team.Team, error)
	addMemberFn              func(ctx context.Context, teamID, userID uint) error
	teamsOfUserFn            func(ctx context.Context, userID uint) ([]team.Team, error)
	clearLeadershipFn        func(ctx context.Context, userID uint) error
	removeUserFromAllTeamsFn func(ctx context.Context, userID uint) error
}

func (f *fakeTeamRepository) WithTx(tx *sql.Tx) team.Repository { return f }

func (f *fakeTeamRepository) Create(ctx context.Context, t *team.Team) error { return nil }

func (f *fakeTeamRepository) FindByID(ctx context.Context, id uint) (*team.Team, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTeamRepository) FindByTitle(ctx context.Context, title string) (*team.Team, error) {
	return nil, nil
}

func (f *fakeTeamRepository) FindAll(ctx context.Context) ([]team.Team, error) { return nil, nil }

func (f *fakeTeamRepository) Update(ctx context.Context, t *team.Team) error { return nil }

func (f *fakeTeamRepository) Delete(ctx context.Context, id uint) error { return nil }

func (f *fakeTeamRepository) AddMember(ctx context.Context, teamID, userID uint) error {
	if f.addMemberFn != nil {
		return f.addMemberFn(ctx, teamID, userID)
	}
	return nil
}

func (f *fakeTeamRepository) RemoveMember(ctx context.Context, teamID, userID uint) error {
	return nil
}

func (f *fakeTeamRepository) RemoveAllMembers(ctx context.Context, teamID uint) error { return nil }

func (f *fakeTeamRepository) RemoveUserFromAllTeams(ctx context.Context, userID uint) error {
	if f.removeUserFromAllTeamsFn != nil {
		return f.removeUserFromAllTeamsFn(ctx, userID)
	}
	return nil
}

func (f *fakeTeamRepository) IsMember(ctx context.Context, teamID, userID uint) (bool, error) {
	return false, nil
}

func (f *fakeTeamRepository) MemberIDs(ctx context.Context, teamID uint) ([]uint, error) {
	return nil, nil
}

func (f *fakeTeamRepository) TeamsOfUser(ctx context.Context, userID uint) ([]team.Team, error) {
	if f.teamsOfUserFn != nil {
		return f.teamsOfUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeTeamRepository) LeadsAnyTeam(ctx context.Context, userID uint, excludeTeamID *uint) (bool, error) {
	return false, nil
}

func (f *fakeTeamRepository) ClearLeadership(ctx context.Context, userID uint) error {
	if f.clearLeadershipFn != nil {
		return f.clearLeadershipFn(ctx, userID)
	}
	return nil
}

type fakeWorkflowRepository struct {
	findByIDFn                             func(ctx context.Context, id uint) (*request.TimeOffRequest, error)
	updateFn                               func(ctx context.Context, r *request.TimeOffRequest) error
	deleteFn                               func(ctx context.Context, id uint) error
	findByRequesterFn                      func(ctx context.Context, requesterID uint) ([]request.TimeOffRequest, error)
	deleteAssignmentsFn                    func(ctx context.Context, requestID uint) error
	deleteUnprocessedAssignmentsByApprover func(ctx context.Context, approverID uint) error
	requestIDsWithUnprocessedApproverFn    func(ctx context.Context, approverID uint) ([]uint, error)
	countUnprocessedAssignmentsFn          func(ctx context.Context, requestID uint) (int64, error)
}

func (f *fakeWorkflowRepository) WithTx(tx *sql.Tx) request.Repository { return f }

func (f *fakeWorkflowRepository) Create(ctx context.Context, r *request.TimeOffRequest) error {
	return nil
}

func (f *fakeWorkflowRepository) FindByID(ctx context.Context, id uint) (*request.TimeOffRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkflowRepository) Update(ctx context.Context, r *request.TimeOffRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeWorkflowRepository) Delete(ctx context.Context, id uint) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeWorkflowRepository) FindByRequester(ctx context.Context, requesterID uint) ([]request.TimeOffRequest, error) {
	if f.findByRequesterFn != nil {
		return f.findByRequesterFn(ctx, requesterID)
	}
	return nil, nil
}

func (f *fakeWorkflowRepository) FindByStatus(ctx context.Context, status string) ([]request.TimeOffRequest, error) {
	return nil, nil
}

func (f *fakeWorkflowRepository) FindAwaitingByApprover(ctx context.Context, approverID uint) ([]request.TimeOffRequest, error) {
	return nil, nil
}

func (f *fakeWorkflowRepository) FindOverlapping(ctx context.Context, requesterID uint, start, end time.Time, excludeID *uint) (*request.TimeOffRequest, error) {
	return nil, nil
}

func (f *fakeWorkflowRepository) HasActiveApprovedRequest(ctx context.Context, requesterID uint, at time.Time) (bool, error) {
	return false, nil
}

func (f *fakeWorkflowRepository) GetAssignments(ctx context.Context, requestID uint) ([]request.ApproverAssignment, error) {
	return nil, nil
}

func (f *fakeWorkflowRepository) GetAssignment(ctx context.Context, requestID, approverID uint) (*request.ApproverAssignment, error) {
	return nil, nil
}

func (f *fakeWorkflowRepository) CreateAssignment(ctx context.Context, a *request.ApproverAssignment) error {
	return nil
}

func (f *fakeWorkflowRepository) UpdateAssignment(ctx context.Context, a *request.ApproverAssignment) error {
	return nil
}

func (f *fakeWorkflowRepository) ResetAssignments(ctx context.Context, requestID uint) error {
	return nil
}

func (f *fakeWorkflowRepository) DeleteAssignments(ctx context.Context, requestID uint) error {
	if f.deleteAssignmentsFn != nil {
		return f.deleteAssignmentsFn(ctx, requestID)
	}
	return nil
}

func (f *fakeWorkflowRepository) DeleteAssignment(ctx context.Context, requestID, approverID uint) error {
	return nil
}

func (f *fakeWorkflowRepository) DeleteUnprocessedAssignmentsByApprover(ctx context.Context, approverID uint) error {
	if f.deleteUnprocessedAssignmentsByApprover != nil {
		return f.deleteUnprocessedAssignmentsByApprover(ctx, approverID)
	}
	return nil
}

func (f *fakeWorkflowRepository) RequestIDsWithUnprocessedApprover(ctx context.Context, approverID uint) ([]uint, error) {
	if f.requestIDsWithUnprocessedApproverFn != nil {
		return f.requestIDsWithUnprocessedApproverFn(ctx, approverID)
	}
	return nil, nil
}

func (f *fakeWorkflowRepository) CountUnprocessedAssignments(ctx context.Context, requestID uint) (int64, error) {
	if f.countUnprocessedAssignmentsFn != nil {
		return f.countUnprocessedAssignmentsFn(ctx, requestID)
	}
	return 0, nil
}

func (f *fakeWorkflowRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	return true, nil
}

func (f *fakeWorkflowRepository) EmailsOf(ctx context.Context, userIDs []uint) ([]string, error) {
	emails := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		emails = append(emails, fmt.Sprintf("user%d@example.com", id))
	}
	return emails, nil
}

func (f *fakeWorkflowRepository) EmailOf(ctx context.Context, userID uint) (string, error) {
	return fmt.Sprintf("user%d@example.com", userID), nil
}

func (f *fakeWorkflowRepository) UserNamesOf(ctx context.Context, userIDs []uint) ([]string, error) {
	return nil, nil
}

type fakeNotifier struct {
	calls int
}

func (f *fakeNotifier) WithTx(tx *sql.Tx) notification.Notifier { return f }

func (f *fakeNotifier) Notify(ctx context.Context, recipients []string, subject, body string) error {
	f.calls++
	return nil
}

type userServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  user.Service
	repo     *fakeUserRepository
	teamRepo *fakeTeamRepository
	reqRepo  *fakeWorkflowRepository
	notifier *fakeNotifier
}

func setupUserServiceTest(t *testing.T) *userServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeUserRepository{}
	teamRepo := &fakeTeamRepository{}
	reqRepo := &fakeWorkflowRepository{}
	notifier := &fakeNotifier{}
	settler := request.NewSettler(reqRepo, notifier, zap.NewNop())
	svc := user.NewService(db, repo, teamRepo, reqRepo, settler, lock.NewKeyed(), zap.NewNop())

	return &userServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		teamRepo: teamRepo,
		reqRepo:  reqRepo,
		notifier: notifier,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func uintPtr(v uint) *uint { return &v }

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes the password", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var created *user.User
		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			created = u
			u.ID = 5
			return nil
		}

		resp, err := deps.service.Create(ctx, 1, user.CreateUserRequest{
			UserName:  "mpetrova",
			Email:     "M.Petrova@Example.com",
			FirstName: "Maria",
			LastName:  "Petrova",
			Password:  "s3cret-pass",
			Role:      user.RoleEmployee,
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(5), resp.ID)
		assert.Equal(t, "mpetrova", resp.UserName)
		assert.Equal(t, "m.petrova@example.com", resp.Email)
		assert.NotNil(t, created)
		assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success joins the initial team", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			u.ID = 5
			return nil
		}
		deps.teamRepo.findByIDFn = func(ctx context.Context, id uint) (*team.Team, error) {
			return &team.Team{ID: 10, Title: "Backend"}, nil
		}
		var joinedTeam, joinedUser uint
		deps.teamRepo.addMemberFn = func(ctx context.Context, teamID, userID uint) error {
			joinedTeam, joinedUser = teamID, userID
			return nil
		}

		_, err := deps.service.Create(ctx, 1, user.CreateUserRequest{
			UserName: "mpetrova",
			Email:    "m.petrova@example.com",
			Password: "s3cret-pass",
			Role:     user.RoleEmployee,
			TeamID:   uintPtr(10),
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(10), joinedTeam)
		assert.Equal(t, uint(5), joinedUser)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative username taken", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByUserNameFn = func(ctx context.Context, userName string) (*user.User, error) {
			return &user.User{ID: 3, UserName: userName}, nil
		}

		_, err := deps.service.Create(ctx, 1, user.CreateUserRequest{
			UserName: "mpetrova",
			Email:    "m.petrova@example.com",
			Password: "s3cret-pass",
			Role:     user.RoleEmployee,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "username 'mpetrova' already exists")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative initial team does not exist", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			u.ID = 5
			return nil
		}

		_, err := deps.service.Create(ctx, 1, user.CreateUserRequest{
			UserName: "mpetrova",
			Email:    "m.petrova@example.com",
			Password: "s3cret-pass",
			Role:     user.RoleEmployee,
			TeamID:   uintPtr(404),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "team with id '404' does not exist")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success lists teams and led teams", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: 2, UserName: "lena", Email: "lena@example.com", Role: user.RoleEmployee}, nil
		}
		deps.teamRepo.teamsOfUserFn = func(ctx context.Context, userID uint) ([]team.Team, error) {
			return []team.Team{
				{ID: 10, Title: "Backend", LeaderID: uintPtr(2)},
				{ID: 11, Title: "Guild", LeaderID: uintPtr(9)},
			}, nil
		}
		deps.reqRepo.findByRequesterFn = func(ctx context.Context, requesterID uint) ([]request.TimeOffRequest, error) {
			return []request.TimeOffRequest{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		}

		resp, err := deps.service.GetByID(ctx, 2)

		assert.NoError(t, err)
		assert.Equal(t, []string{"Backend", "Guild"}, resp.Teams)
		assert.Equal(t, []string{"Backend"}, resp.LedTeams)
		assert.Equal(t, 3, resp.RequestCount)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, 404)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "user with id '404' does not exist")
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps the password when none is supplied", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: 2, UserName: "lena", Email: "lena@example.com", PasswordHash: "$existing-hash", Role: user.RoleEmployee}, nil
		}
		var saved *user.User
		deps.repo.updateFn = func(ctx context.Context, u *user.User) error {
			saved = u
			return nil
		}

		_, err := deps.service.Update(ctx, 1, 2, user.UpdateUserRequest{
			UserName:  "lena",
			Email:     "lena@example.com",
			FirstName: "Lena",
			LastName:  "Ivanova",
			Role:      user.RoleAdmin,
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, "$existing-hash", saved.PasswordHash)
		assert.Equal(t, user.RoleAdmin, saved.Role)
		assert.Equal(t, uint(1), saved.LastModifierID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rehashes when a password is supplied", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: 2, UserName: "lena", Email: "lena@example.com", PasswordHash: "$existing-hash", Role: user.RoleEmployee}, nil
		}
		var saved *user.User
		deps.repo.updateFn = func(ctx context.Context, u *user.User) error {
			saved = u
			return nil
		}

		_, err := deps.service.Update(ctx, 1, 2, user.UpdateUserRequest{
			UserName: "lena",
			Email:    "lena@example.com",
			Password: "brand-new-pass",
			Role:     user.RoleEmployee,
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.NotEqual(t, "$existing-hash", saved.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("brand-new-pass")))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("same user keeps their own username", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: 2, UserName: "lena", Email: "lena@example.com", Role: user.RoleEmployee}, nil
		}
		deps.repo.findByUserNameFn = func(ctx context.Context, userName string) (*user.User, error) {
			return &user.User{ID: 2, UserName: userName}, nil
		}

		_, err := deps.service.Update(ctx, 1, 2, user.UpdateUserRequest{
			UserName: "lena",
			Email:    "lena@example.com",
			Role:     user.RoleEmployee,
		})

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletion settles requests the user was meant to approve", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: 2, UserName: "lena", Email: "lena@example.com", Role: user.RoleEmployee}, nil
		}
		// request 7 waits on the user's answer; request 9 is their own
		deps.reqRepo.requestIDsWithUnprocessedApproverFn = func(ctx context.Context, approverID uint) ([]uint, error) {
			assert.Equal(t, uint(2), approverID)
			return []uint{7}, nil
		}
		deps.reqRepo.findByRequesterFn = func(ctx context.Context, requesterID uint) ([]request.TimeOffRequest, error) {
			return []request.TimeOffRequest{{ID: 9, RequesterID: 2, Status: request.StatusCreated}}, nil
		}
		deps.reqRepo.findByIDFn = func(ctx context.Context, id uint) (*request.TimeOffRequest, error) {
			return &request.TimeOffRequest{
				ID:          7,
				RequesterID: 5,
				Type:        request.TypePaid,
				StartDate:   time.Date(2022, 12, 12, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2022, 12, 13, 0, 0, 0, 0, time.UTC),
				Status:      request.StatusAwaiting,
			}, nil
		}

		var purgedApprover uint
		deps.reqRepo.deleteUnprocessedAssignmentsByApprover = func(ctx context.Context, approverID uint) error {
			purgedApprover = approverID
			return nil
		}
		var settled *request.TimeOffRequest
		deps.reqRepo.updateFn = func(ctx context.Context, r *request.TimeOffRequest) error {
			settled = r
			return nil
		}
		var clearedLeader uint
		deps.teamRepo.clearLeadershipFn = func(ctx context.Context, userID uint) error {
			clearedLeader = userID
			return nil
		}
		var deletedRequests []uint
		deps.reqRepo.deleteFn = func(ctx context.Context, id uint) error {
			deletedRequests = append(deletedRequests, id)
			return nil
		}
		var removedFromTeams uint
		deps.teamRepo.removeUserFromAllTeamsFn = func(ctx context.Context, userID uint) error {
			removedFromTeams = userID
			return nil
		}
		var deletedUser uint
		deps.repo.deleteFn = func(ctx context.Context, id uint) error {
			deletedUser = id
			return nil
		}

		err := deps.service.Delete(ctx, 1, 2)

		assert.NoError(t, err)
		assert.Equal(t, uint(2), purgedApprover)
		assert.NotNil(t, settled)
		assert.Equal(t, request.StatusApproved, settled.Status)
		assert.Equal(t, uint(1), settled.LastModifierID)
		assert.Equal(t, uint(2), clearedLeader)
		assert.Equal(t, []uint{9}, deletedRequests)
		assert.Equal(t, uint(2), removedFromTeams)
		assert.Equal(t, uint(2), deletedUser)
		assert.Equal(t, 1, deps.notifier.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative initial admin is protected", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: 1, UserName: "Admin", Email: "admin@workforce.local", Role: user.RoleAdmin}, nil
		}

		err := deps.service.Delete(ctx, 1, 1)

		assert.ErrorIs(t, err, usererrors.ErrInitialAdminProtected)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Delete(ctx, 1, 404)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})
}
