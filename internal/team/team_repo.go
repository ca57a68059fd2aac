package team

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, t *Team) error
	FindByID(ctx context.Context, id uint) (*Team, error)
	FindByTitle(ctx context.Context, title string) (*Team, error)
	FindAll(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id uint) error

	AddMember(ctx context.Context, teamID, userID uint) error
	RemoveMember(ctx context.Context, teamID, userID uint) error
	RemoveAllMembers(ctx context.Context, teamID uint) error
	RemoveUserFromAllTeams(ctx context.Context, userID uint) error
	IsMember(ctx context.Context, teamID, userID uint) (bool, error)
	MemberIDs(ctx context.Context, teamID uint) ([]uint, error)
	TeamsOfUser(ctx context.Context, userID uint) ([]Team, error)
	LeadsAnyTeam(ctx context.Context, userID uint, excludeTeamID *uint) (bool, error)
	ClearLeadership(ctx context.Context, userID uint) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Team, error) {
	var t Team
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

// FindByTitle matches case-insensitively; title uniqueness is enforced on
// the lowercased value. Returns nil, nil when no team carries the title.
func (r *repository) FindByTitle(ctx context.Context, title string) (*Team, error) {
	var t Team
	err := r.db.WithContext(ctx).
		Where("LOWER(title) = ?", strings.ToLower(title)).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) Update(ctx context.Context, t *Team) error {
	// Save writes every column, so a nil LeaderID clears leadership.
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Team{}, "id = ?", id).Error
}

func (r *repository) AddMember(ctx context.Context, teamID, userID uint) error {
	return r.db.WithContext(ctx).Create(&TeamMember{TeamID: teamID, UserID: userID}).Error
}

func (r *repository) RemoveMember(ctx context.Context, teamID, userID uint) error {
	return r.db.WithContext(ctx).
		Delete(&TeamMember{}, "team_id = ? AND user_id = ?", teamID, userID).Error
}

func (r *repository) RemoveAllMembers(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).
		Delete(&TeamMember{}, "team_id = ?", teamID).Error
}

func (r *repository) RemoveUserFromAllTeams(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Delete(&TeamMember{}, "user_id = ?", userID).Error
}

func (r *repository) IsMember(ctx context.Context, teamID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TeamMember{}).
		Where("team_id = ?", teamID).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) MemberIDs(ctx context.Context, teamID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&TeamMember{}).
		Where("team_id = ?", teamID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) TeamsOfUser(ctx context.Context, userID uint) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).
		Joins("JOIN team_members tm ON tm.team_id = teams.id").
		Where("tm.user_id = ?", userID).
		Order("teams.id ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) LeadsAnyTeam(ctx context.Context, userID uint, excludeTeamID *uint) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Team{}).
		Where("leader_id = ?", userID)
	if excludeTeamID != nil {
		db = db.Where("id <> ?", *excludeTeamID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) ClearLeadership(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&Team{}).
		Where("leader_id = ?", userID).
		Update("leader_id", nil).Error
}
