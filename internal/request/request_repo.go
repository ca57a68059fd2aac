package request

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, r *TimeOffRequest) error
	FindByID(ctx context.Context, id uint) (*TimeOffRequest, error)
	Update(ctx context.Context, r *TimeOffRequest) error
	Delete(ctx context.Context, id uint) error

	FindByRequester(ctx context.Context, requesterID uint) ([]TimeOffRequest, error)
	FindByStatus(ctx context.Context, status string) ([]TimeOffRequest, error)
	FindAwaitingByApprover(ctx context.Context, approverID uint) ([]TimeOffRequest, error)
	FindOverlapping(ctx context.Context, requesterID uint, start, end time.Time, excludeID *uint) (*TimeOffRequest, error)
	HasActiveApprovedRequest(ctx context.Context, requesterID uint, at time.Time) (bool, error)

	GetAssignments(ctx context.Context, requestID uint) ([]ApproverAssignment, error)
	GetAssignment(ctx context.Context, requestID, approverID uint) (*ApproverAssignment, error)
	CreateAssignment(ctx context.Context, a *ApproverAssignment) error
	UpdateAssignment(ctx context.Context, a *ApproverAssignment) error
	ResetAssignments(ctx context.Context, requestID uint) error
	DeleteAssignments(ctx context.Context, requestID uint) error
	DeleteAssignment(ctx context.Context, requestID, approverID uint) error
	DeleteUnprocessedAssignmentsByApprover(ctx context.Context, approverID uint) error
	RequestIDsWithUnprocessedApprover(ctx context.Context, approverID uint) ([]uint, error)
	CountUnprocessedAssignments(ctx context.Context, requestID uint) (int64, error)

	UserExists(ctx context.Context, userID uint) (bool, error)
	EmailsOf(ctx context.Context, userIDs []uint) ([]string, error)
	EmailOf(ctx context.Context, userID uint) (string, error)
	UserNamesOf(ctx context.Context, userIDs []uint) ([]string, error)
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

func (r *repository) Create(ctx context.Context, req *TimeOffRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*TimeOffRequest, error) {
	var req TimeOffRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) Update(ctx context.Context, req *TimeOffRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&TimeOffRequest{}, "id = ?", id).Error
}

func (r *repository) FindByRequester(ctx context.Context, requesterID uint) ([]TimeOffRequest, error) {
	var reqs []TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("start_date DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]TimeOffRequest, error) {
	var reqs []TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_date DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindAwaitingByApprover(ctx context.Context, approverID uint) ([]TimeOffRequest, error) {
	var reqs []TimeOffRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN approver_assignments aa ON aa.request_id = time_off_requests.id").
		Where("aa.approver_id = ?", approverID).
		Where("aa.is_processed = ?", false).
		Where("time_off_requests.status = ?", StatusAwaiting).
		Order("time_off_requests.start_date ASC").
		Find(&reqs).Error
	return reqs, err
}

// FindOverlapping returns the first non-rejected request of the requester
// whose interval collides with [start, end]. The boundary rule is
// deliberately asymmetric: an existing request ending exactly on start does
// not collide, one starting exactly on end does.
func (r *repository) FindOverlapping(ctx context.Context, requesterID uint, start, end time.Time, excludeID *uint) (*TimeOffRequest, error) {
	db := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date <= ? OR start_date > ?)", start, end)

	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var req TimeOffRequest
	err := db.First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) HasActiveApprovedRequest(ctx context.Context, requesterID uint, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TimeOffRequest{}).
		Where("requester_id = ?", requesterID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ?", at).
		Where("end_date >= ?", at).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) GetAssignments(ctx context.Context, requestID uint) ([]ApproverAssignment, error) {
	var assignments []ApproverAssignment
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("approver_id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) GetAssignment(ctx context.Context, requestID, approverID uint) (*ApproverAssignment, error) {
	var a ApproverAssignment
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Where("approver_id = ?", approverID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) CreateAssignment(ctx context.Context, a *ApproverAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) UpdateAssignment(ctx context.Context, a *ApproverAssignment) error {
	return r.db.WithContext(ctx).
		Model(&ApproverAssignment{}).
		Where("request_id = ?", a.RequestID).
		Where("approver_id = ?", a.ApproverID).
		Update("is_processed", a.IsProcessed).Error
}

func (r *repository) ResetAssignments(ctx context.Context, requestID uint) error {
	return r.db.WithContext(ctx).
		Model(&ApproverAssignment{}).
		Where("request_id = ?", requestID).
		Update("is_processed", false).Error
}

func (r *repository) DeleteAssignments(ctx context.Context, requestID uint) error {
	return r.db.WithContext(ctx).
		Delete(&ApproverAssignment{}, "request_id = ?", requestID).Error
}

func (r *repository) DeleteAssignment(ctx context.Context, requestID, approverID uint) error {
	return r.db.WithContext(ctx).
		Delete(&ApproverAssignment{}, "request_id = ? AND approver_id = ?", requestID, approverID).Error
}

func (r *repository) DeleteUnprocessedAssignmentsByApprover(ctx context.Context, approverID uint) error {
	return r.db.WithContext(ctx).
		Delete(&ApproverAssignment{}, "approver_id = ? AND is_processed = ?", approverID, false).Error
}

// RequestIDsWithUnprocessedApprover lists the requests where the approver
// still owes an answer. Callers take the keyed lock per id before mutating.
func (r *repository) RequestIDsWithUnprocessedApprover(ctx context.Context, approverID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&ApproverAssignment{}).
		Where("approver_id = ?", approverID).
		Where("is_processed = ?", false).
		Order("request_id ASC").
		Pluck("request_id", &ids).Error
	return ids, err
}

func (r *repository) CountUnprocessedAssignments(ctx context.Context, requestID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ApproverAssignment{}).
		Where("request_id = ?", requestID).
		Where("is_processed = ?", false).
		Count(&count).Error
	return count, err
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmailsOf(ctx context.Context, userIDs []uint) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var emails []string
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id IN ?", userIDs).
		Order("id ASC").
		Pluck("email", &emails).Error
	return emails, err
}

func (r *repository) EmailOf(ctx context.Context, userID uint) (string, error) {
	emails, err := r.EmailsOf(ctx, []uint{userID})
	if err != nil {
		return "", err
	}
	if len(emails) == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return emails[0], nil
}

func (r *repository) UserNamesOf(ctx context.Context, userIDs []uint) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var names []string
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id IN ?", userIDs).
		Order("id ASC").
		Pluck("user_name", &names).Error
	return names, err
}
