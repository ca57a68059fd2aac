package request

import (
	"time"
)

type TimeOffRequest struct {
	ID uint `gorm:"primaryKey"`

	// Requester owns the calendar time; Creator submitted the request and
	// may differ (admin filing on behalf of someone).
	RequesterID uint `gorm:"not null;index:idx_requests_requester_dates"`
	CreatorID   uint `gorm:"not null"`

	Type        string    `gorm:"type:varchar(20);not null;default:'PAID'"`
	Description string    `gorm:"type:text"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_requests_requester_dates"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_requests_requester_dates"`

	Status string `gorm:"type:varchar(20);not null;default:'CREATED';index:idx_requests_status"`

	LastModifierID uint `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApproverAssignment is one approver's slot on one request. IsProcessed
// flips when that approver answers; the pair is unique.
type ApproverAssignment struct {
	RequestID   uint `gorm:"primaryKey;autoIncrement:false"`
	ApproverID  uint `gorm:"primaryKey;autoIncrement:false"`
	IsProcessed bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ApproverAssignment) TableName() string {
	return "approver_assignments"
}
