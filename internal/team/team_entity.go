package team

import "time"

type Team struct {
	ID          uint   `gorm:"primaryKey"`
	// Title uniqueness is case-insensitive; the unique index lives on
	// LOWER(title) and is created in migrate, gorm tags cannot express it.
	Title       string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`

	// LeaderID is nil while the team has no leader; leadership is cleared
	// when the leader leaves the team.
	LeaderID *uint `gorm:"index"`

	CreatorID      uint `gorm:"not null"`
	LastModifierID uint `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TeamMember struct {
	TeamID    uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (TeamMember) TableName() string {
	return "team_members"
}
