package user

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"

	// InitialAdminUserName is seeded at first boot and protected from
	// deletion.
	InitialAdminUserName = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	UserName     string `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_user_name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	FirstName    string `gorm:"type:varchar(100)"`
	LastName     string `gorm:"type:varchar(100)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`

	CreatorID      uint `gorm:"not null"`
	LastModifierID uint `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
