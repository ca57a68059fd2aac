package app

import (
	"context"
	"os"

	"go-workforce/internal/request"
	"go-workforce/internal/shared/connection"
	"go-workforce/internal/team"
	"go-workforce/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}
	if err := seedInitialAdmin(gormDB); err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&user.User{},
		&team.Team{},
		&team.TeamMember{},
		&request.TimeOffRequest{},
		&request.ApproverAssignment{},
	); err != nil {
		return err
	}

	// Team titles are unique case-insensitively. The application check in
	// the team service is advisory; this index is what stops two racing
	// creates from persisting 'Dev' and 'dev'.
	if err := gormDB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_title_lower ON teams (LOWER(title))`,
	).Error; err != nil {
		return err
	}

	// The outbox table is read with raw SQL by the producer worker, so its
	// shape is pinned here rather than derived from a struct.
	return gormDB.Exec(`
        CREATE TABLE IF NOT EXISTS outbox_events (
            id UUID PRIMARY KEY,
            request_id TEXT NOT NULL DEFAULT '',
            aggregate_type TEXT NOT NULL,
            aggregate_id TEXT NOT NULL,
            event_type TEXT NOT NULL,
            topic TEXT NOT NULL,
            payload JSONB NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            retry_count INT NOT NULL DEFAULT 0,
            next_retry_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            last_error TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `).Error
}

// seedInitialAdmin creates the protected admin account on first boot.
func seedInitialAdmin(gormDB *gorm.DB) error {
	ctx := context.Background()
	repo := user.NewRepository(gormDB)

	existing, err := repo.FindByUserName(ctx, user.InitialAdminUserName)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &user.User{
		UserName:     user.InitialAdminUserName,
		Email:        "admin@workforce.local",
		FirstName:    "Initial",
		LastName:     "Admin",
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	zap.L().Info("initial admin account seeded", zap.Uint("user_id", admin.ID))
	return nil
}
