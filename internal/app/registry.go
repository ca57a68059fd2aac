package app

import (
	"database/sql"
	"time"

	"go-workforce/internal/auth"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/middleware"
	"go-workforce/internal/notification"
	"go-workforce/internal/rbac"
	"go-workforce/internal/rbac/infra"
	"go-workforce/internal/request"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/lock"
	"go-workforce/internal/team"
	"go-workforce/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Shared workflow plumbing ---
	locks := lock.NewKeyed()
	clk := clock.System()

	// --- Repositories ---
	outboxRepo := kafka.NewOutboxRepository(db)
	reqRepo := request.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	notifier := notification.NewOutboxNotifier(outboxRepo, logger)
	settler := request.NewSettler(reqRepo, notifier, logger)
	directory := team.NewDirectoryAdapter(teamRepo, reqRepo)

	requestService := request.NewService(db, reqRepo, directory, notifier, locks, clk, logger)
	teamService := team.NewService(db, teamRepo, reqRepo, settler, notifier, locks, rdb, logger)
	userService := user.NewService(db, userRepo, teamRepo, reqRepo, settler, locks, logger)
	authService := auth.NewService(userRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	requestHandler := request.NewHandler(requestService, logger)
	teamHandler := team.NewHandler(teamService, logger)
	userHandler := user.NewHandler(userService, logger)

	// --- Global middleware ---
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Idempotency-Key", "X-Request-ID")
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(rate.Every(time.Second/20), 40))

	// --- Routes registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		auth.RegisterRoutes(api, authHandler)
		request.RegisterRoutes(api, requestHandler, rbacService)
		team.RegisterRoutes(api, teamHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
