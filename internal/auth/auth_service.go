package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, userName, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
}

type service struct {
	userRepo user.Repository
	logger   *zap.Logger
}

func NewService(userRepo user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{userRepo: userRepo, logger: l}
}

func (s *service) Login(ctx context.Context, userName, password string) (string, string, AuthResponse, error) {
	u, err := s.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	if u == nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(u.ID, u.Role, 15*time.Minute)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	refreshToken, err := s.generateToken(u.ID, u.Role, 7*24*time.Hour)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("login success",
		zap.Uint("user_id", u.ID),
		zap.String("role", u.Role),
	)

	return accessToken, refreshToken, AuthResponse{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	rawUserID, ok := claims["user_id"].(float64)
	if !ok || rawUserID <= 0 {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	// The role is re-read from storage so a demotion takes effect on the
	// next refresh.
	u, err := s.userRepo.FindByID(ctx, uint(rawUserID))
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	newAccess, err := s.generateToken(u.ID, u.Role, 15*time.Minute)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	newRefresh, err := s.generateToken(u.ID, u.Role, 7*24*time.Hour)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return newAccess, newRefresh, AuthResponse{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}

func (s *service) generateToken(userID uint, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
