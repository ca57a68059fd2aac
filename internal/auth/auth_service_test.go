package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"go-workforce/internal/auth"
	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	findByIDFn       func(ctx context.Context, id uint) (*user.User, error)
	findByUserNameFn func(ctx context.Context, userName string) (*user.User, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

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
	return nil, nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) Delete(ctx context.Context, id uint) error { return nil }

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues signed tokens", func(t *testing.T) {
		repo := &fakeUserRepository{}
		repo.findByUserNameFn = func(ctx context.Context, userName string) (*user.User, error) {
			assert.Equal(t, "lena", userName)
			return &user.User{
				ID:           2,
				UserName:     "lena",
				Email:        "lena@example.com",
				PasswordHash: hashOf(t, "s3cret-pass"),
				Role:         user.RoleEmployee,
			}, nil
		}

		access, refresh, resp, err := auth.NewService(repo, zap.NewNop()).Login(ctx, "lena", "s3cret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, uint(2), resp.ID)
		assert.Equal(t, user.RoleEmployee, resp.Role)

		claims := parseClaims(t, access)
		assert.Equal(t, float64(2), claims["user_id"])
		assert.Equal(t, user.RoleEmployee, claims["role"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeUserRepository{}
		repo.findByUserNameFn = func(ctx context.Context, userName string) (*user.User, error) {
			return &user.User{
				ID:           2,
				UserName:     "lena",
				PasswordHash: hashOf(t, "s3cret-pass"),
				Role:         user.RoleEmployee,
			}, nil
		}

		_, _, _, err := auth.NewService(repo, zap.NewNop()).Login(ctx, "lena", "wrong-pass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		_, _, _, err := auth.NewService(&fakeUserRepository{}, zap.NewNop()).Login(ctx, "ghost", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	login := func(t *testing.T, repo *fakeUserRepository) string {
		t.Helper()
		_, refresh, _, err := auth.NewService(repo, zap.NewNop()).Login(ctx, "lena", "s3cret-pass")
		assert.NoError(t, err)
		return refresh
	}

	t.Run("success re-reads the role from storage", func(t *testing.T) {
		repo := &fakeUserRepository{}
		repo.findByUserNameFn = func(ctx context.Context, userName string) (*user.User, error) {
			return &user.User{
				ID:           2,
				UserName:     "lena",
				Email:        "lena@example.com",
				PasswordHash: hashOf(t, "s3cret-pass"),
				Role:         user.RoleAdmin,
			}, nil
		}
		refresh := login(t, repo)

		// demoted between login and refresh
		repo.findByIDFn = func(ctx context.Context, id uint) (*user.User, error) {
			assert.Equal(t, uint(2), id)
			return &user.User{
				ID:       2,
				UserName: "lena",
				Email:    "lena@example.com",
				Role:     user.RoleEmployee,
			}, nil
		}

		newAccess, newRefresh, resp, err := auth.NewService(repo, zap.NewNop()).RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.RoleEmployee, resp.Role)
		claims := parseClaims(t, newAccess)
		assert.Equal(t, user.RoleEmployee, claims["role"])
	})

	t.Run("negative garbage token", func(t *testing.T) {
		_, _, _, err := auth.NewService(&fakeUserRepository{}, zap.NewNop()).RefreshToken(ctx, "not-a-token")

		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("negative token signed with another secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": float64(2)})
		signed, err := token.SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		_, _, _, err = auth.NewService(&fakeUserRepository{}, zap.NewNop()).RefreshToken(ctx, signed)

		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("negative user deleted since login", func(t *testing.T) {
		repo := &fakeUserRepository{}
		repo.findByUserNameFn = func(ctx context.Context, userName string) (*user.User, error) {
			return &user.User{
				ID:           2,
				UserName:     "lena",
				PasswordHash: hashOf(t, "s3cret-pass"),
				Role:         user.RoleEmployee,
			}, nil
		}
		refresh := login(t, repo)

		_, _, _, err := auth.NewService(&fakeUserRepository{}, zap.NewNop()).RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
