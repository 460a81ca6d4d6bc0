// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"strings"

	"cncquote-service/internal/domain/user"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo *postgres.UserRepository
	logger   *zap.Logger
}

func NewAuthService(userRepo *postgres.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, xerrors.ErrDuplicateEntry
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hashed),
		LoginType:    user.LoginTypeEmail,
		Role:         user.RoleUser,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", u.ID),
		zap.String("email", u.Email),
	)
	return u, nil
}

// Login verifies credentials. The caller owns session establishment; this
// only answers whether the email/password pair maps to an account.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.userRepo.FindByEmail(ctx, email)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("login rejected", zap.String("email", email))
		return nil, xerrors.ErrUnauthorized
	}

	return u, nil
}

// GetUser fetches one account by id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	return s.userRepo.FindByID(ctx, id)
}
