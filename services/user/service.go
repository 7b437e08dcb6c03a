package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "knead/database/repository/user"
	"knead/models"
	"knead/utils"
)

// ErrInvalidCredentials is returned for a bad email/password pair. The same
// error is used for unknown emails so the response does not leak account
// existence.
var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 24 * time.Hour

// UserService handles account registration and authentication.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error)
	Authenticate(ctx context.Context, req models.LoginRequest) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         "customer",
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := issueSession(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *DefaultUserService) Authenticate(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := issueSession(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// issueSession signs a token and pins its hash; signing in again replaces
// any earlier session.
func issueSession(ctx context.Context, u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	if err := utils.PinAuthToken(ctx, u.ID, token, tokenTTL); err != nil {
		return "", fmt.Errorf("failed to pin session token: %w", err)
	}
	return token, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultUserService) ListAll(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListAll(ctx)
}

func (s *DefaultUserService) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

func (s *DefaultUserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	// A deleted account's session must stop working immediately.
	if err := utils.RevokeAuthToken(ctx, id); err != nil {
		utils.GetLogger().Warn("failed to revoke session for deleted user",
			zap.String("userId", id), zap.Error(err))
	}
	return nil
}
