package service

import (
	"errors"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
	"github.com/memonote/memonote-backend/pkg/jwt"
	"gorm.io/gorm"
)

// DevTokenService manages the per-user personal API token. Each user
// has at most one, under the default name; the token string is a
// long-lived access JWT, so it passes the same auth middleware as a
// login session.
type DevTokenService interface {
	// Get returns the user's API token, nil when none is enabled.
	Get(userID int64) (*domain.DevTokenResponse, error)
	Enable(userID int64) error
	Reset(userID int64) (*domain.DevTokenResponse, error)
	Disable(userID int64) error
}

type devTokenService struct {
	tokenRepo  repository.DevTokenRepository
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

// NewDevTokenService creates a new DevTokenService
func NewDevTokenService(tokenRepo repository.DevTokenRepository, userRepo repository.UserRepository, jwtManager *jwt.Manager) DevTokenService {
	return &devTokenService{tokenRepo: tokenRepo, userRepo: userRepo, jwtManager: jwtManager}
}

func (s *devTokenService) Get(userID int64) (*domain.DevTokenResponse, error) {
	token, err := s.tokenRepo.FindDefault(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return token.ToResponse(), nil
}

// Enable issues the token if the user has none; an existing token is
// left untouched.
func (s *devTokenService) Enable(userID int64) error {
	_, err := s.tokenRepo.FindDefault(userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	signed, err := s.issue(userID)
	if err != nil {
		return err
	}
	return s.tokenRepo.Create(&domain.DevToken{
		UserID: userID,
		Name:   domain.DefaultDevTokenName,
		Token:  signed,
	})
}

// Reset replaces the token string, keeping the row. The old string
// remains a valid JWT; callers who need hard revocation disable and
// rotate the signing secret.
func (s *devTokenService) Reset(userID int64) (*domain.DevTokenResponse, error) {
	token, err := s.tokenRepo.FindDefault(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrDevTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	signed, err := s.issue(userID)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.UpdateToken(token.ID, signed); err != nil {
		return nil, err
	}
	token.Token = signed
	return token.ToResponse(), nil
}

func (s *devTokenService) Disable(userID int64) error {
	return s.tokenRepo.DeleteDefault(userID)
}

func (s *devTokenService) issue(userID int64) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", common.ErrUserNotFound
	}
	return s.jwtManager.GenerateAPIToken(user.ID, user.DisplayName, user.Role)
}
