package service

import (
	"context"
	"errors"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
	"github.com/memonote/memonote-backend/pkg/auth"
	"github.com/memonote/memonote-backend/pkg/cache"
	"github.com/memonote/memonote-backend/pkg/jwt"
	"gorm.io/gorm"
)

// AuthService authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.UserResponse, error)
	Login(username, password string) (*LoginResponse, error)
	RefreshToken(refreshToken string) (*TokenPair, error)

	// GetProfile serves the viewer's own profile, cache-first.
	GetProfile(ctx context.Context, userID int64) (*domain.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.UserResponse, error)
	ChangePassword(userID int64, req *domain.ChangePasswordRequest) error
}

// LoginResponse login response
type LoginResponse struct {
	User         *domain.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// TokenPair token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type authService struct {
	userRepo   repository.UserRepository
	sysConfig  SysConfigService
	jwtManager *jwt.Manager
	cache      cache.Service
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, sysConfig SysConfigService, jwtManager *jwt.Manager, cacheService cache.Service) AuthService {
	return &authService{
		userRepo:   userRepo,
		sysConfig:  sysConfig,
		jwtManager: jwtManager,
		cache:      cacheService,
	}
}

// Register creates an account. The very first account becomes the
// admin; later registrations require the OPEN_REGISTER toggle.
func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.UserResponse, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if count == 0 {
		role = domain.RoleAdmin
	} else {
		open, err := s.sysConfig.GetBool(ctx, domain.ConfigOpenRegister)
		if err != nil {
			return nil, err
		}
		if !open {
			return nil, common.ErrRegisterClosed
		}
	}

	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, common.ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:             req.Username,
		Password:             hash,
		Email:                req.Email,
		DisplayName:          req.DisplayName,
		Role:                 role,
		DefaultVisibility:    domain.VisibilityPrivate,
		DefaultEnableComment: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// Login authenticates a user and returns tokens
func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, user.Password) {
		return nil, common.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.DisplayName, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:         user.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair
func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.DisplayName, user.Role)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int64) (*domain.UserResponse, error) {
	var cached domain.UserResponse
	if err := s.cache.GetUser(ctx, userID, &cached); err == nil {
		return &cached, nil
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	resp := user.ToResponse()
	// Cache failures only cost the next read a DB round trip.
	_ = s.cache.SetUser(ctx, userID, resp)
	return resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.DefaultVisibility != nil {
		user.DefaultVisibility = *req.DefaultVisibility
	}
	if req.DefaultEnableComment != nil {
		user.DefaultEnableComment = *req.DefaultEnableComment
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = s.cache.InvalidateUser(ctx, userID)
	return user.ToResponse(), nil
}

func (s *authService) ChangePassword(userID int64, req *domain.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return common.ErrUserNotFound
	}

	if !auth.VerifyPassword(req.OldPassword, user.Password) {
		return common.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.userRepo.Update(user)
}
