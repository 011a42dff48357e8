package service

import (
	"context"
	"errors"

	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
	"github.com/memonote/memonote-backend/pkg/cache"
	"gorm.io/gorm"
)

// SysConfigService exposes the system toggle registry, backed by the
// database with a short-TTL Redis cache in front.
type SysConfigService interface {
	GetBool(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All() ([]*domain.SysConfig, error)
}

type sysConfigService struct {
	repo  repository.SysConfigRepository
	cache cache.Service
}

// NewSysConfigService creates a new SysConfigService
func NewSysConfigService(repo repository.SysConfigRepository, cacheSvc cache.Service) SysConfigService {
	return &sysConfigService{repo: repo, cache: cacheSvc}
}

func (s *sysConfigService) Get(ctx context.Context, key string) (string, error) {
	if value, err := s.cache.GetSysConfig(ctx, key); err == nil {
		return value, nil
	}

	value, err := s.repo.Get(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	_ = s.cache.SetSysConfig(ctx, key, value)
	return value, nil
}

// GetBool reads a toggle; a missing key reads as false.
func (s *sysConfigService) GetBool(ctx context.Context, key string) (bool, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return value == "true" || value == "1", nil
}

func (s *sysConfigService) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Set(key, value); err != nil {
		return err
	}
	return s.cache.InvalidateSysConfig(ctx, key)
}

func (s *sysConfigService) All() ([]*domain.SysConfig, error) {
	return s.repo.All()
}
