package repository

import (
	"github.com/memonote/memonote-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SysConfigRepository defines system config data access
type SysConfigRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	All() ([]*domain.SysConfig, error)
}

type sysConfigRepository struct {
	db *gorm.DB
}

// NewSysConfigRepository creates a new SysConfigRepository
func NewSysConfigRepository(db *gorm.DB) SysConfigRepository {
	return &sysConfigRepository{db: db}
}

func (r *sysConfigRepository) Get(key string) (string, error) {
	var cfg domain.SysConfig
	err := r.db.Where("config_key = ?", key).First(&cfg).Error
	if err != nil {
		return "", err
	}
	return cfg.Value, nil
}

func (r *sysConfigRepository) Set(key, value string) error {
	cfg := &domain.SysConfig{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value", "updated_at"}),
	}).Create(cfg).Error
}

func (r *sysConfigRepository) All() ([]*domain.SysConfig, error) {
	var configs []*domain.SysConfig
	err := r.db.Order("config_key ASC").Find(&configs).Error
	return configs, err
}
