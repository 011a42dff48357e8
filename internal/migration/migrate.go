package migration

import (
	"github.com/memonote/memonote-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables and seeds default system
// configuration keys that are not present yet.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Memo{},
		&domain.Comment{},
		&domain.Tag{},
		&domain.UserMemoRelation{},
		&domain.SysConfig{},
		&domain.DevToken{},
	); err != nil {
		return err
	}

	return seedSysConfig(db)
}

func seedSysConfig(db *gorm.DB) error {
	defaults := map[string]string{
		domain.ConfigOpenComment:      "true",
		domain.ConfigAnonymousComment: "false",
		domain.ConfigCommentApproved:  "false",
		domain.ConfigOpenLike:         "true",
		domain.ConfigOpenRegister:     "true",
		domain.ConfigWebsiteTitle:     "MemoNote",
		domain.ConfigDomain:           "http://localhost:3000",
	}

	for key, value := range defaults {
		var count int64
		if err := db.Model(&domain.SysConfig{}).
			Where("config_key = ?", key).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&domain.SysConfig{Key: key, Value: value}).Error; err != nil {
			return err
		}
	}
	return nil
}
