package domain

import "time"

// System config keys
const (
	ConfigOpenComment      = "OPEN_COMMENT"      // comments enabled service-wide
	ConfigAnonymousComment = "ANONYMOUS_COMMENT" // allow comments without an account
	ConfigCommentApproved  = "COMMENT_APPROVED"  // anonymous comments need approval
	ConfigOpenLike         = "OPEN_LIKE"         // likes enabled service-wide
	ConfigOpenRegister     = "OPEN_REGISTER"     // registration open
	ConfigWebsiteTitle     = "WEBSITE_TITLE"     // site title, used as the feed title
	ConfigDomain           = "DOMAIN"            // external base URL for links in the feed
)

// SysConfig key/value service toggle
type SysConfig struct {
	Key       string    `gorm:"column:config_key;primaryKey;size:64" json:"key"`
	Value     string    `gorm:"column:config_value;size:255" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (SysConfig) TableName() string {
	return "t_sys_config"
}

// SetSysConfigRequest update payload
type SetSysConfigRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}
