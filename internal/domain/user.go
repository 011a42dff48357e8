package domain

import "time"

// User roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents a registered account
type User struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username    string     `gorm:"column:username;size:64;uniqueIndex" json:"username"`
	Password    string     `gorm:"column:password;size:128" json:"-"`
	Email       string     `gorm:"column:email;size:128" json:"email"`
	DisplayName string     `gorm:"column:display_name;size:64" json:"display_name"`
	Bio         string     `gorm:"column:bio;size:255" json:"bio"`
	Role        string     `gorm:"column:role;size:16;default:USER" json:"role"`
	AvatarURL   string     `gorm:"column:avatar_url;size:255" json:"avatar_url"`

	// Default settings applied to new memos
	DefaultVisibility    string `gorm:"column:default_visibility;size:16;default:PRIVATE" json:"default_visibility"`
	DefaultEnableComment bool   `gorm:"column:default_enable_comment;default:true" json:"default_enable_comment"`

	// Watermark for the unread-mention boundary. NULL means the user
	// has never opened their mention list, so every mention is unread.
	LastClickedMentioned *time.Time `gorm:"column:last_clicked_mentioned" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (User) TableName() string {
	return "t_user"
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse public view of a user
type UserResponse struct {
	ID                   int64  `json:"id"`
	Username             string `json:"username"`
	Email                string `json:"email,omitempty"`
	DisplayName          string `json:"display_name"`
	Bio                  string `json:"bio,omitempty"`
	Role                 string `json:"role"`
	AvatarURL            string `json:"avatar_url,omitempty"`
	DefaultVisibility    string `json:"default_visibility"`
	DefaultEnableComment bool   `json:"default_enable_comment"`
	CreatedAt            string `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		DisplayName:          u.DisplayName,
		Bio:                  u.Bio,
		Role:                 u.Role,
		AvatarURL:            u.AvatarURL,
		DefaultVisibility:    u.DefaultVisibility,
		DefaultEnableComment: u.DefaultEnableComment,
		CreatedAt:            u.CreatedAt.Format(time.RFC3339),
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Password    string `json:"password" binding:"required,min=8"`
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"display_name" binding:"required,max=64"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	DisplayName          *string `json:"display_name"`
	Bio                  *string `json:"bio"`
	AvatarURL            *string `json:"avatar_url"`
	DefaultVisibility    *string `json:"default_visibility" binding:"omitempty,oneof=PUBLIC PRIVATE UNLISTED"`
	DefaultEnableComment *bool   `json:"default_enable_comment"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// StatisticsResponse per-user dashboard snapshot; recomputed on every call
type StatisticsResponse struct {
	TotalMemos      int64 `json:"total_memos"`
	Liked           int64 `json:"liked"`
	Mentioned       int64 `json:"mentioned"`
	Commented       int64 `json:"commented"`
	UnreadMentioned int64 `json:"unread_mentioned"`
}

// DailyCount memos created on one calendar day (UTC)
type DailyCount struct {
	Date  string `gorm:"column:date" json:"date"`
	Total int64  `gorm:"column:total" json:"total"`
}

// HeatmapResponse per-day creation counts over a date range, plus the
// totals the activity heatmap header shows
type HeatmapResponse struct {
	TotalMemos int64        `json:"total_memos"`
	TotalDays  int64        `json:"total_days"`
	TotalTags  int64        `json:"total_tags"`
	Items      []DailyCount `json:"items"`
}
