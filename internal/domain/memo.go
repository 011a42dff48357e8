package domain

import (
	"strings"
	"time"
)

// Memo visibility
const (
	VisibilityPublic   = "PUBLIC"
	VisibilityPrivate  = "PRIVATE"
	VisibilityUnlisted = "UNLISTED"
)

// Memo status
const (
	StatusNormal   = "NORMAL"
	StatusArchived = "ARCHIVED"
)

// Memo represents a single note/post.
// The counter columns are denormalized and owned exclusively by the
// repository adjustment methods; nothing else writes them.
type Memo struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     int64  `gorm:"column:user_id;index" json:"user_id"`
	Content    string `gorm:"column:content;type:text" json:"content"`
	Tags       string `gorm:"column:tags;size:255" json:"tags"` // joined as "tag1,tag2,"
	Visibility string `gorm:"column:visibility;size:16;default:PRIVATE" json:"visibility"`
	Status     string `gorm:"column:status;size:16;default:NORMAL" json:"status"`
	Priority   int    `gorm:"column:priority;default:0" json:"priority"`

	CommentCount  int  `gorm:"column:comment_count;default:0" json:"comment_count"`
	LikeCount     int  `gorm:"column:like_count;default:0" json:"like_count"`
	ViewCount     int  `gorm:"column:view_count;default:0" json:"view_count"`
	EnableComment bool `gorm:"column:enable_comment;default:true" json:"enable_comment"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (Memo) TableName() string {
	return "t_memo"
}

// TagList splits the stored tag string back into tag names
func (m *Memo) TagList() []string {
	return SplitTags(m.Tags)
}

// JoinTags renders a tag list in stored form ("tag1,tag2,"), empty for none
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return strings.Join(tags, ",") + ","
}

// SplitTags parses the stored tag string, dropping empty entries
func SplitTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SaveMemoRequest create/update payload
type SaveMemoRequest struct {
	Content       string `json:"content" binding:"required"`
	Visibility    string `json:"visibility" binding:"omitempty,oneof=PUBLIC PRIVATE UNLISTED"`
	Priority      int    `json:"priority"`
	EnableComment *bool  `json:"enable_comment"`
}

// ListMemoRequest list filters
type ListMemoRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	Tag        string `form:"tag"`
	Visibility string `form:"visibility"`
	Liked      bool   `form:"liked"`
	Commented  bool   `form:"commented"`
	Mentioned  bool   `form:"mentioned"`
}

// MemoResponse memo view
type MemoResponse struct {
	ID            int64    `json:"id"`
	UserID        int64    `json:"user_id"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags"`
	Visibility    string   `json:"visibility"`
	Status        string   `json:"status"`
	Priority      int      `json:"priority"`
	CommentCount  int      `json:"comment_count"`
	LikeCount     int      `json:"like_count"`
	ViewCount     int      `json:"view_count"`
	EnableComment bool     `json:"enable_comment"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// ToResponse converts Memo to MemoResponse
func (m *Memo) ToResponse() *MemoResponse {
	return &MemoResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		Content:       m.Content,
		Tags:          m.TagList(),
		Visibility:    m.Visibility,
		Status:        m.Status,
		Priority:      m.Priority,
		CommentCount:  m.CommentCount,
		LikeCount:     m.LikeCount,
		ViewCount:     m.ViewCount,
		EnableComment: m.EnableComment,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     m.UpdatedAt.Format(time.RFC3339),
	}
}
