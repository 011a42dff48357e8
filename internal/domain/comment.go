package domain

import "time"

// Comment represents a comment on a memo. Anonymous authors have
// UserID <= 0 and carry name/email/link instead.
type Comment struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemoID   int64  `gorm:"column:memo_id;index" json:"memo_id"`
	UserID   int64  `gorm:"column:user_id;index" json:"user_id"`
	UserName string `gorm:"column:user_name;size:64" json:"user_name"`
	Content  string `gorm:"column:content;type:text" json:"content"`

	// Mentioned holds the display names ("alice,bob"); MentionedUserID
	// holds the codec-encoded id list ("#3,#7,") used by LIKE queries.
	Mentioned       string `gorm:"column:mentioned;size:255" json:"mentioned"`
	MentionedUserID string `gorm:"column:mentioned_user_id;size:255" json:"mentioned_user_id"`

	Email string `gorm:"column:email;size:128" json:"email,omitempty"`
	Link  string `gorm:"column:link;size:255" json:"link,omitempty"`

	// Approved gates both visibility and the parent commentCount.
	Approved bool `gorm:"column:approved;default:false" json:"approved"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (Comment) TableName() string {
	return "t_comment"
}

// IsAnonymous reports whether the comment was posted without an account
func (c *Comment) IsAnonymous() bool {
	return c.UserID <= 0
}

// AddCommentRequest create payload
type AddCommentRequest struct {
	MemoID   int64  `json:"memo_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Username string `json:"username"` // anonymous only
	Email    string `json:"email" binding:"omitempty,email"`
	Link     string `json:"link"`
}

// ListCommentRequest pagination for a memo's comments
type ListCommentRequest struct {
	MemoID int64 `form:"memo_id" binding:"required"`
	Page   int   `form:"page,default=1"`
	Limit  int   `form:"limit,default=20"`
}

// CommentResponse comment view
type CommentResponse struct {
	ID        int64    `json:"id"`
	MemoID    int64    `json:"memo_id"`
	UserID    int64    `json:"user_id"`
	UserName  string   `json:"user_name"`
	Content   string   `json:"content"`
	Mentioned []string `json:"mentioned,omitempty"`
	Email     string   `json:"email,omitempty"`
	Link      string   `json:"link,omitempty"`
	Approved  bool     `json:"approved"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// ToResponse converts Comment to CommentResponse
func (c *Comment) ToResponse() *CommentResponse {
	var names []string
	if c.Mentioned != "" {
		names = SplitTags(c.Mentioned)
	}
	return &CommentResponse{
		ID:        c.ID,
		MemoID:    c.MemoID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		Content:   c.Content,
		Mentioned: names,
		Email:     c.Email,
		Link:      c.Link,
		Approved:  c.Approved,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
