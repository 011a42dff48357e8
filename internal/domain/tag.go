package domain

import "time"

// Tag represents a per-owner tag with its denormalized memo count.
// MemoCount is owned exclusively by TagRepository.AdjustMemoCount;
// rows are never auto-deleted when the count reaches zero.
type Tag struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:uk_tag_owner_name" json:"user_id"`
	Name      string    `gorm:"column:name;size:64;uniqueIndex:uk_tag_owner_name" json:"name"`
	MemoCount int       `gorm:"column:memo_count;default:0" json:"memo_count"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (Tag) TableName() string {
	return "t_tag"
}

// TagResponse tag view
type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ToResponse converts Tag to TagResponse
func (t *Tag) ToResponse() *TagResponse {
	return &TagResponse{
		ID:    t.ID,
		Name:  t.Name,
		Count: t.MemoCount,
	}
}

// RenameTagRequest rename payload
type RenameTagRequest struct {
	Old string `json:"old" binding:"required"`
	New string `json:"new" binding:"required"`
}
