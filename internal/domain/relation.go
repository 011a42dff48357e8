package domain

import "time"

// Relation types
const (
	RelationLike     = "LIKE"
	RelationFavorite = "FAVORITE"
)

// Relation operations
const (
	RelationOpAdd    = "ADD"
	RelationOpRemove = "REMOVE"
)

// UserMemoRelation records a typed user-to-memo relationship.
// The unique index enforces at most one row per (user, memo, type),
// which is what keeps likeCount from double counting.
type UserMemoRelation struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemoID    int64     `gorm:"column:memo_id;uniqueIndex:uk_relation" json:"memo_id"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:uk_relation" json:"user_id"`
	FavType   string    `gorm:"column:fav_type;size:16;uniqueIndex:uk_relation" json:"fav_type"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name
func (UserMemoRelation) TableName() string {
	return "t_user_memo_relation"
}

// RelationRequest add/remove payload
type RelationRequest struct {
	MemoID      int64  `json:"memo_id" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=LIKE FAVORITE"`
	OperateType string `json:"operate_type" binding:"required,oneof=ADD REMOVE"`
}
