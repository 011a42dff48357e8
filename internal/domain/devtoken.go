package domain

import "time"

// DefaultDevTokenName every user carries at most one personal API
// token under this name.
const DefaultDevTokenName = "default"

// DevToken is a long-lived personal API token. Disabling the token
// deletes the row; already-issued token strings stay verifiable until
// they expire, which is effectively never.
type DevToken struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;index" json:"user_id"`
	Name      string    `gorm:"column:name;size:64" json:"name"`
	Token     string    `gorm:"column:token;size:512" json:"token"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name
func (DevToken) TableName() string {
	return "t_dev_token"
}

// DevTokenResponse API token view
type DevTokenResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// ToResponse converts DevToken to DevTokenResponse
func (d *DevToken) ToResponse() *DevTokenResponse {
	return &DevTokenResponse{ID: d.ID, Name: d.Name, Token: d.Token}
}
