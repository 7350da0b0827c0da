package models

import "time"

// Post represents a feed post with an optional media attachment.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_posts_user_created" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Media     string    `gorm:"default:''" json:"media"`
	FileType  string    `gorm:"default:''" json:"fileType"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"index:idx_posts_user_created" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// LikesCount is not persisted; computed at query time.
	LikesCount int `gorm:"->;-:migration" json:"likesCount"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// Like is one user's membership in a post's like set. The composite unique
// index makes the toggle a single atomic insert or delete.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}
