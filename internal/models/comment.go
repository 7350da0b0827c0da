package models

import "time"

// Comment represents a comment on a post.
//
// Deleting a post does not remove its comments; they keep their postId and
// simply become unreachable through post listings.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	PostID    uint      `gorm:"not null;index:idx_comments_post_created" json:"postId"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index:idx_comments_post_created" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
