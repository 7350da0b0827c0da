// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Credentials live with the external
// identity provider; ExternalAuthID links the verified identity to this row.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	ExternalAuthID string    `gorm:"column:external_auth_id;unique;not null" json:"-"`
	ProfilePicture string    `gorm:"default:'default.png'" json:"profilePicture"`
	Active         bool      `gorm:"default:true" json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// UserSummary is the projection of a user embedded in posts, comments and
// connection listings.
type UserSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// Summary returns the embeddable projection of the user.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}
