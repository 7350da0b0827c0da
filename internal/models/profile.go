package models

import "time"

// Profile holds the extended career data for a user, 1:1 with User.
type Profile struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	UserID          uint         `gorm:"not null;uniqueIndex" json:"userId"`
	Bio             string       `gorm:"size:500" json:"bio"`
	CurrentPosition string       `gorm:"size:100" json:"currentPosition"`
	Education       []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`
	Experience      []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Skills          []string     `gorm:"serializer:json" json:"skills"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}

// Education is a single education entry on a profile. SortOrder preserves the
// submitted ordering.
type Education struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	ProfileID    uint   `gorm:"not null;index" json:"-"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    string `json:"startYear"`
	EndYear      string `json:"endYear"`
	SortOrder    int    `gorm:"not null;default:0" json:"-"`
}

// TableName specifies the table name for GORM.
func (Education) TableName() string {
	return "profile_education"
}

// Experience is a single work entry on a profile.
type Experience struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	ProfileID   uint   `gorm:"not null;index" json:"-"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
	Description string `json:"description"`
	SortOrder   int    `gorm:"not null;default:0" json:"-"`
}

// TableName specifies the table name for GORM.
func (Experience) TableName() string {
	return "profile_experience"
}
