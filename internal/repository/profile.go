package repository

import (
	"context"
	"errors"

	"proconnect/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetBios(ctx context.Context, userIDs []uint) (map[uint]string, error)
	UpdateHeadline(ctx context.Context, userID uint, bio, currentPosition string) error
	ReplaceCareerData(ctx context.Context, userID uint, education []models.Education, experience []models.Experience, skills []string) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).
		Preload("Education", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Experience", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return nil, models.NewInternalError(err)
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	return &profile, nil
}

// GetBios returns the bio for each of the given user IDs in a single query.
// Users without a profile are absent from the map.
func (r *profileRepository) GetBios(ctx context.Context, userIDs []uint) (map[uint]string, error) {
	bios := make(map[uint]string, len(userIDs))
	if len(userIDs) == 0 {
		return bios, nil
	}

	var rows []struct {
		UserID uint
		Bio    string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Select("user_id", "bio").
		Where("user_id IN ?", userIDs).
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		bios[row.UserID] = row.Bio
	}
	return bios, nil
}

func (r *profileRepository) UpdateHeadline(ctx context.Context, userID uint, bio, currentPosition string) error {
	updates := map[string]any{}
	if bio != "" {
		updates["bio"] = bio
	}
	if currentPosition != "" {
		updates["current_position"] = currentPosition
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Profile", userID)
	}
	return nil
}

// ReplaceCareerData swaps the profile's education, experience and skills lists
// in one transaction. A nil slice means "leave that list untouched", matching
// the partial-update semantics of the profile-data endpoint.
func (r *profileRepository) ReplaceCareerData(ctx context.Context, userID uint, education []models.Education, experience []models.Experience, skills []string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", userID)
			}
			return models.NewInternalError(err)
		}

		if education != nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return models.NewInternalError(err)
			}
			for i := range education {
				education[i].ID = 0
				education[i].ProfileID = profile.ID
				education[i].SortOrder = i
			}
			if len(education) > 0 {
				if err := tx.Create(&education).Error; err != nil {
					return models.NewInternalError(err)
				}
			}
		}

		if experience != nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return models.NewInternalError(err)
			}
			for i := range experience {
				experience[i].ID = 0
				experience[i].ProfileID = profile.ID
				experience[i].SortOrder = i
			}
			if len(experience) > 0 {
				if err := tx.Create(&experience).Error; err != nil {
					return models.NewInternalError(err)
				}
			}
		}

		if skills != nil {
			if err := tx.Model(&profile).Update("skills", skills).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, userID)
}
