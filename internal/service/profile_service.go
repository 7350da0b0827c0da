package service

import (
	"context"
	"time"

	"proconnect/internal/cache"
	"proconnect/internal/models"
	"proconnect/internal/repository"
)

const profileCacheTTL = 60 * time.Second

// ProfileService provides career-data and public-profile business logic.
type ProfileService struct {
	profileRepo    repository.ProfileRepository
	userRepo       repository.UserRepository
	connectionRepo repository.ConnectionRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, connectionRepo repository.ConnectionRepository) *ProfileService {
	return &ProfileService{
		profileRepo:    profileRepo,
		userRepo:       userRepo,
		connectionRepo: connectionRepo,
	}
}

// ProfileDataInput carries the replaceable career sections. A nil slice
// leaves that section untouched; an empty slice clears it.
type ProfileDataInput struct {
	Education  []models.Education  `json:"education"`
	Experience []models.Experience `json:"experience"`
	Skills     []string            `json:"skills"`
}

// ProfileViewStatus describes the viewer's relationship to a profile owner.
type ProfileViewStatus struct {
	IsConnection    bool   `json:"isConnection"`
	RequestSent     bool   `json:"requestSent"`
	RequestReceived bool   `json:"requestReceived"`
	Status          string `json:"status"`
}

// ProfileView is the public profile page payload.
type ProfileView struct {
	User             *models.User      `json:"user"`
	Profile          *models.Profile   `json:"profile"`
	ConnectionStatus ProfileViewStatus `json:"connectionStatus"`
}

// UpdateProfileData replaces the submitted career sections wholesale,
// preserving their order.
func (s *ProfileService) UpdateProfileData(ctx context.Context, userID uint, input ProfileDataInput) (*models.Profile, error) {
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.profileRepo.ReplaceCareerData(ctx, userID, input.Education, input.Experience, input.Skills)
}

type cachedProfile struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

func profileCacheKey(username string) string {
	return "profile:username:" + username
}

// InvalidateProfileCache drops the cached profile page for a username. Called
// after any profile or account update.
func InvalidateProfileCache(ctx context.Context, username string) {
	cache.Invalidate(ctx, profileCacheKey(username))
}

// GetProfileByUsername returns the public profile for a username along with
// the viewer's connection state toward its owner. The user+profile half is
// served through a short-TTL cache; the connection state is always fresh.
func (s *ProfileService) GetProfileByUsername(ctx context.Context, viewerID uint, username string) (*ProfileView, error) {
	var cached cachedProfile
	err := cache.CacheAside(ctx, profileCacheKey(username), &cached, profileCacheTTL, func() error {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		cached = cachedProfile{User: user, Profile: profile}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.viewFor(ctx, viewerID, cached.User, cached.Profile)
}

func (s *ProfileService) viewFor(ctx context.Context, viewerID uint, user *models.User, profile *models.Profile) (*ProfileView, error) {
	status := ProfileViewStatus{Status: "none"}
	if viewerID != 0 && viewerID != user.ID {
		edge, err := s.connectionRepo.GetBetweenUsers(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		if edge != nil {
			status.Status = string(edge.Status)
			switch edge.Status {
			case models.ConnectionStatusAccepted:
				status.IsConnection = true
			case models.ConnectionStatusPending:
				if edge.RequesterID == viewerID {
					status.RequestSent = true
				} else {
					status.RequestReceived = true
				}
			}
		}
	}

	return &ProfileView{
		User:             user,
		Profile:          profile,
		ConnectionStatus: status,
	}, nil
}
