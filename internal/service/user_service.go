package service

import (
	"context"
	"errors"
	"strings"

	"proconnect/internal/models"
	"proconnect/internal/repository"
)

// UserService provides account registration and user-directory business logic.
type UserService struct {
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	connectionRepo repository.ConnectionRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, connectionRepo repository.ConnectionRepository) *UserService {
	return &UserService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		connectionRepo: connectionRepo,
	}
}

// RegisterInput carries the fields required to create an account. The
// identity provider has already authenticated the user; ExternalAuthID links
// the new row to that identity.
type RegisterInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	ExternalAuthID string `json:"externalAuthId"`
}

// UserWithProfile pairs an account with its profile for combined responses.
type UserWithProfile struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

// DirectoryUser is a user-directory entry decorated with the viewer's
// relationship to that user.
type DirectoryUser struct {
	models.User
	IsConnection              bool `json:"isConnection"`
	ConnectionRequestSent     bool `json:"connectionRequestSent"`
	ConnectionRequestReceived bool `json:"connectionRequestReceived"`
}

// Register creates a user and an empty profile for a verified external
// identity. Username, email and external ID must all be unused.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Username = strings.TrimSpace(input.Username)
	if input.Name == "" || input.Email == "" || input.Username == "" || input.ExternalAuthID == "" {
		return nil, models.NewValidationError("Please fill all fields")
	}

	exists, err := s.userRepo.ExistsByIdentity(ctx, input.Username, input.Email, input.ExternalAuthID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("User already exists")
	}

	user := &models.User{
		Name:           input.Name,
		Email:          input.Email,
		Username:       input.Username,
		ExternalAuthID: input.ExternalAuthID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.Profile{UserID: user.ID, Skills: []string{}}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserAndProfile returns the account and profile for the given user.
func (s *UserService) GetUserAndProfile(ctx context.Context, userID uint) (*UserWithProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserWithProfile{User: user, Profile: profile}, nil
}

// GetByExternalID resolves an external identity to the local account and its
// profile. An account without a profile still resolves; Profile is nil then.
func (s *UserService) GetByExternalID(ctx context.Context, externalID string) (*UserWithProfile, error) {
	user, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return &UserWithProfile{User: user}, nil
		}
		return nil, err
	}

	return &UserWithProfile{User: user, Profile: profile}, nil
}

// UpdateUserProfile applies a partial update to the account name and the
// profile headline fields. Empty fields are left unchanged.
func (s *UserService) UpdateUserProfile(ctx context.Context, userID uint, name, bio, currentPosition string) (*UserWithProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if _, err := s.profileRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.UpdateHeadline(ctx, userID, bio, currentPosition); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserWithProfile{User: user, Profile: profile}, nil
}

// UpdateProfilePicture records a new profile picture filename and returns the
// previous one so the caller can remove the stored file.
func (s *UserService) UpdateProfilePicture(ctx context.Context, userID uint, filename string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	previous := user.ProfilePicture
	user.ProfilePicture = filename
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}
	return previous, nil
}

// ListUsers returns every user decorated with the viewer's relationship to
// them. viewerID of zero returns the undecorated directory.
func (s *UserService) ListUsers(ctx context.Context, viewerID uint) ([]DirectoryUser, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	edges := map[uint]models.ConnectionRequest{}
	if viewerID != 0 {
		requests, err := s.connectionRepo.GetAllForUser(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for _, request := range requests {
			if request.RequesterID == viewerID {
				edges[request.RecipientID] = request
			} else {
				edges[request.RequesterID] = request
			}
		}
	}

	directory := make([]DirectoryUser, 0, len(users))
	for _, user := range users {
		entry := DirectoryUser{User: user}
		if edge, ok := edges[user.ID]; ok && user.ID != viewerID {
			entry.IsConnection = edge.Status == models.ConnectionStatusAccepted
			pending := edge.Status == models.ConnectionStatusPending
			entry.ConnectionRequestSent = pending && edge.RequesterID == viewerID
			entry.ConnectionRequestReceived = pending && edge.RecipientID == viewerID
		}
		directory = append(directory, entry)
	}
	return directory, nil
}
