package service

import (
	"context"
	"testing"

	"proconnect/internal/models"
)

func TestUserServiceRegisterMissingFields(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopProfileRepo(), noopConnectionRepo())

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"empty", RegisterInput{}},
		{"no name", RegisterInput{Email: "a@b.com", Username: "a", ExternalAuthID: "ext-1"}},
		{"no email", RegisterInput{Name: "A", Username: "a", ExternalAuthID: "ext-1"}},
		{"no username", RegisterInput{Name: "A", Email: "a@b.com", ExternalAuthID: "ext-1"}},
		{"no external id", RegisterInput{Name: "A", Email: "a@b.com", Username: "a"}},
		{"whitespace only", RegisterInput{Name: "  ", Email: " ", Username: " ", ExternalAuthID: "ext-1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			assertAppErrorCode(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestUserServiceRegisterDuplicate(t *testing.T) {
	users := noopUserRepo()
	users.existsByIdentityFn = func(context.Context, string, string, string) (bool, error) {
		return true, nil
	}

	svc := NewUserService(users, noopProfileRepo(), noopConnectionRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Name:           "Jordan Tate",
		Email:          "jordan@example.com",
		Username:       "jordan",
		ExternalAuthID: "ext-1",
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestUserServiceRegisterCreatesEmptyProfile(t *testing.T) {
	users := noopUserRepo()
	users.createFn = func(_ context.Context, user *models.User) error {
		user.ID = 42
		return nil
	}
	profiles := noopProfileRepo()
	var createdProfile *models.Profile
	profiles.createFn = func(_ context.Context, profile *models.Profile) error {
		createdProfile = profile
		return nil
	}

	svc := NewUserService(users, profiles, noopConnectionRepo())
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:           "  Jordan Tate ",
		Email:          "jordan@example.com",
		Username:       "jordan",
		ExternalAuthID: "ext-1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Name != "Jordan Tate" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	if createdProfile == nil || createdProfile.UserID != 42 {
		t.Fatalf("expected profile for user 42, got %#v", createdProfile)
	}
	if createdProfile.Skills == nil || len(createdProfile.Skills) != 0 {
		t.Fatalf("expected empty non-nil skills, got %#v", createdProfile.Skills)
	}
}

func TestUserServiceGetByExternalIDWithoutProfile(t *testing.T) {
	users := noopUserRepo()
	users.getByExternalIDFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 9, Username: "jordan"}, nil
	}
	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(context.Context, uint) (*models.Profile, error) {
		return nil, models.NewNotFoundError("Profile", 9)
	}

	svc := NewUserService(users, profiles, noopConnectionRepo())
	result, err := svc.GetByExternalID(context.Background(), "ext-9")
	if err != nil {
		t.Fatalf("get by external id: %v", err)
	}
	if result.User == nil || result.User.ID != 9 {
		t.Fatalf("unexpected user: %#v", result.User)
	}
	if result.Profile != nil {
		t.Fatalf("expected nil profile, got %#v", result.Profile)
	}
}

func TestUserServiceUpdateUserProfilePartial(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 1, Name: "Old Name"}, nil
	}
	users.updateFn = func(context.Context, *models.User) error {
		t.Fatal("empty name must not touch the user row")
		return nil
	}
	profiles := noopProfileRepo()
	var gotBio, gotPosition string
	profiles.updateHeadlineFn = func(_ context.Context, _ uint, bio, currentPosition string) error {
		gotBio, gotPosition = bio, currentPosition
		return nil
	}

	svc := NewUserService(users, profiles, noopConnectionRepo())
	result, err := svc.UpdateUserProfile(context.Background(), 1, "  ", "New bio", "Engineer")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.User.Name != "Old Name" {
		t.Fatalf("expected name unchanged, got %q", result.User.Name)
	}
	if gotBio != "New bio" || gotPosition != "Engineer" {
		t.Fatalf("headline not forwarded: bio=%q position=%q", gotBio, gotPosition)
	}
}

func TestUserServiceUpdateProfilePictureReturnsPrevious(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 1, ProfilePicture: "old.webp"}, nil
	}
	var updated *models.User
	users.updateFn = func(_ context.Context, user *models.User) error {
		updated = user
		return nil
	}

	svc := NewUserService(users, noopProfileRepo(), noopConnectionRepo())
	previous, err := svc.UpdateProfilePicture(context.Background(), 1, "new.webp")
	if err != nil {
		t.Fatalf("update picture: %v", err)
	}
	if previous != "old.webp" {
		t.Fatalf("expected previous filename, got %q", previous)
	}
	if updated == nil || updated.ProfilePicture != "new.webp" {
		t.Fatalf("expected new filename persisted, got %#v", updated)
	}
}

func TestUserServiceListUsersDecoration(t *testing.T) {
	users := noopUserRepo()
	users.listFn = func(context.Context) ([]models.User, error) {
		return []models.User{
			{ID: 1, Username: "viewer"},
			{ID: 2, Username: "friend"},
			{ID: 3, Username: "invited"},
			{ID: 4, Username: "inviter"},
			{ID: 5, Username: "stranger"},
		}, nil
	}
	connections := noopConnectionRepo()
	connections.getAllForUserFn = func(context.Context, uint) ([]models.ConnectionRequest, error) {
		return []models.ConnectionRequest{
			{RequesterID: 1, RecipientID: 2, Status: models.ConnectionStatusAccepted},
			{RequesterID: 1, RecipientID: 3, Status: models.ConnectionStatusPending},
			{RequesterID: 4, RecipientID: 1, Status: models.ConnectionStatusPending},
		}, nil
	}

	svc := NewUserService(users, noopProfileRepo(), connections)
	directory, err := svc.ListUsers(context.Background(), 1)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(directory) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(directory))
	}

	byID := map[uint]DirectoryUser{}
	for _, entry := range directory {
		byID[entry.ID] = entry
	}

	if byID[1].IsConnection || byID[1].ConnectionRequestSent || byID[1].ConnectionRequestReceived {
		t.Fatalf("viewer's own entry must be undecorated: %#v", byID[1])
	}
	if !byID[2].IsConnection {
		t.Fatal("expected user 2 marked as connection")
	}
	if !byID[3].ConnectionRequestSent || byID[3].ConnectionRequestReceived {
		t.Fatalf("expected sent-only flags on user 3: %#v", byID[3])
	}
	if !byID[4].ConnectionRequestReceived || byID[4].ConnectionRequestSent {
		t.Fatalf("expected received-only flags on user 4: %#v", byID[4])
	}
	if byID[5].IsConnection || byID[5].ConnectionRequestSent || byID[5].ConnectionRequestReceived {
		t.Fatalf("expected no flags on user 5: %#v", byID[5])
	}
}

func TestUserServiceListUsersAnonymous(t *testing.T) {
	users := noopUserRepo()
	users.listFn = func(context.Context) ([]models.User, error) {
		return []models.User{{ID: 1}, {ID: 2}}, nil
	}
	connections := noopConnectionRepo()
	connections.getAllForUserFn = func(context.Context, uint) ([]models.ConnectionRequest, error) {
		t.Fatal("anonymous listing must not query connections")
		return nil, nil
	}

	svc := NewUserService(users, noopProfileRepo(), connections)
	directory, err := svc.ListUsers(context.Background(), 0)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(directory) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(directory))
	}
}
