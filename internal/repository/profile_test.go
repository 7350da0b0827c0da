package repository

import (
	"context"
	"errors"
	"testing"

	"proconnect/internal/models"

	"gorm.io/gorm"
)

func createTestProfile(t *testing.T, db *gorm.DB, userID uint, bio string) *models.Profile {
	t.Helper()
	profile := &models.Profile{UserID: userID, Bio: bio, Skills: []string{}}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

func TestProfileRepositoryGetByUserIDOrdersSections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	user := createTestUser(t, db, "jordan")
	ctx := context.Background()

	profile := &models.Profile{
		UserID: user.ID,
		Education: []models.Education{
			{Institution: "Second", SortOrder: 1},
			{Institution: "First", SortOrder: 0},
		},
		Experience: []models.Experience{
			{Company: "Later", SortOrder: 1},
			{Company: "Earlier", SortOrder: 0},
		},
	}
	if err := repo.Create(ctx, profile); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := repo.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Education) != 2 || stored.Education[0].Institution != "First" {
		t.Fatalf("education not ordered by sort order: %#v", stored.Education)
	}
	if len(stored.Experience) != 2 || stored.Experience[0].Company != "Earlier" {
		t.Fatalf("experience not ordered by sort order: %#v", stored.Experience)
	}
	if stored.Skills == nil {
		t.Fatal("expected non-nil skills slice")
	}
}

func TestProfileRepositoryReplaceCareerData(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	user := createTestUser(t, db, "jordan")
	ctx := context.Background()

	profile := &models.Profile{
		UserID:     user.ID,
		Education:  []models.Education{{Institution: "Old School"}},
		Experience: []models.Experience{{Company: "Old Corp"}},
		Skills:     []string{"Old"},
	}
	if err := repo.Create(ctx, profile); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.ReplaceCareerData(ctx, user.ID,
		[]models.Education{
			{Institution: "New School", Degree: "MSc"},
			{Institution: "Other School", Degree: "BSc"},
		},
		nil,
		[]string{"Go", "SQL"},
	)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	if len(updated.Education) != 2 || updated.Education[0].Institution != "New School" {
		t.Fatalf("education not replaced in order: %#v", updated.Education)
	}
	// Experience was nil, so the old entry survives.
	if len(updated.Experience) != 1 || updated.Experience[0].Company != "Old Corp" {
		t.Fatalf("nil experience must be untouched: %#v", updated.Experience)
	}
	if len(updated.Skills) != 2 || updated.Skills[0] != "Go" {
		t.Fatalf("skills not replaced: %#v", updated.Skills)
	}
}

func TestProfileRepositoryReplaceCareerDataClearsWithEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	user := createTestUser(t, db, "jordan")
	ctx := context.Background()

	profile := &models.Profile{
		UserID:    user.ID,
		Education: []models.Education{{Institution: "Old School"}},
	}
	if err := repo.Create(ctx, profile); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.ReplaceCareerData(ctx, user.ID, []models.Education{}, nil, nil)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(updated.Education) != 0 {
		t.Fatalf("empty slice must clear the section: %#v", updated.Education)
	}
}

func TestProfileRepositoryReplaceCareerDataMissingProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)

	_, err := repo.ReplaceCareerData(context.Background(), 999, nil, nil, []string{"Go"})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestProfileRepositoryUpdateHeadline(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	user := createTestUser(t, db, "jordan")
	ctx := context.Background()

	createTestProfile(t, db, user.ID, "old bio")

	if err := repo.UpdateHeadline(ctx, user.ID, "new bio", ""); err != nil {
		t.Fatalf("update headline: %v", err)
	}

	stored, err := repo.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Bio != "new bio" {
		t.Fatalf("bio not updated: %q", stored.Bio)
	}
	if stored.CurrentPosition != "" {
		t.Fatalf("empty position must stay unchanged: %q", stored.CurrentPosition)
	}
}

func TestProfileRepositoryGetBios(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	users := createTestUsers(t, db, 3)
	ctx := context.Background()

	createTestProfile(t, db, users[0].ID, "first bio")
	createTestProfile(t, db, users[1].ID, "second bio")
	// users[2] has no profile row.

	bios, err := repo.GetBios(ctx, []uint{users[0].ID, users[1].ID, users[2].ID})
	if err != nil {
		t.Fatalf("get bios: %v", err)
	}
	if len(bios) != 2 {
		t.Fatalf("expected 2 bios, got %#v", bios)
	}
	if bios[users[0].ID] != "first bio" || bios[users[1].ID] != "second bio" {
		t.Fatalf("unexpected bios: %#v", bios)
	}

	empty, err := repo.GetBios(ctx, nil)
	if err != nil {
		t.Fatalf("empty lookup: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty map, got %#v", empty)
	}
}
