package repository

import (
	"fmt"
	"testing"

	"proconnect/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the same error
// translation the production connection uses.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Education{},
		&models.Experience{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.ConnectionRequest{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Name:           "User " + username,
		Username:       username,
		Email:          username + "@example.com",
		ExternalAuthID: "ext-" + username,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, body string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Body: body}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func createTestUsers(t *testing.T, db *gorm.DB, n int) []*models.User {
	t.Helper()
	users := make([]*models.User, n)
	for i := range users {
		users[i] = createTestUser(t, db, fmt.Sprintf("user%d", i+1))
	}
	return users
}
