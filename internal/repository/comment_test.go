package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"proconnect/internal/models"
)

func TestCommentRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	users := createTestUsers(t, db, 2)
	post := createTestPost(t, db, users[0].ID, "hello")
	ctx := context.Background()

	comment := &models.Comment{UserID: users[1].ID, PostID: post.ID, Body: "nice"}
	if err := repo.Create(ctx, comment); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := repo.GetByID(ctx, comment.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Body != "nice" || stored.User.Username != "user2" {
		t.Fatalf("unexpected comment: %#v", stored)
	}
}

func TestCommentRepositoryGetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestCommentRepositoryListByPostPageOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	users := createTestUsers(t, db, 2)
	post := createTestPost(t, db, users[0].ID, "hello")
	other := createTestPost(t, db, users[0].ID, "other")
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		comment := &models.Comment{
			UserID:    users[1].ID,
			PostID:    post.ID,
			Body:      []string{"one", "two", "three", "four", "five"}[i],
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(comment).Error; err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}
	if err := repo.Create(ctx, &models.Comment{UserID: users[1].ID, PostID: other.ID, Body: "elsewhere"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	page, err := repo.ListByPost(ctx, post.ID, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].Body != "five" || page[1].Body != "four" {
		t.Fatalf("expected newest first, got %#v", page)
	}

	count, err := repo.CountByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 comments, got %d", count)
	}
}

func TestCommentRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	users := createTestUsers(t, db, 2)
	post := createTestPost(t, db, users[0].ID, "hello")
	ctx := context.Background()

	comment := &models.Comment{UserID: users[1].ID, PostID: post.ID, Body: "nice"}
	if err := repo.Create(ctx, comment); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, comment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := repo.GetByID(ctx, comment.ID)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found after delete, got %#v", err)
	}
}
