package service

import (
	"context"
	"strings"

	"proconnect/internal/models"
	"proconnect/internal/repository"
)

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CommentPage is one page of a post's comments.
type CommentPage struct {
	Comments      []models.Comment `json:"comments"`
	Pagination    Pagination       `json:"pagination"`
	TotalComments int64            `json:"-"`
}

// AddComment attaches a comment to an existing post.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Comment body cannot be empty")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID: userID,
		PostID: postID,
		Body:   body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// GetComments returns one page of a post's comments, newest first.
func (s *CommentService) GetComments(ctx context.Context, postID uint, page, limit int) (*CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &CommentPage{
		Comments:      comments,
		TotalComments: total,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			HasMore:     page < totalPages,
		},
	}, nil
}

// DeleteComment removes a comment. Only the comment author or the post owner
// may delete it. A comment whose post is gone can no longer be deleted
// through this path.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return err
	}

	if comment.UserID != userID && post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments or comments on your posts")
	}

	return s.commentRepo.Delete(ctx, commentID)
}
