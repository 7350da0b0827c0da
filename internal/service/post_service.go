package service

import (
	"context"
	"strings"

	"proconnect/internal/models"
	"proconnect/internal/repository"
)

// PostService provides feed-post and like business logic.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	media    *MediaService
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, media *MediaService) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		media:    media,
	}
}

// Pagination describes the page position of a listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"-"`
	HasMore     bool  `json:"hasMore"`
}

// PostFeed is one page of the global feed with the viewer's like marks.
type PostFeed struct {
	Posts       []models.Post `json:"posts"`
	LikedByUser map[uint]bool `json:"likedByUser"`
	Pagination  Pagination    `json:"pagination"`
	TotalPosts  int64         `json:"-"`
}

// LikeToggleResult reports the state of a post's like set after a toggle.
type LikeToggleResult struct {
	Liked      bool  `json:"isLiked"`
	LikesCount int64 `json:"likesCount"`
}

// PostLikes lists who liked a post, with a short preview slice.
type PostLikes struct {
	LikesCount   int64                `json:"likesCount"`
	PreviewLikes []models.UserSummary `json:"previewLikes"`
	AllLikes     []models.UserSummary `json:"allLikes"`
}

// CreatePost creates a post, optionally with a stored media attachment.
func (s *PostService) CreatePost(ctx context.Context, userID uint, body string, media *StoredMedia) (*models.Post, error) {
	post := &models.Post{
		UserID: userID,
		Body:   body,
	}
	if media != nil {
		post.Media = media.Filename
		if parts := strings.SplitN(media.FileType, "/", 2); len(parts) == 2 {
			post.FileType = parts[1]
		}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if media != nil {
			s.media.Remove(media.Filename)
		}
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetFeed returns one page of the global feed, newest first. viewerID of
// zero skips the like marks.
func (s *PostService) GetFeed(ctx context.Context, viewerID uint, page, limit int) (*PostFeed, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	likedByUser := map[uint]bool{}
	if viewerID != 0 && len(posts) > 0 {
		ids := make([]uint, 0, len(posts))
		for _, post := range posts {
			ids = append(ids, post.ID)
		}
		likedByUser, err = s.postRepo.LikedPostIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PostFeed{
		Posts:       posts,
		LikedByUser: likedByUser,
		TotalPosts:  total,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			HasMore:     page < totalPages,
		},
	}, nil
}

// GetPostsByUsername returns all of a user's posts, newest first.
func (s *PostService) GetPostsByUsername(ctx context.Context, username string) ([]models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByUserID(ctx, user.ID)
}

// DeletePost deletes the user's own post and its stored media.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	if post.Media != "" {
		s.media.Remove(post.Media)
	}
	return nil
}

// ToggleLike flips the user's membership in the post's like set and returns
// the resulting state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeToggleResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.postRepo.RemoveLike(ctx, userID, postID)
	} else {
		err = s.postRepo.AddLike(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &LikeToggleResult{Liked: !liked, LikesCount: count}, nil
}

// GetLikes returns the post's like count and the users behind it.
func (s *PostService) GetLikes(ctx context.Context, postID uint) (*PostLikes, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}
	likers, err := s.postRepo.GetLikers(ctx, postID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(likers))
	for _, user := range likers {
		summaries = append(summaries, user.Summary())
	}
	preview := summaries
	if len(preview) > 3 {
		preview = preview[:3]
	}

	return &PostLikes{
		LikesCount:   count,
		PreviewLikes: preview,
		AllLikes:     summaries,
	}, nil
}
