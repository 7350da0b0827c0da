package server

import (
	"proconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts (multipart, optional "media" file)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	body := c.FormValue("body")

	var stored *service.StoredMedia
	if fileHeader, err := c.FormFile("media"); err == nil && fileHeader != nil {
		content, err := readMultipartFile(fileHeader)
		if err != nil {
			return respondServiceError(c, err)
		}
		stored, err = s.mediaService.SavePostMedia(
			fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
		if err != nil {
			return respondServiceError(c, err)
		}
	}

	post, err := s.postService.CreatePost(ctx, userID, body, stored)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetPosts handles GET /posts?page&limit
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := currentUserID(c)
	page := parsePage(c)

	feed, err := s.postService.GetFeed(ctx, viewerID, page.Page, page.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":       feed.Posts,
		"likedByUser": feed.LikedByUser,
		"pagination": fiber.Map{
			"currentPage": feed.Pagination.CurrentPage,
			"totalPages":  feed.Pagination.TotalPages,
			"totalPosts":  feed.TotalPosts,
			"hasMore":     feed.Pagination.HasMore,
		},
	})
}

// GetPostsByUsername handles GET /posts/user/:username
func (s *Server) GetPostsByUsername(c *fiber.Ctx) error {
	ctx := c.UserContext()

	username := c.Params("username")
	if username == "" {
		return badRequest(c, "Username is required")
	}

	posts, err := s.postService.GetPostsByUsername(ctx, username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"posts": posts})
}

// DeletePost handles DELETE /posts/:postId/delete
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// ToggleLike handles POST /posts/:postId/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	result, err := s.postService.ToggleLike(ctx, userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Post liked successfully"
	if !result.Liked {
		message = "Post unliked successfully"
	}

	return c.JSON(fiber.Map{
		"message":    message,
		"likesCount": result.LikesCount,
		"isLiked":    result.Liked,
	})
}

// GetLikes handles GET /posts/:postId/likes
func (s *Server) GetLikes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	likes, err := s.postService.GetLikes(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(likes)
}
