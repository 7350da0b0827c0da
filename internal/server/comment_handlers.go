package server

import (
	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /posts/:postId/comment
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var body struct {
		CommentBody string `json:"commentBody"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := s.commentService.AddComment(ctx, userID, postID, body.CommentBody)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// GetComments handles GET /posts/:postId/comments?page&limit
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	page := parsePage(c)

	result, err := s.commentService.GetComments(ctx, postID, page.Page, page.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"comments": result.Comments,
		"pagination": fiber.Map{
			"currentPage":   result.Pagination.CurrentPage,
			"totalPages":    result.Pagination.TotalPages,
			"totalComments": result.TotalComments,
			"hasMore":       result.Pagination.HasMore,
		},
	})
}

// DeleteComment handles DELETE /comments/:commentId/delete
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, userID, commentID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
