package server

import (
	"proconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileData handles POST /update_profile_data
func (s *Server) UpdateProfileData(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var input service.ProfileDataInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := s.profileService.UpdateProfileData(ctx, userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	if username, ok := c.Locals("username").(string); ok {
		service.InvalidateProfileCache(ctx, username)
	}

	return c.JSON(fiber.Map{
		"message": "Profile data updated successfully",
		"profile": profile,
	})
}

// GetProfileByUsername handles GET /user/profile/:username
func (s *Server) GetProfileByUsername(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := c.Locals("userID").(uint)

	username := c.Params("username")
	if username == "" {
		return badRequest(c, "Username is required")
	}

	view, err := s.profileService.GetProfileByUsername(ctx, viewerID, username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(view)
}
