package server

import (
	"proconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /register
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := s.userService.Register(ctx, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// GetUserByExternalID handles GET /user/external/:externalAuthId
//
// Pre-auth bootstrap: the client holds a provider identity and needs to know
// whether a local account exists for it yet.
func (s *Server) GetUserByExternalID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	externalID := c.Params("externalAuthId")
	if externalID == "" {
		return badRequest(c, "External auth ID is required")
	}

	result, err := s.userService.GetByExternalID(ctx, externalID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// GetUserAndProfile handles GET /get_user_and_profile
func (s *Server) GetUserAndProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	result, err := s.userService.GetUserAndProfile(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// UpdateUserProfile handles POST /user_update
func (s *Server) UpdateUserProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var body struct {
		Name            string `json:"name"`
		Bio             string `json:"bio"`
		CurrentPosition string `json:"currentPosition"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := s.userService.UpdateUserProfile(ctx, userID, body.Name, body.Bio, body.CurrentPosition)
	if err != nil {
		return respondServiceError(c, err)
	}

	service.InvalidateProfileCache(ctx, result.User.Username)

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    result.User,
		"profile": result.Profile,
	})
}

// UpdateProfilePicture handles POST /update_profile_picture
func (s *Server) UpdateProfilePicture(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("profile_picture")
	if err != nil {
		return badRequest(c, "No file uploaded")
	}
	content, err := readMultipartFile(fileHeader)
	if err != nil {
		return respondServiceError(c, err)
	}

	stored, err := s.mediaService.SaveProfilePicture(content)
	if err != nil {
		return respondServiceError(c, err)
	}

	previous, err := s.userService.UpdateProfilePicture(ctx, userID, stored)
	if err != nil {
		s.mediaService.Remove(stored)
		return respondServiceError(c, err)
	}
	s.mediaService.Remove(previous)

	if username, ok := c.Locals("username").(string); ok {
		service.InvalidateProfileCache(ctx, username)
	}

	return c.JSON(fiber.Map{
		"message":        "Profile picture updated successfully",
		"profilePicture": stored,
	})
}

// GetAllUsers handles GET /user/get_all_users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := currentUserID(c)

	users, err := s.userService.ListUsers(ctx, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"users": users})
}

// DownloadResume handles GET /user/download_resume/:userId?
func (s *Server) DownloadResume(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	if c.Params("userId") != "" {
		id, err := s.parseID(c, "userId")
		if err != nil {
			return nil
		}
		userID = id
	}

	resume, err := s.resumeService.GeneratePDF(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+resume.Filename+`"`)
	return c.Send(resume.Content)
}
