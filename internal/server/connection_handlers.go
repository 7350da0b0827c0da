package server

import (
	"github.com/gofiber/fiber/v2"
)

// connectionTarget is the body for connection mutations addressed by user ID.
type connectionTarget struct {
	ConnectionID uint `json:"connectionId"`
}

// SendConnectionRequest handles POST /user/sendConnectionRequest
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var body connectionTarget
	if err := c.BodyParser(&body); err != nil || body.ConnectionID == 0 {
		return badRequest(c, "connectionId is required")
	}

	created, err := s.connectionService.SendRequest(ctx, userID, body.ConnectionID)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"message": "Connection request sent successfully",
	})
}

// AcceptConnectionRequest handles POST /user/acceptConnectionRequest
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var body struct {
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == 0 {
		return badRequest(c, "User ID is required")
	}

	if err := s.connectionService.AcceptRequest(ctx, userID, body.UserID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Connection request accepted successfully"})
}

// RejectConnectionRequest handles POST /user/rejectConnectionRequest
func (s *Server) RejectConnectionRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var body struct {
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == 0 {
		return badRequest(c, "User ID is required")
	}

	if err := s.connectionService.RejectRequest(ctx, userID, body.UserID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Connection request rejected successfully"})
}

// ToggleConnectionRequest handles POST /user/toggleConnectionRequest
func (s *Server) ToggleConnectionRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var body connectionTarget
	if err := c.BodyParser(&body); err != nil || body.ConnectionID == 0 {
		return badRequest(c, "connectionId is required")
	}

	message, err := s.connectionService.ToggleRequest(ctx, userID, body.ConnectionID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": message})
}

// GetConnectionStatus handles GET /user/connectionStatus/:targetUserId
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "targetUserId")
	if err != nil {
		return nil
	}

	status, err := s.connectionService.GetStatus(ctx, userID, targetUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(status)
}

// GetMyConnectionRequests handles GET /user/getMyConnectionRequests
func (s *Server) GetMyConnectionRequests(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	requests, err := s.connectionService.GetIncomingRequests(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"connectionRequests": requests})
}

// GetMySentConnectionRequests handles GET /user/getMySentConnectionRequests
func (s *Server) GetMySentConnectionRequests(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	requests, err := s.connectionService.GetSentRequests(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"sentConnectionRequests": requests})
}

// GetMyConnections handles GET /user/whatAreMyConnections
func (s *Server) GetMyConnections(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	connections, err := s.connectionService.GetConnections(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"connections": connections})
}
