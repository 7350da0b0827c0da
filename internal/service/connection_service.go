// Package service contains the application's business logic.
package service

import (
	"context"
	"time"

	"proconnect/internal/models"
	"proconnect/internal/observability"
	"proconnect/internal/repository"
)

// ConnectionService provides connection-request and connection business logic.
// Every mutation operates on the single row that exists per unordered user
// pair.
type ConnectionService struct {
	connectionRepo repository.ConnectionRepository
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(connectionRepo repository.ConnectionRepository, userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *ConnectionService {
	return &ConnectionService{
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
	}
}

// ConnectionRequestItem is one entry in an incoming or sent request listing,
// shaped as the other party's summary plus the request metadata.
type ConnectionRequestItem struct {
	UserID         uint      `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture"`
	Bio            string    `json:"bio,omitempty"`
	RequestID      uint      `json:"requestId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ConnectionItem is one entry in an accepted-connections listing.
type ConnectionItem struct {
	UserID         uint      `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture"`
	ConnectionDate time.Time `json:"connectionDate"`
}

// ConnectionStatusResult describes the edge between the viewer and a target
// user from the viewer's perspective.
type ConnectionStatusResult struct {
	Status      string `json:"status"`
	ActionBy    string `json:"actionBy,omitempty"`
	CanCancel   bool   `json:"canCancel"`
	CanAccept   bool   `json:"canAccept"`
	CanReject   bool   `json:"canReject"`
	CanUnfriend bool   `json:"canUnfriend"`
}

// SendRequest sends a connection request from userID to targetUserID. A
// rejected row between the pair is reopened in place: the sender becomes the
// requester and the status returns to pending. The returned bool reports
// whether a new row was created (false means a rejected row was reopened).
func (s *ConnectionService) SendRequest(ctx context.Context, userID, targetUserID uint) (bool, error) {
	if userID == targetUserID {
		return false, models.NewValidationError("You cannot connect with yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return false, err
	}

	existing, err := s.connectionRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		switch existing.Status {
		case models.ConnectionStatusPending:
			return false, models.NewValidationError("Connection request already pending")
		case models.ConnectionStatusAccepted:
			return false, models.NewValidationError("You are already connected")
		case models.ConnectionStatusRejected:
			existing.RequesterID = userID
			existing.RecipientID = targetUserID
			existing.Status = models.ConnectionStatusPending
			existing.CreatedAt = time.Now()
			if err := s.connectionRepo.Update(ctx, existing); err != nil {
				return false, err
			}
			observability.ConnectionTransitions.WithLabelValues("reopened").Inc()
			return false, nil
		}
	}

	request := &models.ConnectionRequest{
		RequesterID: userID,
		RecipientID: targetUserID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.connectionRepo.Create(ctx, request); err != nil {
		return false, err
	}
	observability.ConnectionTransitions.WithLabelValues("sent").Inc()
	return true, nil
}

// AcceptRequest accepts the pending request sent by requesterID to userID.
func (s *ConnectionService) AcceptRequest(ctx context.Context, userID, requesterID uint) error {
	request, err := s.pendingRequestFrom(ctx, userID, requesterID)
	if err != nil {
		return err
	}

	request.Status = models.ConnectionStatusAccepted
	if err := s.connectionRepo.Update(ctx, request); err != nil {
		return err
	}
	observability.ConnectionTransitions.WithLabelValues("accepted").Inc()
	return nil
}

// RejectRequest rejects the pending request sent by requesterID to userID.
// The row stays in place so a later send from either side reopens it.
func (s *ConnectionService) RejectRequest(ctx context.Context, userID, requesterID uint) error {
	request, err := s.pendingRequestFrom(ctx, userID, requesterID)
	if err != nil {
		return err
	}

	request.Status = models.ConnectionStatusRejected
	if err := s.connectionRepo.Update(ctx, request); err != nil {
		return err
	}
	observability.ConnectionTransitions.WithLabelValues("rejected").Inc()
	return nil
}

// pendingRequestFrom finds the pending request where requesterID is the
// sender and userID the recipient.
func (s *ConnectionService) pendingRequestFrom(ctx context.Context, userID, requesterID uint) (*models.ConnectionRequest, error) {
	request, err := s.connectionRepo.GetBetweenUsers(ctx, userID, requesterID)
	if err != nil {
		return nil, err
	}
	if request == nil || request.Status != models.ConnectionStatusPending ||
		request.RequesterID != requesterID || request.RecipientID != userID {
		return nil, models.NewNotFoundError("Pending connection request", requesterID)
	}
	return request, nil
}

// ToggleRequest cancels a pending request the user sent or removes an
// accepted connection. Pending requests sent by the other party cannot be
// cancelled here, and rejected rows require a fresh send instead.
func (s *ConnectionService) ToggleRequest(ctx context.Context, userID, targetUserID uint) (string, error) {
	if userID == targetUserID {
		return "", models.NewValidationError("You cannot toggle a connection with yourself")
	}

	existing, err := s.connectionRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", models.NewNotFoundError("Connection", targetUserID)
	}

	switch existing.Status {
	case models.ConnectionStatusPending:
		if existing.RequesterID != userID {
			return "", models.NewForbiddenError("You can't cancel someone else's request")
		}
		if err := s.connectionRepo.Delete(ctx, existing.ID); err != nil {
			return "", err
		}
		observability.ConnectionTransitions.WithLabelValues("cancelled").Inc()
		return "Connection request cancelled", nil
	case models.ConnectionStatusAccepted:
		if err := s.connectionRepo.Delete(ctx, existing.ID); err != nil {
			return "", err
		}
		observability.ConnectionTransitions.WithLabelValues("removed").Inc()
		return "Connection removed successfully", nil
	case models.ConnectionStatusRejected:
		return "", models.NewValidationError("Rejected request cannot be toggled. Send a new request")
	}

	return "", models.NewValidationError("Invalid connection state")
}

// GetStatus returns the connection state between userID and targetUserID from
// userID's perspective, including the actions currently available.
func (s *ConnectionService) GetStatus(ctx context.Context, userID, targetUserID uint) (*ConnectionStatusResult, error) {
	if userID == targetUserID {
		return &ConnectionStatusResult{Status: "self"}, nil
	}

	existing, err := s.connectionRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &ConnectionStatusResult{Status: "none"}, nil
	}

	actionBy := "other"
	if existing.RequesterID == userID {
		actionBy = "self"
	}

	pending := existing.Status == models.ConnectionStatusPending
	return &ConnectionStatusResult{
		Status:      string(existing.Status),
		ActionBy:    actionBy,
		CanCancel:   pending && actionBy == "self",
		CanAccept:   pending && actionBy == "other",
		CanReject:   pending && actionBy == "other",
		CanUnfriend: existing.Status == models.ConnectionStatusAccepted,
	}, nil
}

// GetIncomingRequests lists pending requests addressed to the user, newest
// first, shaped as the requesters' summaries.
func (s *ConnectionService) GetIncomingRequests(ctx context.Context, userID uint) ([]ConnectionRequestItem, error) {
	requests, err := s.connectionRepo.GetPendingForRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]ConnectionRequestItem, 0, len(requests))
	for _, request := range requests {
		items = append(items, ConnectionRequestItem{
			UserID:         request.Requester.ID,
			Name:           request.Requester.Name,
			Username:       request.Requester.Username,
			ProfilePicture: request.Requester.ProfilePicture,
			RequestID:      request.ID,
			CreatedAt:      request.CreatedAt,
		})
	}
	return items, nil
}

// GetSentRequests lists pending requests the user sent, newest first, shaped
// as the recipients' summaries with their profile bios.
func (s *ConnectionService) GetSentRequests(ctx context.Context, userID uint) ([]ConnectionRequestItem, error) {
	requests, err := s.connectionRepo.GetPendingFromRequester(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipientIDs := make([]uint, 0, len(requests))
	for _, request := range requests {
		recipientIDs = append(recipientIDs, request.RecipientID)
	}
	bios, err := s.profileRepo.GetBios(ctx, recipientIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ConnectionRequestItem, 0, len(requests))
	for _, request := range requests {
		items = append(items, ConnectionRequestItem{
			UserID:         request.Recipient.ID,
			Name:           request.Recipient.Name,
			Username:       request.Recipient.Username,
			ProfilePicture: request.Recipient.ProfilePicture,
			Bio:            bios[request.RecipientID],
			RequestID:      request.ID,
			CreatedAt:      request.CreatedAt,
		})
	}
	return items, nil
}

// GetConnections lists the user's accepted connections as the other party of
// each edge, most recently connected first.
func (s *ConnectionService) GetConnections(ctx context.Context, userID uint) ([]ConnectionItem, error) {
	connections, err := s.connectionRepo.GetAcceptedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]ConnectionItem, 0, len(connections))
	for _, connection := range connections {
		other := connection.OtherParty(userID)
		items = append(items, ConnectionItem{
			UserID:         other.ID,
			Name:           other.Name,
			Username:       other.Username,
			ProfilePicture: other.ProfilePicture,
			ConnectionDate: connection.UpdatedAt,
		})
	}
	return items, nil
}
