package repository

import (
	"context"
	"errors"

	"proconnect/internal/models"

	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection request data operations
type ConnectionRepository interface {
	Create(ctx context.Context, request *models.ConnectionRequest) error
	GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.ConnectionRequest, error)
	Update(ctx context.Context, request *models.ConnectionRequest) error
	Delete(ctx context.Context, id uint) error
	GetPendingForRecipient(ctx context.Context, recipientID uint) ([]models.ConnectionRequest, error)
	GetPendingFromRequester(ctx context.Context, requesterID uint) ([]models.ConnectionRequest, error)
	GetAcceptedForUser(ctx context.Context, userID uint) ([]models.ConnectionRequest, error)
	GetAllForUser(ctx context.Context, userID uint) ([]models.ConnectionRequest, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, request *models.ConnectionRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewValidationError("A connection request already exists between these users")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Recipient").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ConnectionRequest", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// GetBetweenUsers finds the single row for an unordered pair, checking both
// orderings. Returns (nil, nil) when no row exists.
func (r *connectionRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Recipient").
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// Update persists all mutable columns of the row, including reassigned
// requester/recipient and the refreshed created_at when a rejected request is
// resent by the other side.
func (r *connectionRepository) Update(ctx context.Context, request *models.ConnectionRequest) error {
	err := r.db.WithContext(ctx).
		Model(request).
		Select("RequesterID", "RecipientID", "Status", "CreatedAt").
		Updates(map[string]interface{}{
			"requester_id": request.RequesterID,
			"recipient_id": request.RecipientID,
			"status":       request.Status,
			"created_at":   request.CreatedAt,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ConnectionRequest{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetPendingForRecipient(ctx context.Context, recipientID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("recipient_id = ? AND status = ?", recipientID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *connectionRepository) GetPendingFromRequester(ctx context.Context, requesterID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Preload("Recipient").
		Where("requester_id = ? AND status = ?", requesterID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// GetAllForUser returns every edge the user participates in, any status.
// Used to decorate user listings without a query per row.
func (r *connectionRepository) GetAllForUser(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? OR recipient_id = ?", userID, userID).
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *connectionRepository) GetAcceptedForUser(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Recipient").
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, models.ConnectionStatusAccepted).
		Order("updated_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}
