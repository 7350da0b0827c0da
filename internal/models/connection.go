package models

import "time"

// ConnectionStatus represents the status of a connection request.
type ConnectionStatus string

const (
	// ConnectionStatusPending indicates a request awaiting the recipient's decision.
	ConnectionStatusPending ConnectionStatus = "pending"
	// ConnectionStatusAccepted indicates a confirmed mutual connection.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	// ConnectionStatusRejected indicates a declined request. A rejected row is
	// reopened in place by a fresh send from either side.
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// ConnectionRequest is the single mutable record mediating the social-graph
// edge between two users. At most one row exists per unordered user pair: the
// unique index covers the ordered pair and every lookup searches both
// orderings.
type ConnectionRequest struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_connection_pair;index:idx_connections_requester_status" json:"requesterId"`
	RecipientID uint             `gorm:"not null;uniqueIndex:idx_connection_pair;index:idx_connections_recipient_status" json:"recipientId"`
	Status      ConnectionStatus `gorm:"type:varchar(20);default:'pending';index:idx_connections_requester_status;index:idx_connections_recipient_status" json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM.
func (ConnectionRequest) TableName() string {
	return "connection_requests"
}

// OtherParty returns the user on the opposite side of the edge from userID.
func (r ConnectionRequest) OtherParty(userID uint) User {
	if r.RequesterID == userID {
		return r.Recipient
	}
	return r.Requester
}
