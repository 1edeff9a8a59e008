package shipping

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Shipment groups per-item reservations under a named transfer from a source
// to a destination. The counts it carries live in the ledger as negative
// rows; deleting the shipment releases them.
type Shipment struct {
	shared.BaseEntity
	Name        string `gorm:"not null"`
	Source      string `gorm:"not null"`
	Destination string `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a new shipment
func NewShipment(name, source, destination string) (*Shipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Shipment name cannot be empty")
	}
	return &Shipment{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Source:      source,
		Destination: destination,
	}, nil
}

// UpdateDetails changes shipment metadata. Nil fields are left untouched.
// Item reservations are managed through the ledger, not here.
func (s *Shipment) UpdateDetails(name, source, destination *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return shared.NewDomainError("INVALID_NAME", "Shipment name cannot be empty")
		}
		s.Name = trimmed
	}
	if source != nil {
		s.Source = *source
	}
	if destination != nil {
		s.Destination = *destination
	}
	s.UpdatedAt = time.Now()
	return nil
}

// ShipmentItem is the read model for a shipment's lines: the reserved count
// reported as a positive magnitude.
type ShipmentItem struct {
	ItemID int64  `json:"id"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

// ShipmentWithItems is the read model for shipment listings
type ShipmentWithItems struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Items       []ShipmentItem `json:"items"`
}
