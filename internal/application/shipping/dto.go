package shipping

import (
	"github.com/stockroom/backend/internal/domain/shipping"
)

// ShipmentItemResponse represents one reserved line of a shipment
type ShipmentItemResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ShipmentResponse represents a shipment with its reserved lines
type ShipmentResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Source      string                 `json:"source"`
	Destination string                 `json:"destination"`
	Items       []ShipmentItemResponse `json:"items"`
}

// ShipmentItemRequest is one requested line of a new shipment
type ShipmentItemRequest struct {
	ItemID int64 `json:"id" binding:"required,gt=0"`
	Count  int64 `json:"count" binding:"required,gt=0"`
}

// CreateShipmentRequest is the payload for creating a shipment
type CreateShipmentRequest struct {
	Name        string                `json:"name" binding:"required"`
	Source      string                `json:"source"`
	Destination string                `json:"destination"`
	Items       []ShipmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateShipmentRequest is the payload for updating shipment metadata.
// Each field is optional; absent fields keep their current value.
type UpdateShipmentRequest struct {
	Name        *string `json:"name"`
	Source      *string `json:"source"`
	Destination *string `json:"destination"`
}

// UpdateShipmentItemRequest is the payload for changing a reserved count
type UpdateShipmentItemRequest struct {
	Count int64 `json:"count" binding:"required,gt=0"`
}

// ToShipmentItemResponses converts read models to API responses
func ToShipmentItemResponses(items []shipping.ShipmentItem) []ShipmentItemResponse {
	responses := make([]ShipmentItemResponse, len(items))
	for i, item := range items {
		responses[i] = ShipmentItemResponse{
			ID:    item.ItemID,
			Name:  item.Name,
			Count: item.Count,
		}
	}
	return responses
}

// ToShipmentResponse converts a shipment and its lines to an API response
func ToShipmentResponse(shipment *shipping.Shipment, items []shipping.ShipmentItem) ShipmentResponse {
	return ShipmentResponse{
		ID:          shipment.ID,
		Name:        shipment.Name,
		Source:      shipment.Source,
		Destination: shipment.Destination,
		Items:       ToShipmentItemResponses(items),
	}
}
