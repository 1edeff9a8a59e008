package inventory

import (
	"github.com/stockroom/backend/internal/domain/inventory"
)

// ItemResponse represents an item with its derived count in API responses
type ItemResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DeletedItemResponse represents a soft-deleted item in API responses
type DeletedItemResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
	DeletionID int64  `json:"deletion_id"`
	Comment    string `json:"deletion_comment"`
}

// CreateItemRequest is the payload for creating an item
type CreateItemRequest struct {
	Name  string `json:"name" binding:"required"`
	Count int64  `json:"count" binding:"min=0"`
}

// UpdateItemRequest is the payload for updating an item. All fields are
// optional; present fields are applied together.
type UpdateItemRequest struct {
	CountChange *int64  `json:"count_change"`
	Name        *string `json:"name"`
	DeletionID  *int64  `json:"deletion_id"`
}

// DeleteItemRequest is the payload for soft-deleting an item. The comment
// is mandatory free text explaining the deletion.
type DeleteItemRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// ToItemResponse converts the read model to an API response
func ToItemResponse(row *inventory.ItemWithCount) ItemResponse {
	return ItemResponse{
		ID:    row.ID,
		Name:  row.Name,
		Count: row.Count,
	}
}

// ToItemResponses converts a slice of read models to API responses
func ToItemResponses(rows []inventory.ItemWithCount) []ItemResponse {
	responses := make([]ItemResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToItemResponse(&row)
	}
	return responses
}

// ToDeletedItemResponses converts deleted-item read models to API responses
func ToDeletedItemResponses(rows []inventory.DeletedItemRow) []DeletedItemResponse {
	responses := make([]DeletedItemResponse, len(rows))
	for i, row := range rows {
		responses[i] = DeletedItemResponse{
			ID:         row.ID,
			Name:       row.Name,
			Count:      row.Count,
			DeletionID: row.DeletionID,
			Comment:    row.Comment,
		}
	}
	return responses
}
