package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stockroom/backend/internal/interfaces/http/router"
)

// ItemHandler handles item-related API endpoints
type ItemHandler struct {
	BaseHandler
	itemService *inventoryapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *inventoryapp.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// Routes returns the item route group
func (h *ItemHandler) Routes() *router.DomainGroup {
	routes := router.NewDomainGroup("items", "/items")
	routes.GET("", h.List)
	routes.GET("/deleted", h.ListDeleted)
	routes.GET("/search", h.Search)
	routes.GET("/:id", h.Get)
	routes.GET("/:id/deletion", h.GetDeletionID)
	routes.POST("", h.Create)
	routes.PUT("/:id", h.Update)
	routes.DELETE("/:id", h.Delete)
	routes.POST("/:id/restore", h.Restore)
	return routes
}

// List returns all active items with their derived counts
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, int64(len(items)))
}

// ListDeleted returns all soft-deleted items with their deletion records
func (h *ItemHandler) ListDeleted(c *gin.Context) {
	items, err := h.itemService.ListDeleted(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, int64(len(items)))
}

// Search returns active items whose name matches the query, capped for
// typeahead use
func (h *ItemHandler) Search(c *gin.Context) {
	query := c.Query("q")
	items, err := h.itemService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns a single active item by id
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeletionIDResponse carries the tri-state deletion lookup result:
// -1 when the item does not exist, 0 when it is active, otherwise the
// deletion record's id
type DeletionIDResponse struct {
	DeletionID int64 `json:"deletion_id"`
}

// GetDeletionID returns the deletion state of an item
func (h *ItemHandler) GetDeletionID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	deletionID, err := h.itemService.GetDeletionID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DeletionIDResponse{DeletionID: deletionID})
}

// Create creates a new item with an optional starting count
func (h *ItemHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update applies a count change, rename, or deletion-id change to an item.
// All present fields are applied inside one transaction.
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req inventoryapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete soft-deletes an item, recording a deletion comment
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req inventoryapp.DeleteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.Delete(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Restore brings a soft-deleted item back into the active set
func (h *ItemHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.Restore(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
