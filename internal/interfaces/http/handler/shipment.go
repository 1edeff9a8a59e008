package handler

import (
	"github.com/gin-gonic/gin"
	shippingapp "github.com/stockroom/backend/internal/application/shipping"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stockroom/backend/internal/interfaces/http/router"
)

// ShipmentHandler handles shipment-related API endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *shippingapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *shippingapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
	}
}

// Routes returns the shipment route group
func (h *ShipmentHandler) Routes() *router.DomainGroup {
	routes := router.NewDomainGroup("shipments", "/shipments")
	routes.GET("", h.List)
	routes.GET("/:id", h.Get)
	routes.POST("", h.Create)
	routes.PUT("/:id", h.Update)
	routes.DELETE("/:id", h.Delete)
	routes.PUT("/:id/items/:item_id", h.UpdateItem)
	routes.DELETE("/:id/items/:item_id", h.DeleteItem)
	return routes
}

// List returns all shipments with their reserved lines
func (h *ShipmentHandler) List(c *gin.Context) {
	shipments, err := h.shipmentService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, shipments, int64(len(shipments)))
}

// Get returns a single shipment with its reserved lines
func (h *ShipmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	shipment, err := h.shipmentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// Create creates a shipment and reserves all requested lines as one unit
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req shippingapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// Update changes shipment metadata without touching reservations
func (h *ShipmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	var req shippingapp.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	shipment, err := h.shipmentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// Delete removes a shipment, releasing all of its reservations
func (h *ShipmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	deleted, err := h.shipmentService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "Shipment not found")
		return
	}
	h.NoContent(c)
}

// UpdateItem changes the reserved count of one shipment line
func (h *ShipmentHandler) UpdateItem(c *gin.Context) {
	shipmentID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req shippingapp.UpdateShipmentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	updated, err := h.shipmentService.UpdateItem(c.Request.Context(), shipmentID, itemID, req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !updated {
		h.NotFound(c, "Shipment line not found")
		return
	}
	h.NoContent(c)
}

// DeleteItem releases the reservation of one shipment line
func (h *ShipmentHandler) DeleteItem(c *gin.Context) {
	shipmentID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	deleted, err := h.shipmentService.DeleteItem(c.Request.Context(), shipmentID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "Shipment line not found")
		return
	}
	h.NoContent(c)
}
