package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ngocanhdo/bookstore-api/internal/application/service"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/dto/request"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/dto/response"
)

// DisplayHandler handles shelf display HTTP requests
type DisplayHandler struct {
	displayService *service.DisplayService
}

// NewDisplayHandler creates a new display handler
func NewDisplayHandler(displayService *service.DisplayService) *DisplayHandler {
	return &DisplayHandler{displayService: displayService}
}

// CreateShelf handles shelf creation
func (h *DisplayHandler) CreateShelf(c *gin.Context) {
	var req request.CreateShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	shelf, err := h.displayService.CreateShelf(c.Request.Context(), &service.CreateShelfInput{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shelf created successfully", shelf)
}

// GetShelf handles retrieving one shelf with its placements
func (h *DisplayHandler) GetShelf(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid shelf ID")
		return
	}

	shelf, err := h.displayService.GetShelf(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shelf retrieved successfully", shelf)
}

// ListShelves handles listing shelves
func (h *DisplayHandler) ListShelves(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	result, err := h.displayService.ListShelves(c.Request.Context(), paginationFromQuery(c), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Shelves retrieved successfully", result)
}

// PlaceOnShelf handles placing a product on a shelf
func (h *DisplayHandler) PlaceOnShelf(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid shelf ID")
		return
	}

	var req request.PlaceOnShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	placement, err := h.displayService.PlaceOnShelf(c.Request.Context(), req.ProductID, id, req.Quantity, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product placed on shelf successfully", placement)
}

// AdjustQuantity handles setting a placement to a new quantity
func (h *DisplayHandler) AdjustQuantity(c *gin.Context) {
	placementID, ok := parseIDParam(c, "placementId")
	if !ok {
		response.BadRequest(c, "Invalid placement ID")
		return
	}

	var req request.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	placement, err := h.displayService.AdjustQuantity(c.Request.Context(), placementID, req.Quantity, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Placement adjusted successfully", placement)
}

// ReduceQuantity handles returning part of a placement to inventory
func (h *DisplayHandler) ReduceQuantity(c *gin.Context) {
	placementID, ok := parseIDParam(c, "placementId")
	if !ok {
		response.BadRequest(c, "Invalid placement ID")
		return
	}

	var req request.ReduceQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.displayService.ReduceQuantity(c.Request.Context(), placementID, req.Quantity, req.Note); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Placement reduced successfully", nil)
}

// RemoveFromShelf handles removing a placement entirely
func (h *DisplayHandler) RemoveFromShelf(c *gin.Context) {
	placementID, ok := parseIDParam(c, "placementId")
	if !ok {
		response.BadRequest(c, "Invalid placement ID")
		return
	}

	var req request.RemoveNoteRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.displayService.RemoveFromShelf(c.Request.Context(), placementID, req.Note); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Move handles moving a placement to another shelf
func (h *DisplayHandler) Move(c *gin.Context) {
	placementID, ok := parseIDParam(c, "placementId")
	if !ok {
		response.BadRequest(c, "Invalid placement ID")
		return
	}

	var req request.MoveBetweenShelvesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	placement, err := h.displayService.MoveBetweenShelves(c.Request.Context(), placementID, req.TargetShelfID, req.Quantity, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Placement moved successfully", placement)
}

// DeactivateShelf handles emptying and deactivating a shelf
func (h *DisplayHandler) DeactivateShelf(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid shelf ID")
		return
	}

	var req request.RemoveNoteRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.displayService.DeactivateShelf(c.Request.Context(), id, req.Note); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shelf deactivated successfully", nil)
}

// ListShelfLogs handles listing the audit trail of a shelf
func (h *DisplayHandler) ListShelfLogs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid shelf ID")
		return
	}

	result, err := h.displayService.ListShelfLogs(c.Request.Context(), id, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Display logs retrieved successfully", result)
}

// ListProductLogs handles listing a product's display audit trail
func (h *DisplayHandler) ListProductLogs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.displayService.ListProductLogs(c.Request.Context(), id, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Display logs retrieved successfully", result)
}
