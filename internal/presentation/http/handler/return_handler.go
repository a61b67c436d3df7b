package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/application/service"
	"github.com/ngocanhdo/bookstore-api/internal/domain/enum"
	domainRepo "github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/dto/request"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/dto/response"
)

// ReturnHandler handles return/exchange HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

func returnDetailInput(req *request.ReturnDetailRequest) service.ReturnDetailInput {
	return service.ReturnDetailInput{
		ProductID:    req.ProductID,
		NewProductID: req.NewProductID,
		Type:         enum.ReturnType(req.Type),
		Quantity:     req.Quantity,
		RefundAmount: req.RefundAmount,
		Reason:       req.Reason,
	}
}

// Create handles opening a return order
func (h *ReturnHandler) Create(c *gin.Context) {
	var req request.CreateReturnOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateReturnOrderInput{
		TransactionID: req.TransactionID,
		CustomerID:    req.CustomerID,
		Note:          req.Note,
	}
	for i := range req.Details {
		input.Details = append(input.Details, returnDetailInput(&req.Details[i]))
	}

	order, err := h.returnService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return order created successfully", order)
}

// AddDetail handles appending a line to a return order
func (h *ReturnHandler) AddDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return order ID")
		return
	}

	var req request.ReturnDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := returnDetailInput(&req)
	detail, err := h.returnService.AddDetail(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return line added successfully", detail)
}

// UpdateDetail handles editing a return line
func (h *ReturnHandler) UpdateDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return order ID")
		return
	}
	detailID, ok := parseIDParam(c, "detailId")
	if !ok {
		response.BadRequest(c, "Invalid detail ID")
		return
	}

	var req request.UpdateReturnDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.returnService.UpdateDetail(c.Request.Context(), id, detailID, &service.UpdateReturnDetailInput{
		Quantity:     req.Quantity,
		RefundAmount: req.RefundAmount,
		Reason:       req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return line updated successfully", detail)
}

// DeleteDetail handles removing a return line
func (h *ReturnHandler) DeleteDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return order ID")
		return
	}
	detailID, ok := parseIDParam(c, "detailId")
	if !ok {
		response.BadRequest(c, "Invalid detail ID")
		return
	}

	if err := h.returnService.DeleteDetail(c.Request.Context(), id, detailID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Approve handles approving a return order
func (h *ReturnHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return order ID")
		return
	}

	order, err := h.returnService.Approve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return order approved successfully", order)
}

// Reject handles rejecting a return order
func (h *ReturnHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return order ID")
		return
	}

	var req request.RejectReturnOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.returnService.Reject(c.Request.Context(), id, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return order rejected successfully", order)
}

// Get handles retrieving one return order
func (h *ReturnHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return order ID")
		return
	}

	order, err := h.returnService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return order retrieved successfully", order)
}

// List handles listing return orders
func (h *ReturnHandler) List(c *gin.Context) {
	var req request.ReturnOrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &domainRepo.ReturnOrderFilterParams{
		Pagination: paginationFromQuery(c),
	}
	if req.Status != nil {
		status := enum.ReturnStatus(*req.Status)
		params.Status = &status
	}
	if req.CustomerID != "" {
		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &customerID
	}

	result, err := h.returnService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Return orders retrieved successfully", result)
}
