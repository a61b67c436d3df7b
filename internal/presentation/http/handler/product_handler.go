package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/application/service"
	domainRepo "github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/dto/request"
	"github.com/ngocanhdo/bookstore-api/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	ledger         *service.InventoryLedger
	ledgerLogs     domainRepo.InventoryLogRepository
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	productService *service.ProductService,
	ledger *service.InventoryLedger,
	ledgerLogs domainRepo.InventoryLogRepository,
) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		ledger:         ledger,
		ledgerLogs:     ledgerLogs,
	}
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &service.CreateProductInput{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Author:        req.Author,
		Publisher:     req.Publisher,
		SellingPrice:  req.SellingPrice,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles retrieving one product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &service.UpdateProductInput{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Author:       req.Author,
		Publisher:    req.Publisher,
		SellingPrice: req.SellingPrice,
		IsActive:     req.IsActive,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var req request.ProductFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &domainRepo.ProductFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     req.Search,
		ActiveOnly: req.ActiveOnly,
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		params.CategoryID = &categoryID
	}

	result, err := h.productService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// ReceiveStock handles recording newly received units
func (h *ProductHandler) ReceiveStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	inventory, err := h.productService.ReceiveStock(c.Request.Context(), &service.ReceiveStockInput{
		ProductID: id,
		Quantity:  req.Quantity,
		CostPrice: req.CostPrice,
		Note:      req.Note,
	}, h.ledger)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock received successfully", inventory)
}

// ListInventoryLogs handles listing the stock audit trail of a product
func (h *ProductHandler) ListInventoryLogs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	params := paginationFromQuery(c)
	logs, total, err := h.ledgerLogs.ListByProduct(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory logs retrieved successfully", gin.H{
		"logs":  logs,
		"total": total,
	})
}

// CreateCategory handles category creation
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.productService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		Name:           req.Name,
		TaxRatePercent: req.TaxRatePercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// ListCategories handles listing categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	result, err := h.productService.ListCategories(c.Request.Context(), paginationFromQuery(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Categories retrieved successfully", result)
}
