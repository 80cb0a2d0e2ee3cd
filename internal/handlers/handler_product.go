package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// productHandler handles HTTP requests related to the reward catalog.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(productService portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: productService}
}

// registerProductRoutes wires product routes into the authed v1 group.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade, adminOnly gin.HandlerFunc) {
	h := newProductHandler(productService)
	products := rg.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/:productID", h.getProduct)
	products.POST("", adminOnly, h.createProduct)
	products.PATCH("/:productID", adminOnly, h.updateProduct)
	products.PATCH("/:productID/archive", adminOnly, h.archiveProduct)
	products.DELETE("/:productID", adminOnly, h.deleteProduct)
}

// listProducts godoc
// @Summary List catalog products
// @Description Retrieves products ordered by name. Archived products appear only with includeArchived=true.
// @Tags products
// @Produce json
// @Param includeArchived query bool false "Include archived products"
// @Param search query string false "Filter by name"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ProductResponse
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	includeArchived := c.Query("includeArchived") == "true"
	search := c.Query("search")
	limit, offset := parsePageQuery(c)

	products, err := h.productService.ListProducts(c.Request.Context(), includeArchived, search, limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param productID path int true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, logger, err, "Failed to load product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// createProduct godoc
// @Summary Create a product
// @Description Adds a product to the reward catalog. Admin only.
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update a product
// @Description Updates catalog fields of a product. Admin only.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path int true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID} [patch]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// archiveProduct godoc
// @Summary Archive or unarchive a product
// @Description Toggles catalog visibility without deleting purchase history. Admin only.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path int true "Product ID"
// @Param archive body dto.ArchiveProductRequest true "Archive flag"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID}/archive [patch]
func (h *productHandler) archiveProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	var req dto.ArchiveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for archiveProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.productService.ArchiveProduct(c.Request.Context(), productID, *req.Archived)
	if err != nil {
		respondError(c, logger, err, "Failed to archive product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deleteProduct godoc
// @Summary Delete a product
// @Description Removes a product that has never been purchased. Admin only.
// @Tags products
// @Produce json
// @Param productID path int true "Product ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Product has purchases"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{productID} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		respondError(c, logger, err, "Failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}
