package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// purchaseHandler handles HTTP requests for the purchase lifecycle.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(purchaseService portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: purchaseService}
}

// registerPurchaseRoutes wires purchase routes into the authed v1 group.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade, adminOnly, adminOrHR gin.HandlerFunc) {
	h := newPurchaseHandler(purchaseService)
	purchases := rg.Group("/purchases")
	purchases.POST("", h.createPurchase)
	purchases.GET("/mine", h.listMyPurchases)
	purchases.GET("/pending", adminOrHR, h.listPendingPurchases)
	purchases.GET("/:purchaseID", h.getPurchase)
	purchases.POST("/:purchaseID/approve", adminOnly, h.approvePurchase)
	purchases.POST("/:purchaseID/reject", adminOnly, h.rejectPurchase)
}

// createPurchase godoc
// @Summary Create a purchase
// @Description Spends diamonds on a product. The debit, stock decrement, pending purchase and audit record commit atomically.
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Product and quantity"
// @Success 201 {object} dto.CreatePurchaseResponse
// @Failure 400 {object} map[string]string "Insufficient stock or balance"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		logger.Error("Employee ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	purchase, newBalance, err := h.purchaseService.CreatePurchase(c.Request.Context(), employeeID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, logger, err, "Failed to create purchase")
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePurchaseResponse{
		Purchase:   dto.ToPurchaseResponse(purchase),
		NewBalance: newBalance,
	})
}

// listMyPurchases godoc
// @Summary List the caller's purchases
// @Description Retrieves the caller's purchases, newest first.
// @Tags purchases
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.PurchaseResponse
// @Router /purchases/mine [get]
func (h *purchaseHandler) listMyPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeID, _ := middleware.GetEmployeeIDFromContext(c)
	limit, offset := parsePageQuery(c)

	purchases, err := h.purchaseService.ListMyPurchases(c.Request.Context(), employeeID, limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponses(purchases))
}

// getPurchase godoc
// @Summary Get a purchase
// @Description Retrieves one purchase. Employees see only their own; admin and HR see any.
// @Tags purchases
// @Produce json
// @Param purchaseID path int true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Purchase not found"
// @Router /purchases/{purchaseID} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	purchaseID, ok := parseIDParam(c, "purchaseID")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), purchaseID)
	if err != nil {
		respondError(c, logger, err, "Failed to load purchase")
		return
	}

	callerID, _ := middleware.GetEmployeeIDFromContext(c)
	callerRole, _ := middleware.GetEmployeeRoleFromContext(c)
	if purchase.EmployeeID != callerID && !callerRole.CanManageProgress() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// listPendingPurchases godoc
// @Summary List pending purchases
// @Description Retrieves the approval queue, oldest first. Admin and HR only.
// @Tags purchases
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.PurchaseResponse
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /purchases/pending [get]
func (h *purchaseHandler) listPendingPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset := parsePageQuery(c)
	purchases, err := h.purchaseService.ListPendingPurchases(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list pending purchases")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponses(purchases))
}

// approvePurchase godoc
// @Summary Approve a pending purchase
// @Description Finalizes a pending purchase. The diamonds were debited at creation, so no balance moves. Admin only.
// @Tags purchases
// @Produce json
// @Param purchaseID path int true "Purchase ID"
// @Success 200 {object} dto.ApprovePurchaseResponse
// @Failure 400 {object} map[string]string "Purchase has already been decided"
// @Failure 404 {object} map[string]string "Purchase not found"
// @Router /purchases/{purchaseID}/approve [post]
func (h *purchaseHandler) approvePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	purchaseID, ok := parseIDParam(c, "purchaseID")
	if !ok {
		return
	}
	adminID, _ := middleware.GetEmployeeIDFromContext(c)

	purchase, err := h.purchaseService.ApprovePurchase(c.Request.Context(), purchaseID, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to approve purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ApprovePurchaseResponse{
		PurchaseID: purchase.ID,
		Status:     string(purchase.Status),
	})
}

// rejectPurchase godoc
// @Summary Reject a pending purchase
// @Description Rejects a pending purchase with a mandatory reason; the full cost is refunded and stock restored atomically. Admin only.
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchaseID path int true "Purchase ID"
// @Param rejection body dto.RejectPurchaseRequest true "Rejection reason"
// @Success 200 {object} dto.RejectPurchaseResponse
// @Failure 400 {object} map[string]string "Missing reason or purchase already decided"
// @Failure 404 {object} map[string]string "Purchase not found"
// @Router /purchases/{purchaseID}/reject [post]
func (h *purchaseHandler) rejectPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	purchaseID, ok := parseIDParam(c, "purchaseID")
	if !ok {
		return
	}
	adminID, _ := middleware.GetEmployeeIDFromContext(c)

	var req dto.RejectPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for rejectPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
		return
	}

	purchase, newBalance, err := h.purchaseService.RejectPurchase(c.Request.Context(), purchaseID, adminID, req.Reason)
	if err != nil {
		respondError(c, logger, err, "Failed to reject purchase")
		return
	}

	c.JSON(http.StatusOK, dto.RejectPurchaseResponse{
		PurchaseID:     purchase.ID,
		RefundedAmount: purchase.DiamondCost,
		NewBalance:     newBalance,
	})
}
