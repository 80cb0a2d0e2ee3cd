package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// historyHandler handles HTTP requests over the audit trail.
type historyHandler struct {
	historyService portssvc.HistorySvcFacade
}

func newHistoryHandler(historyService portssvc.HistorySvcFacade) *historyHandler {
	return &historyHandler{historyService: historyService}
}

// registerHistoryRoutes wires history routes into the authed v1 group.
func registerHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade, adminOrHR gin.HandlerFunc) {
	h := newHistoryHandler(historyService)
	history := rg.Group("/history")
	history.GET("", adminOrHR, h.listHistory)
	history.GET("/mine", h.listMyHistory)
}

// listHistory godoc
// @Summary List audit records
// @Description Retrieves audit records with optional filters, newest first. Admin and HR only.
// @Tags history
// @Produce json
// @Param employeeID query int false "Filter by employee"
// @Param type query string false "Filter by type (purchase or claim)"
// @Param action query string false "Filter by action (created, approved, rejected, claimed)"
// @Param from query string false "RFC3339 lower bound on created time"
// @Param to query string false "RFC3339 upper bound on created time"
// @Param search query string false "Substring match on details or employee name"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.HistoryResponse
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /history [get]
func (h *historyHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter := domain.HistoryFilter{Search: c.Query("search")}
	filter.Limit, filter.Offset = parsePageQuery(c)

	if v := c.Query("employeeID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employeeID"})
			return
		}
		filter.EmployeeID = &id
	}
	if v := c.Query("type"); v != "" {
		t := domain.HistoryType(v)
		if t != domain.HistoryTypePurchase && t != domain.HistoryTypeClaim {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
			return
		}
		filter.Type = &t
	}
	if v := c.Query("action"); v != "" {
		a := domain.HistoryAction(v)
		switch a {
		case domain.HistoryActionCreated, domain.HistoryActionApproved, domain.HistoryActionRejected, domain.HistoryActionClaimed:
			filter.Action = &a
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from timestamp"})
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to timestamp"})
			return
		}
		filter.To = &t
	}

	records, err := h.historyService.ListHistory(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryResponses(records))
}

// listMyHistory godoc
// @Summary List the caller's audit records
// @Description Retrieves the caller's own audit records, newest first.
// @Tags history
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.HistoryResponse
// @Router /history/mine [get]
func (h *historyHandler) listMyHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeID, _ := middleware.GetEmployeeIDFromContext(c)
	limit, offset := parsePageQuery(c)

	records, err := h.historyService.ListMyHistory(c.Request.Context(), employeeID, limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryResponses(records))
}
