package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// achievementHandler handles HTTP requests related to achievements,
// progress tracking and reward claims.
type achievementHandler struct {
	achievementService portssvc.AchievementSvcFacade
}

func newAchievementHandler(achievementService portssvc.AchievementSvcFacade) *achievementHandler {
	return &achievementHandler{achievementService: achievementService}
}

// registerAchievementRoutes wires achievement routes into the authed v1 group.
func registerAchievementRoutes(rg *gin.RouterGroup, achievementService portssvc.AchievementSvcFacade, adminOnly, adminOrHR gin.HandlerFunc) {
	h := newAchievementHandler(achievementService)
	achievements := rg.Group("/achievements")
	achievements.GET("", h.listAchievements)
	achievements.GET("/:achievementID", h.getAchievement)
	achievements.POST("", adminOnly, h.createAchievement)
	achievements.PATCH("/:achievementID", adminOnly, h.updateAchievement)
	achievements.DELETE("/:achievementID", adminOnly, h.deleteAchievement)
	achievements.PUT("/:achievementID/progress", adminOrHR, h.updateProgress)
	achievements.POST("/:achievementID/claim", h.claimReward)
}

// listAchievements godoc
// @Summary List achievements
// @Description Retrieves achievements with the caller's progress and the derived upcoming/ongoing/expired status.
// @Tags achievements
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.AchievementResponse
// @Router /achievements [get]
func (h *achievementHandler) listAchievements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeID, _ := middleware.GetEmployeeIDFromContext(c)
	limit, offset := parsePageQuery(c)

	achievements, progressByID, err := h.achievementService.ListAchievements(c.Request.Context(), employeeID, limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list achievements")
		return
	}

	now := time.Now().UTC()
	responses := make([]dto.AchievementResponse, len(achievements))
	for i := range achievements {
		var progress *dto.ProgressResponse
		if p, ok := progressByID[achievements[i].ID]; ok {
			pr := dto.ToProgressResponse(&p)
			progress = &pr
		}
		resp := dto.ToAchievementResponse(&achievements[i], nil, now)
		resp.Progress = progress
		responses[i] = resp
	}

	c.JSON(http.StatusOK, responses)
}

// getAchievement godoc
// @Summary Get an achievement
// @Description Retrieves one achievement with the caller's progress.
// @Tags achievements
// @Produce json
// @Param achievementID path int true "Achievement ID"
// @Success 200 {object} dto.AchievementResponse
// @Failure 404 {object} map[string]string "Achievement not found"
// @Router /achievements/{achievementID} [get]
func (h *achievementHandler) getAchievement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	achievementID, ok := parseIDParam(c, "achievementID")
	if !ok {
		return
	}
	employeeID, _ := middleware.GetEmployeeIDFromContext(c)

	achievement, progress, err := h.achievementService.GetAchievementByID(c.Request.Context(), achievementID, employeeID)
	if err != nil {
		respondError(c, logger, err, "Failed to load achievement")
		return
	}

	c.JSON(http.StatusOK, dto.ToAchievementResponse(achievement, progress, time.Now().UTC()))
}

// createAchievement godoc
// @Summary Create an achievement
// @Description Defines a new achievement with a diamond reward and active window. Admin only.
// @Tags achievements
// @Accept json
// @Produce json
// @Param achievement body dto.CreateAchievementRequest true "Achievement definition"
// @Success 201 {object} dto.AchievementResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /achievements [post]
func (h *achievementHandler) createAchievement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAchievement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, _ := middleware.GetEmployeeIDFromContext(c)
	achievement, err := h.achievementService.CreateAchievement(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create achievement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAchievementResponse(achievement, nil, time.Now().UTC()))
}

// updateAchievement godoc
// @Summary Update an achievement
// @Description Updates achievement definition fields. Admin only.
// @Tags achievements
// @Accept json
// @Produce json
// @Param achievementID path int true "Achievement ID"
// @Param achievement body dto.UpdateAchievementRequest true "Fields to update"
// @Success 200 {object} dto.AchievementResponse
// @Failure 404 {object} map[string]string "Achievement not found"
// @Router /achievements/{achievementID} [patch]
func (h *achievementHandler) updateAchievement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	achievementID, ok := parseIDParam(c, "achievementID")
	if !ok {
		return
	}

	var req dto.UpdateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAchievement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	achievement, err := h.achievementService.UpdateAchievement(c.Request.Context(), achievementID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update achievement")
		return
	}

	c.JSON(http.StatusOK, dto.ToAchievementResponse(achievement, nil, time.Now().UTC()))
}

// deleteAchievement godoc
// @Summary Delete an achievement
// @Description Removes an achievement definition and its progress rows. Admin only.
// @Tags achievements
// @Produce json
// @Param achievementID path int true "Achievement ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Achievement not found"
// @Router /achievements/{achievementID} [delete]
func (h *achievementHandler) deleteAchievement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	achievementID, ok := parseIDParam(c, "achievementID")
	if !ok {
		return
	}

	if err := h.achievementService.DeleteAchievement(c.Request.Context(), achievementID); err != nil {
		respondError(c, logger, err, "Failed to delete achievement")
		return
	}

	c.Status(http.StatusNoContent)
}

// updateProgress godoc
// @Summary Update achievement progress
// @Description Upserts an employee's completion percentage. Admin and HR only; claimed progress is immutable.
// @Tags achievements
// @Accept json
// @Produce json
// @Param achievementID path int true "Achievement ID"
// @Param progress body dto.UpdateProgressRequest true "Progress update"
// @Success 200 {object} dto.ProgressResponse
// @Failure 400 {object} map[string]string "Invalid request or progress already claimed"
// @Failure 404 {object} map[string]string "Achievement not found"
// @Router /achievements/{achievementID}/progress [put]
func (h *achievementHandler) updateProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	achievementID, ok := parseIDParam(c, "achievementID")
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProgress", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	callerID, _ := middleware.GetEmployeeIDFromContext(c)
	callerRole, _ := middleware.GetEmployeeRoleFromContext(c)

	targetID := callerID
	if req.EmployeeID != nil {
		targetID = *req.EmployeeID
	}

	progress, err := h.achievementService.UpdateProgress(c.Request.Context(), callerRole, targetID, achievementID, req.ProgressPercentage)
	if err != nil {
		respondError(c, logger, err, "Failed to update progress")
		return
	}

	c.JSON(http.StatusOK, dto.ToProgressResponse(progress))
}

// claimReward godoc
// @Summary Claim an achievement reward
// @Description Credits the diamond reward for a completed achievement. Fails after the end date, without full progress, or when already claimed.
// @Tags achievements
// @Produce json
// @Param achievementID path int true "Achievement ID"
// @Success 200 {object} dto.ClaimRewardResponse
// @Failure 400 {object} map[string]string "Not eligible to claim"
// @Failure 404 {object} map[string]string "Achievement or progress not found"
// @Router /achievements/{achievementID}/claim [post]
func (h *achievementHandler) claimReward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	achievementID, ok := parseIDParam(c, "achievementID")
	if !ok {
		return
	}
	employeeID, _ := middleware.GetEmployeeIDFromContext(c)

	newBalance, claimedAt, err := h.achievementService.ClaimReward(c.Request.Context(), employeeID, achievementID)
	if err != nil {
		respondError(c, logger, err, "Failed to claim reward")
		return
	}

	c.JSON(http.StatusOK, dto.ClaimRewardResponse{
		Success:    true,
		NewBalance: newBalance,
		ClaimedAt:  claimedAt,
	})
}
