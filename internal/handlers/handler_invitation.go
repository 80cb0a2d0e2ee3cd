package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// invitationHandler handles invitation code management. Admin only.
type invitationHandler struct {
	invitationService portssvc.InvitationSvcFacade
}

func newInvitationHandler(invitationService portssvc.InvitationSvcFacade) *invitationHandler {
	return &invitationHandler{invitationService: invitationService}
}

// registerInvitationRoutes wires invitation routes into the authed v1 group.
func registerInvitationRoutes(rg *gin.RouterGroup, invitationService portssvc.InvitationSvcFacade, adminOnly gin.HandlerFunc) {
	h := newInvitationHandler(invitationService)
	invitations := rg.Group("/invitations", adminOnly)
	invitations.POST("", h.createInvitation)
	invitations.GET("", h.listInvitations)
	invitations.PATCH("/:invitationID/active", h.setActive)
}

// createInvitation godoc
// @Summary Create an invitation code
// @Description Generates a new random registration code. Admin only.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation body dto.CreateInvitationRequest true "Optional label"
// @Success 201 {object} dto.InvitationResponse
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /invitations [post]
func (h *invitationHandler) createInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createInvitation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	adminID, _ := middleware.GetEmployeeIDFromContext(c)
	code, err := h.invitationService.CreateInvitationCode(c.Request.Context(), adminID, req.Label)
	if err != nil {
		respondError(c, logger, err, "Failed to create invitation code")
		return
	}

	c.JSON(http.StatusCreated, dto.InvitationResponse{
		ID:        code.ID,
		Code:      code.Code,
		Label:     code.Label,
		IsActive:  code.IsActive,
		CreatedAt: code.CreatedAt,
	})
}

// listInvitations godoc
// @Summary List invitation codes
// @Description Retrieves all codes with creator names and usage counts. Admin only.
// @Tags invitations
// @Produce json
// @Success 200 {array} dto.InvitationResponse
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /invitations [get]
func (h *invitationHandler) listInvitations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	codes, err := h.invitationService.ListInvitationCodes(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list invitation codes")
		return
	}

	responses := make([]dto.InvitationResponse, len(codes))
	for i := range codes {
		responses[i] = dto.ToInvitationResponse(&codes[i])
	}
	c.JSON(http.StatusOK, responses)
}

// setActive godoc
// @Summary Enable or disable an invitation code
// @Description Toggles whether a code can be used for registration. Admin only.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitationID path int true "Invitation code ID"
// @Param active body dto.SetInvitationActiveRequest true "Active flag"
// @Success 204 "Updated"
// @Failure 404 {object} map[string]string "Invitation code not found"
// @Router /invitations/{invitationID}/active [patch]
func (h *invitationHandler) setActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invitationID, ok := parseIDParam(c, "invitationID")
	if !ok {
		return
	}

	var req dto.SetInvitationActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setActive", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.invitationService.SetInvitationActive(c.Request.Context(), invitationID, *req.Active); err != nil {
		respondError(c, logger, err, "Failed to update invitation code")
		return
	}

	c.Status(http.StatusNoContent)
}
