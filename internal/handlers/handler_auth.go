package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// authHandler handles registration and login.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(authService portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: authService}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)
	auth := r.Group("/api/v1/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
}

// register godoc
// @Summary Register a new employee account
// @Description Creates an employee account gated by an active invitation code and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid request or invitation code"
// @Failure 409 {object} map[string]string "Email or employee ID already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	employee, token, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register")
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token:    token,
		Employee: dto.ToEmployeeResponse(employee),
	})
}

// login godoc
// @Summary Log in with email and password
// @Description Verifies credentials and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	employee, token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:    token,
		Employee: dto.ToEmployeeResponse(employee),
	})
}

// meHandler serves the authenticated employee's own profile.
type meHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// registerMeRoutes registers the /auth/me route inside the authed group.
func registerMeRoutes(rg *gin.RouterGroup, _ portssvc.AuthSvcFacade, employeeService portssvc.EmployeeSvcFacade) {
	h := &meHandler{employeeService: employeeService}
	rg.GET("/auth/me", h.me)
}

// me godoc
// @Summary Get the authenticated employee
// @Description Returns the profile and diamond balance of the caller
// @Tags auth
// @Produce json
// @Success 200 {object} dto.EmployeeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/me [get]
func (h *meHandler) me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employeeID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		logger.Error("Employee ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, logger, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}
