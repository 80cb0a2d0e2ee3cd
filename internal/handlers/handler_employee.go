package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/dto"
	"github.com/perkvault/rewards_backend/internal/middleware"
)

// employeeHandler handles HTTP requests related to employees.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func newEmployeeHandler(employeeService portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{employeeService: employeeService}
}

// registerEmployeeRoutes wires employee routes into the authed v1 group.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade, adminOnly, adminOrHR gin.HandlerFunc) {
	h := newEmployeeHandler(employeeService)
	employees := rg.Group("/employees")
	employees.GET("", adminOrHR, h.listEmployees)
	employees.GET("/:employeeID", h.getEmployee)
	employees.PATCH("/:employeeID", h.updateEmployee)
	employees.PATCH("/:employeeID/role", adminOnly, h.updateRole)
	employees.DELETE("/:employeeID", adminOnly, h.deleteEmployee)
}

// listEmployees godoc
// @Summary List employees
// @Description Retrieves employees ordered by name. Admin and HR only.
// @Tags employees
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.EmployeeResponse
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset := parsePageQuery(c)
	employees, err := h.employeeService.ListEmployees(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list employees")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponses(employees))
}

// getEmployee godoc
// @Summary Get an employee
// @Description Retrieves one employee. Employees can read themselves; admin and HR can read anyone.
// @Tags employees
// @Produce json
// @Param employeeID path int true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /employees/{employeeID} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	targetID, ok := parseIDParam(c, "employeeID")
	if !ok {
		return
	}
	if !h.canAccess(c, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, logger, err, "Failed to load employee")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateEmployee godoc
// @Summary Update an employee profile
// @Description Updates profile fields. Employees can update themselves; admin can update anyone.
// @Tags employees
// @Accept json
// @Produce json
// @Param employeeID path int true "Employee ID"
// @Param profile body dto.UpdateEmployeeRequest true "Profile fields"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /employees/{employeeID} [patch]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	targetID, ok := parseIDParam(c, "employeeID")
	if !ok {
		return
	}
	callerID, _ := middleware.GetEmployeeIDFromContext(c)
	callerRole, _ := middleware.GetEmployeeRoleFromContext(c)
	if callerID != targetID && callerRole != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), targetID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateRole godoc
// @Summary Change an employee's role
// @Description Sets the role to user, hr or admin. Admin only.
// @Tags employees
// @Accept json
// @Produce json
// @Param employeeID path int true "Employee ID"
// @Param role body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /employees/{employeeID}/role [patch]
func (h *employeeHandler) updateRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	targetID, ok := parseIDParam(c, "employeeID")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	employee, err := h.employeeService.UpdateEmployeeRole(c.Request.Context(), targetID, domain.Role(req.Role))
	if err != nil {
		respondError(c, logger, err, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deleteEmployee godoc
// @Summary Delete an employee
// @Description Removes an employee account. Admin only.
// @Tags employees
// @Produce json
// @Param employeeID path int true "Employee ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /employees/{employeeID} [delete]
func (h *employeeHandler) deleteEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	targetID, ok := parseIDParam(c, "employeeID")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), targetID); err != nil {
		respondError(c, logger, err, "Failed to delete employee")
		return
	}

	c.Status(http.StatusNoContent)
}

// canAccess reports whether the caller may read the target employee.
func (h *employeeHandler) canAccess(c *gin.Context, targetID int64) bool {
	callerID, _ := middleware.GetEmployeeIDFromContext(c)
	if callerID == targetID {
		return true
	}
	role, _ := middleware.GetEmployeeRoleFromContext(c)
	return role.CanManageProgress()
}
