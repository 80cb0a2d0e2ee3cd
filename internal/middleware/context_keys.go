package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/perkvault/rewards_backend/internal/core/domain"
)

// employeeIDKey is the key used to store the authenticated employee's ID.
const employeeIDKey = contextKey("employeeID")

// employeeRoleKey is the key used to store the authenticated employee's role.
const employeeRoleKey = contextKey("employeeRole")

// GetEmployeeIDFromContext retrieves the authenticated employee ID from the
// Gin context. It returns the ID and a boolean indicating if it was found.
func GetEmployeeIDFromContext(c *gin.Context) (int64, bool) {
	val := c.Request.Context().Value(employeeIDKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}

// GetEmployeeRoleFromContext retrieves the authenticated employee's role
// from the Gin context.
func GetEmployeeRoleFromContext(c *gin.Context) (domain.Role, bool) {
	val := c.Request.Context().Value(employeeRoleKey)
	if val == nil {
		return "", false
	}
	role, ok := val.(domain.Role)
	return role, ok
}
