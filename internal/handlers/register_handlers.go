package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/perkvault/rewards_backend/cmd/docs"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/middleware"
	"github.com/perkvault/rewards_backend/internal/platform/config"
	"github.com/perkvault/rewards_backend/internal/websocket"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *websocket.Hub,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.Auth)

	// Live ledger events for admin/HR dashboards; authenticates via token
	// query parameter since browsers cannot set headers on WS upgrades.
	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, c, cfg.JWTSecret)
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	adminOrHR := middleware.RequireRole(domain.RoleAdmin, domain.RoleHR)

	registerMeRoutes(v1, services.Auth, services.Employee)
	registerEmployeeRoutes(v1, services.Employee, adminOnly, adminOrHR)
	registerProductRoutes(v1, services.Product, adminOnly)
	registerAchievementRoutes(v1, services.Achievement, adminOnly, adminOrHR)
	registerPurchaseRoutes(v1, services.Purchase, adminOnly, adminOrHR)
	registerHistoryRoutes(v1, services.History, adminOrHR)
	registerInvitationRoutes(v1, services.Invitation, adminOnly)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
