package services

import (
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryContainer, broadcaster portssvc.EventBroadcaster) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(cfg, repos.Employee, repos.Invitation)
	container.Employee = NewEmployeeService(repos.Employee)
	container.Product = NewProductService(repos.Product)
	container.Achievement = NewAchievementService(repos.Achievement, broadcaster)
	container.Purchase = NewPurchaseService(repos.Purchase, repos.Employee, broadcaster)
	container.History = NewHistoryService(repos.History)
	container.Invitation = NewInvitationService(repos.Invitation)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PurchaseSvcFacade    = (*purchaseService)(nil)
	_ portssvc.AchievementSvcFacade = (*achievementService)(nil)
)
