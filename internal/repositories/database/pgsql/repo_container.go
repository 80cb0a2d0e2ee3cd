package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/perkvault/rewards_backend/internal/core/ports/repositories"
)

func NewRepositoryContainer(dbPool *pgxpool.Pool) portsrepo.RepositoryContainer {
	employeeRepo := newPgxEmployeeRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	historyRepo := newPgxHistoryRepository(dbPool)
	purchaseRepo := newPgxPurchaseRepository(dbPool, employeeRepo, productRepo, historyRepo)
	achievementRepo := newPgxAchievementRepository(dbPool, employeeRepo, historyRepo)
	invitationRepo := newPgxInvitationRepository(dbPool)

	return portsrepo.RepositoryContainer{
		Employee:    employeeRepo,
		Product:     productRepo,
		Purchase:    purchaseRepo,
		Achievement: achievementRepo,
		History:     historyRepo,
		Invitation:  invitationRepo,
	}
}
