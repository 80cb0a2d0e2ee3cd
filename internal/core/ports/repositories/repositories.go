package repositories

// RepositoryContainer aggregates all repository facades for wiring.
type RepositoryContainer struct {
	Employee    EmployeeRepositoryFacade
	Product     ProductRepositoryFacade
	Purchase    PurchaseRepositoryWithTx
	Achievement AchievementRepositoryWithTx
	History     HistoryRepositoryFacade
	Invitation  InvitationCodeRepository
}
