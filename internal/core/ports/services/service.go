package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth        AuthSvcFacade
	Employee    EmployeeSvcFacade
	Product     ProductSvcFacade
	Achievement AchievementSvcFacade
	Purchase    PurchaseSvcFacade
	History     HistorySvcFacade
	Invitation  InvitationSvcFacade
}

// EventBroadcaster pushes ledger events to connected dashboard clients.
// The websocket hub implements it; services call it after a successful
// commit, never inside the transaction.
type EventBroadcaster interface {
	BroadcastEvent(eventType string, payload any)
}
