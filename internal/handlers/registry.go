package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AccountHandler *AccountHandler
	UserHandler    *UserHandler
	HealthHandler  *HealthHandler
}
