package handlers

// AppHandlers holds all application handlers.
type AppHandlers struct {
	UserHandler     *UserHandler
	HandymanHandler *HandymanHandler
	BookingHandler  *BookingHandler
	ReviewHandler   *ReviewHandler
}
