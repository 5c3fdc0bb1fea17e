package services

// ServiceContainer holds all application services.
type ServiceContainer struct {
	UserService     UserService
	HandymanService HandymanService
	BookingService  BookingService
	ReviewService   ReviewService
	UploadService   UploadService
}
