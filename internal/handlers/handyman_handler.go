package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"findahand_backend/internal/middleware"
	"findahand_backend/internal/models"
	"findahand_backend/internal/services"
	"findahand_backend/internal/services/dto"
	"findahand_backend/pkg/apperrors"
)

// HandymanHandler serves handyman auth, the public directory and the
// authenticated /me surface including assigned bookings.
type HandymanHandler struct {
	*BaseHandler
	handymanService services.HandymanService
	bookingService  services.BookingService
	uploadService   services.UploadService
}

func NewHandymanHandler(base *BaseHandler, handymanService services.HandymanService, bookingService services.BookingService, uploadService services.UploadService) *HandymanHandler {
	return &HandymanHandler{
		BaseHandler:     base,
		handymanService: handymanService,
		bookingService:  bookingService,
		uploadService:   uploadService,
	}
}

func (h *HandymanHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	public := r.Group("/handymen")
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
		public.GET("", h.List)
		public.GET("/:id", h.GetByID)
	}

	me := r.Group("/handymen/me")
	me.Use(authMW, middleware.RoleMiddleware(models.RoleHandyman))
	{
		me.GET("", h.GetProfile)
		me.PUT("", h.UpdateProfile)
		me.PUT("/password", h.UpdatePassword)
		me.PUT("/availability", h.UpdateAvailability)
		me.POST("/portfolio", h.AddPortfolioImage)
		me.GET("/bookings", h.ListBookings)
		me.PUT("/bookings/:id/status", h.UpdateBookingStatus)
		me.DELETE("/bookings/:id", h.DeleteBooking)
	}
}

// Register handles the multipart registration form. The profile image part
// is required and stored before the account is created.
func (h *HandymanHandler) Register(c *gin.Context) {
	var req dto.RegisterHandymanRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	file, err := c.FormFile("profileImage")
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrProfileImageRequired)
		return
	}

	imageURL, err := h.uploadService.SaveProfileImage(c.Request.Context(), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.handymanService.Register(h.GetDB(c), &req, imageURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *HandymanHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.handymanService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HandymanHandler) List(c *gin.Context) {
	handymen, err := h.handymanService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, handymen)
}

func (h *HandymanHandler) GetByID(c *gin.Context) {
	handyman, err := h.handymanService.GetByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, handyman)
}

// --- /me surface ---

func (h *HandymanHandler) GetProfile(c *gin.Context) {
	handymanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.handymanService.GetProfile(h.GetDB(c), handymanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *HandymanHandler) UpdateProfile(c *gin.Context) {
	handymanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateHandymanProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.handymanService.UpdateProfile(h.GetDB(c), handymanID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *HandymanHandler) UpdatePassword(c *gin.Context) {
	handymanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.handymanService.UpdatePassword(h.GetDB(c), handymanID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (h *HandymanHandler) UpdateAvailability(c *gin.Context) {
	handymanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAvailabilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.handymanService.UpdateAvailability(h.GetDB(c), handymanID, *req.Available)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *HandymanHandler) AddPortfolioImage(c *gin.Context) {
	handymanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Image file is required"))
		return
	}

	imageURL, err := h.uploadService.SavePortfolioImage(c.Request.Context(), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	images, err := h.handymanService.AddPortfolioImage(h.GetDB(c), handymanID, imageURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"portfolioImages": images})
}

// --- assigned bookings ---

func (h *HandymanHandler) ListBookings(c *gin.Context) {
	handymanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListForHandyman(h.GetDB(c), handymanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *HandymanHandler) UpdateBookingStatus(c *gin.Context) {
	handymanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), h.GetDB(c), c.Param("id"), handymanID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *HandymanHandler) DeleteBooking(c *gin.Context) {
	handymanID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.bookingService.Delete(h.GetDB(c), c.Param("id"), handymanID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
