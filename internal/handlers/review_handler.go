package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"findahand_backend/internal/middleware"
	"findahand_backend/internal/models"
	"findahand_backend/internal/services"
	"findahand_backend/internal/services/dto"
)

// ReviewHandler serves review creation and the public review listing. The
// write endpoint lives under /handymen/reviews and the public read under
// /customers/reviews, matching the paths the frontend already calls.
type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	protected := r.Group("/handymen/reviews")
	protected.Use(authMW, middleware.RoleMiddleware(models.RoleCustomer))
	{
		protected.POST("", h.CreateReview)
	}

	public := r.Group("/customers/reviews")
	{
		public.GET("/:handymanId", h.GetHandymanReviews)
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.reviewService.AddReview(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) GetHandymanReviews(c *gin.Context) {
	resp, err := h.reviewService.ListForHandyman(h.GetDB(c), c.Param("handymanId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
