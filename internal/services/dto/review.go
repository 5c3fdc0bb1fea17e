package dto

// CreateReviewRequest is a customer review submission.
type CreateReviewRequest struct {
	HandymanID string `json:"handymanId" validate:"required"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment" validate:"required"`
}

// CreateReviewResponse returns the stored review together with the
// recomputed aggregate.
type CreateReviewResponse struct {
	Review        ReviewView `json:"review"`
	AverageRating float64    `json:"averageRating"`
	TotalReviews  int64      `json:"totalReviews"`
}

// HandymanReviewsResponse is the public review listing for one handyman.
type HandymanReviewsResponse struct {
	Reviews       []ReviewView `json:"reviews"`
	AverageRating float64      `json:"averageRating"`
	TotalReviews  int64        `json:"totalReviews"`
}
