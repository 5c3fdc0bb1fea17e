package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"findahand_backend/internal/logger"
	"findahand_backend/internal/models"
	"findahand_backend/internal/repositories"
	"findahand_backend/internal/services/dto"
	"findahand_backend/pkg/apperrors"
)

// ReviewService creates customer reviews and serves the public review
// listing. The stored aggregate on the handyman is recomputed inside the
// same transaction as the insert, so the create response already carries
// the new mean.
type ReviewService interface {
	AddReview(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*dto.CreateReviewResponse, error)
	ListForHandyman(db *gorm.DB, handymanID string) (*dto.HandymanReviewsResponse, error)
}

type ReviewServiceImpl struct {
	reviewRepo   repositories.ReviewRepository
	handymanRepo repositories.HandymanRepository
	userRepo     repositories.UserRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, handymanRepo repositories.HandymanRepository, userRepo repositories.UserRepository) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:   reviewRepo,
		handymanRepo: handymanRepo,
		userRepo:     userRepo,
	}
}

func (s *ReviewServiceImpl) AddReview(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*dto.CreateReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}
	if !isValidID(req.HandymanID) {
		return nil, apperrors.ErrHandymanNotFound
	}

	handyman, err := s.handymanRepo.FindByID(db, req.HandymanID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrHandymanNotFound) {
			return nil, apperrors.ErrHandymanNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	reviewer, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	review := &models.Review{
		HandymanID: handyman.ID,
		UserID:     reviewer.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.reviewRepo.CreateReview(db, review); err != nil {
		if apperrors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrDuplicateReview
		}
		if apperrors.Is(err, repositories.ErrHandymanNotFound) {
			return nil, apperrors.ErrHandymanNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	rating, err := s.reviewRepo.CalculateRating(db, handyman.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.reviewRepo.CountByHandyman(db, handyman.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "review created",
		"review_id", review.ID,
		"handyman_id", handyman.ID,
		"rating", review.Rating,
	)

	review.User = reviewer
	return &dto.CreateReviewResponse{
		Review:        toReviewView(review),
		AverageRating: rating,
		TotalReviews:  total,
	}, nil
}

func (s *ReviewServiceImpl) ListForHandyman(db *gorm.DB, handymanID string) (*dto.HandymanReviewsResponse, error) {
	if !isValidID(handymanID) {
		return nil, apperrors.ErrHandymanNotFound
	}

	handyman, err := s.handymanRepo.FindByID(db, handymanID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrHandymanNotFound) {
			return nil, apperrors.ErrHandymanNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	reviews, err := s.reviewRepo.FindByHandyman(db, handyman.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.reviewRepo.CountByHandyman(db, handyman.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.HandymanReviewsResponse{
		Reviews:       toReviewViews(reviews),
		AverageRating: handyman.Rating,
		TotalReviews:  total,
	}, nil
}

func toReviewView(review *models.Review) dto.ReviewView {
	view := dto.ReviewView{
		ID:        review.ID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	}
	if review.User != nil {
		view.ReviewerName = review.User.DisplayName()
	}
	return view
}

func toReviewViews(reviews []models.Review) []dto.ReviewView {
	views := make([]dto.ReviewView, 0, len(reviews))
	for i := range reviews {
		views = append(views, toReviewView(&reviews[i]))
	}
	return views
}
