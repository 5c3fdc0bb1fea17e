package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"findahand_backend/internal/models"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this handyman")
)

type ReviewRepository interface {
	// CreateReview inserts the review and recomputes the handyman's
	// aggregate rating in the same transaction.
	CreateReview(db *gorm.DB, review *models.Review) error
	FindByHandyman(db *gorm.DB, handymanID string) ([]models.Review, error)
	CalculateRating(db *gorm.DB, handymanID string) (float64, error)
	CountByHandyman(db *gorm.DB, handymanID string) (int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}

	// Insert and rating recomputation run atomically. The handyman row is
	// locked before the review set is read: under READ COMMITTED a second
	// writer blocks here and takes its AVG snapshot only after the first
	// commit is visible, so the denormalized mean never goes stale.
	return db.Transaction(func(tx *gorm.DB) error {
		var handyman models.Handyman
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&handyman, "id = ?", review.HandymanID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHandymanNotFound
			}
			return err
		}

		var existing models.Review
		err = tx.Where("handyman_id = ? AND user_id = ?", review.HandymanID, review.UserID).
			First(&existing).Error
		if err == nil {
			return ErrReviewAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrReviewAlreadyExists
			}
			return err
		}

		return r.updateHandymanRating(tx, review.HandymanID)
	})
}

func (r *ReviewRepositoryImpl) FindByHandyman(db *gorm.DB, handymanID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("User").
		Where("handyman_id = ?", handymanID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) CalculateRating(db *gorm.DB, handymanID string) (float64, error) {
	var rating float64
	err := db.Model(&models.Review{}).
		Where("handyman_id = ?", handymanID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&rating).Error
	return rating, err
}

func (r *ReviewRepositoryImpl) CountByHandyman(db *gorm.DB, handymanID string) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("handyman_id = ?", handymanID).
		Count(&count).Error
	return count, err
}

func (r *ReviewRepositoryImpl) updateHandymanRating(tx *gorm.DB, handymanID string) error {
	rating, err := r.CalculateRating(tx, handymanID)
	if err != nil {
		return err
	}
	return tx.Model(&models.Handyman{}).
		Where("id = ?", handymanID).
		Update("rating", rating).Error
}
