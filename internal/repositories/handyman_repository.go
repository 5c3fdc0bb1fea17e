package repositories

import (
	"errors"

	"gorm.io/gorm"

	"findahand_backend/internal/models"
)

var (
	ErrHandymanNotFound      = errors.New("handyman not found")
	ErrHandymanAlreadyExists = errors.New("handyman already exists")
)

type HandymanRepository interface {
	Create(db *gorm.DB, handyman *models.Handyman) error
	FindByID(db *gorm.DB, id string) (*models.Handyman, error)
	FindByIDWithReviews(db *gorm.DB, id string) (*models.Handyman, error)
	FindByEmail(db *gorm.DB, email string) (*models.Handyman, error)
	FindAll(db *gorm.DB) ([]models.Handyman, error)
	CountReviews(db *gorm.DB, handymanIDs []string) (map[string]int64, error)
	Update(db *gorm.DB, handyman *models.Handyman) error
}

type HandymanRepositoryImpl struct{}

func NewHandymanRepository() HandymanRepository {
	return &HandymanRepositoryImpl{}
}

func (r *HandymanRepositoryImpl) Create(db *gorm.DB, handyman *models.Handyman) error {
	var count int64
	if err := db.Model(&models.Handyman{}).Where("email = ?", handyman.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrHandymanAlreadyExists
	}
	// A concurrent insert can slip past the check above; the unique index
	// on email is the backstop.
	if err := db.Create(handyman).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrHandymanAlreadyExists
		}
		return err
	}
	return nil
}

func (r *HandymanRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Handyman, error) {
	var handyman models.Handyman
	err := db.First(&handyman, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHandymanNotFound
		}
		return nil, err
	}
	return &handyman, nil
}

func (r *HandymanRepositoryImpl) FindByIDWithReviews(db *gorm.DB, id string) (*models.Handyman, error) {
	var handyman models.Handyman
	err := db.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at DESC")
		}).
		Preload("Reviews.User").
		First(&handyman, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHandymanNotFound
		}
		return nil, err
	}
	return &handyman, nil
}

func (r *HandymanRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Handyman, error) {
	var handyman models.Handyman
	err := db.First(&handyman, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHandymanNotFound
		}
		return nil, err
	}
	return &handyman, nil
}

func (r *HandymanRepositoryImpl) FindAll(db *gorm.DB) ([]models.Handyman, error) {
	var handymen []models.Handyman
	err := db.Order("created_at DESC").Find(&handymen).Error
	return handymen, err
}

// CountReviews returns review counts keyed by handyman ID.
func (r *HandymanRepositoryImpl) CountReviews(db *gorm.DB, handymanIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(handymanIDs))
	if len(handymanIDs) == 0 {
		return counts, nil
	}

	type row struct {
		HandymanID string
		Count      int64
	}
	var rows []row
	err := db.Model(&models.Review{}).
		Select("handyman_id, COUNT(*) as count").
		Where("handyman_id IN ?", handymanIDs).
		Group("handyman_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.HandymanID] = r.Count
	}
	return counts, nil
}

func (r *HandymanRepositoryImpl) Update(db *gorm.DB, handyman *models.Handyman) error {
	return db.Save(handyman).Error
}
