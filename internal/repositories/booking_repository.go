package repositories

import (
	"errors"

	"gorm.io/gorm"

	"findahand_backend/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository performs booking persistence. Ownership is part of the
// query filter: a booking that exists but belongs to someone else yields
// ErrBookingNotFound, so handlers cannot leak existence.
type BookingRepository interface {
	Create(db *gorm.DB, booking *models.Booking) error
	FindByUser(db *gorm.DB, userID string) ([]models.Booking, error)
	FindByHandyman(db *gorm.DB, handymanID string) ([]models.Booking, error)
	FindByIDForUser(db *gorm.DB, id, userID string) (*models.Booking, error)
	FindByIDForHandyman(db *gorm.DB, id, handymanID string) (*models.Booking, error)
	Update(db *gorm.DB, booking *models.Booking) error
	DeleteForHandyman(db *gorm.DB, id, handymanID string) error
}

type BookingRepositoryImpl struct{}

func NewBookingRepository() BookingRepository {
	return &BookingRepositoryImpl{}
}

func (r *BookingRepositoryImpl) Create(db *gorm.DB, booking *models.Booking) error {
	return db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Preload("Handyman").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) FindByHandyman(db *gorm.DB, handymanID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Preload("User").
		Where("handyman_id = ?", handymanID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) FindByIDForUser(db *gorm.DB, id, userID string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("Handyman").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByIDForHandyman(db *gorm.DB, id, handymanID string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("User").
		Where("id = ? AND handyman_id = ?", id, handymanID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) Update(db *gorm.DB, booking *models.Booking) error {
	return db.Save(booking).Error
}

func (r *BookingRepositoryImpl) DeleteForHandyman(db *gorm.DB, id, handymanID string) error {
	result := db.Where("id = ? AND handyman_id = ?", id, handymanID).Delete(&models.Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
