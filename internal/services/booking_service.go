package services

import (
	"context"
	"regexp"
	"time"

	"gorm.io/gorm"

	"findahand_backend/internal/logger"
	"findahand_backend/internal/models"
	"findahand_backend/internal/repositories"
	"findahand_backend/internal/services/dto"
	"findahand_backend/pkg/apperrors"
)

var timeFormat = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// BookingService owns the booking lifecycle. Customers create, list, fetch
// and cancel their own bookings; handymen list, transition and delete the
// bookings assigned to them. Every per-booking operation is ownership
// checked and reports foreign bookings as not found.
type BookingService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateBookingRequest) (*models.Booking, error)
	ListForCustomer(db *gorm.DB, userID string) ([]models.Booking, error)
	ListForHandyman(db *gorm.DB, handymanID string) ([]models.Booking, error)
	GetForCustomer(db *gorm.DB, id, userID string) (*models.Booking, error)
	Cancel(db *gorm.DB, id, userID, reason string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id, handymanID, requestedStatus string) (*models.Booking, error)
	Delete(db *gorm.DB, id, handymanID string) error
}

type BookingServiceImpl struct {
	bookingRepo  repositories.BookingRepository
	handymanRepo repositories.HandymanRepository
}

func NewBookingService(bookingRepo repositories.BookingRepository, handymanRepo repositories.HandymanRepository) BookingService {
	return &BookingServiceImpl{
		bookingRepo:  bookingRepo,
		handymanRepo: handymanRepo,
	}
}

func (s *BookingServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateBookingRequest) (*models.Booking, error) {
	date, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid date format. Use YYYY-MM-DD")
	}
	if !date.After(time.Now()) {
		return nil, apperrors.ErrBookingDateInPast
	}
	if !timeFormat.MatchString(req.Time) {
		return nil, apperrors.NewBadRequestError("Please use a valid time format (HH:MM)")
	}

	if !isValidID(req.HandymanID) {
		return nil, apperrors.ErrHandymanNotFound
	}
	if _, err := s.handymanRepo.FindByID(db, req.HandymanID); err != nil {
		if apperrors.Is(err, repositories.ErrHandymanNotFound) {
			return nil, apperrors.ErrHandymanNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	booking := &models.Booking{
		UserID:            userID,
		HandymanID:        req.HandymanID,
		Service:           req.Service,
		TaskDescription:   req.TaskDescription,
		Date:              date,
		Time:              req.Time,
		Phone:             req.Phone,
		Location:          req.Location,
		Status:            models.BookingStatusPending,
		EstimatedDuration: req.EstimatedDuration,
		EstimatedCost:     req.EstimatedCost,
		Notes:             req.Notes,
	}

	if err := s.bookingRepo.Create(db, booking); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "booking created",
		"booking_id", booking.ID,
		"handyman_id", booking.HandymanID,
	)
	return booking, nil
}

func (s *BookingServiceImpl) ListForCustomer(db *gorm.DB, userID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}

func (s *BookingServiceImpl) ListForHandyman(db *gorm.DB, handymanID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.FindByHandyman(db, handymanID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}

func (s *BookingServiceImpl) GetForCustomer(db *gorm.DB, id, userID string) (*models.Booking, error) {
	return s.findForCustomer(db, id, userID)
}

// Cancel sets the booking to Cancelled on behalf of its owning customer.
func (s *BookingServiceImpl) Cancel(db *gorm.DB, id, userID, reason string) (*models.Booking, error) {
	booking, err := s.findForCustomer(db, id, userID)
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancellationReason = reason

	if err := s.bookingRepo.Update(db, booking); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return booking, nil
}

// UpdateStatus applies a handyman-requested transition. Requested status is
// normalized case-insensitively and must be Confirmed, Completed or
// Cancelled. Transitions that leave the designed state machine (including
// out of the terminal states) are currently permitted and only logged.
func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, id, handymanID, requestedStatus string) (*models.Booking, error) {
	status, ok := models.NormalizeBookingStatus(requestedStatus)
	if !ok || status == models.BookingStatusPending {
		return nil, apperrors.ErrInvalidBookingStatus
	}

	booking, err := s.findForHandyman(db, id, handymanID)
	if err != nil {
		return nil, err
	}

	if !models.IsIntendedTransition(booking.Status, status) {
		logger.CtxWarn(ctx, "booking status transition outside intended graph",
			"booking_id", booking.ID,
			"from", booking.Status,
			"to", status,
		)
	}

	booking.Status = status
	if err := s.bookingRepo.Update(db, booking); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return booking, nil
}

func (s *BookingServiceImpl) Delete(db *gorm.DB, id, handymanID string) error {
	if !isValidID(id) {
		return apperrors.ErrBookingNotFound
	}
	if err := s.bookingRepo.DeleteForHandyman(db, id, handymanID); err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return apperrors.ErrBookingNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *BookingServiceImpl) findForCustomer(db *gorm.DB, id, userID string) (*models.Booking, error) {
	if !isValidID(id) {
		return nil, apperrors.ErrBookingNotFound
	}
	booking, err := s.bookingRepo.FindByIDForUser(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return booking, nil
}

func (s *BookingServiceImpl) findForHandyman(db *gorm.DB, id, handymanID string) (*models.Booking, error) {
	if !isValidID(id) {
		return nil, apperrors.ErrBookingNotFound
	}
	booking, err := s.bookingRepo.FindByIDForHandyman(db, id, handymanID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return booking, nil
}

// parseBookingDate accepts a bare date or a full RFC3339 timestamp.
func parseBookingDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	// A bare date means end of that day, so booking "tomorrow" is always
	// strictly in the future.
	return t.Add(24*time.Hour - time.Second), nil
}
