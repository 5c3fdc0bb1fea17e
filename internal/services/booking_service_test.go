package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"findahand_backend/internal/models"
	"findahand_backend/internal/repositories"
	"findahand_backend/internal/services/dto"
	"findahand_backend/pkg/apperrors"
)

// fakeBookingRepo keeps bookings in memory and mirrors the ownership
// filtering the real repository does in SQL.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(_ *gorm.DB, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) FindByUser(_ *gorm.DB, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByHandyman(_ *gorm.DB, handymanID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.HandymanID == handymanID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByIDForUser(_ *gorm.DB, id, userID string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID {
		return nil, repositories.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) FindByIDForHandyman(_ *gorm.DB, id, handymanID string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.HandymanID != handymanID {
		return nil, repositories.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) Update(_ *gorm.DB, booking *models.Booking) error {
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) DeleteForHandyman(_ *gorm.DB, id, handymanID string) error {
	b, ok := r.bookings[id]
	if !ok || b.HandymanID != handymanID {
		return repositories.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type fakeHandymanRepo struct {
	handymen map[string]*models.Handyman
}

func newFakeHandymanRepo() *fakeHandymanRepo {
	return &fakeHandymanRepo{handymen: make(map[string]*models.Handyman)}
}

func (r *fakeHandymanRepo) Create(_ *gorm.DB, h *models.Handyman) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	r.handymen[h.ID] = h
	return nil
}

func (r *fakeHandymanRepo) FindByID(_ *gorm.DB, id string) (*models.Handyman, error) {
	h, ok := r.handymen[id]
	if !ok {
		return nil, repositories.ErrHandymanNotFound
	}
	return h, nil
}

func (r *fakeHandymanRepo) FindByIDWithReviews(db *gorm.DB, id string) (*models.Handyman, error) {
	return r.FindByID(db, id)
}

func (r *fakeHandymanRepo) FindByEmail(_ *gorm.DB, email string) (*models.Handyman, error) {
	for _, h := range r.handymen {
		if h.Email == email {
			return h, nil
		}
	}
	return nil, repositories.ErrHandymanNotFound
}

func (r *fakeHandymanRepo) FindAll(_ *gorm.DB) ([]models.Handyman, error) {
	var out []models.Handyman
	for _, h := range r.handymen {
		out = append(out, *h)
	}
	return out, nil
}

func (r *fakeHandymanRepo) CountReviews(_ *gorm.DB, _ []string) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (r *fakeHandymanRepo) Update(_ *gorm.DB, h *models.Handyman) error {
	r.handymen[h.ID] = h
	return nil
}

func newTestBookingService(t *testing.T) (BookingService, *fakeBookingRepo, string) {
	t.Helper()
	bookingRepo := newFakeBookingRepo()
	handymanRepo := newFakeHandymanRepo()

	handyman := &models.Handyman{}
	require.NoError(t, handymanRepo.Create(nil, handyman))

	return NewBookingService(bookingRepo, handymanRepo), bookingRepo, handyman.ID
}

func validBookingRequest(handymanID string) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		HandymanID:      handymanID,
		Service:         "Plumbing",
		TaskDescription: "Fix the leaking kitchen sink",
		Date:            time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:            "14:30",
		Phone:           "87001234567",
		Location:        "Almaty, Abay 10",
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)
	userID := uuid.NewString()

	booking, err := svc.Create(context.Background(), nil, userID, validBookingRequest(handymanID))
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, userID, booking.UserID)
	assert.Equal(t, handymanID, booking.HandymanID)
	assert.Equal(t, "14:30", booking.Time)
	assert.True(t, booking.Date.After(time.Now()))
}

func TestCreateBookingDateInPast(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)

	req := validBookingRequest(handymanID)
	req.Date = "2020-01-01"

	_, err := svc.Create(context.Background(), nil, uuid.NewString(), req)
	assert.ErrorIs(t, err, apperrors.ErrBookingDateInPast)
}

func TestCreateBookingBadDate(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)

	req := validBookingRequest(handymanID)
	req.Date = "next tuesday"

	_, err := svc.Create(context.Background(), nil, uuid.NewString(), req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestCreateBookingBadTime(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)

	for _, bad := range []string{"25:00", "14:60", "2pm", "14.30", ""} {
		req := validBookingRequest(handymanID)
		req.Time = bad

		_, err := svc.Create(context.Background(), nil, uuid.NewString(), req)
		assert.Error(t, err, "time %q should be rejected", bad)
	}
}

func TestCreateBookingUnknownHandyman(t *testing.T) {
	svc, _, _ := newTestBookingService(t)

	req := validBookingRequest(uuid.NewString())
	_, err := svc.Create(context.Background(), nil, uuid.NewString(), req)
	assert.ErrorIs(t, err, apperrors.ErrHandymanNotFound)

	// Malformed IDs conceal as not found too.
	req.HandymanID = "not-a-uuid"
	_, err = svc.Create(context.Background(), nil, uuid.NewString(), req)
	assert.ErrorIs(t, err, apperrors.ErrHandymanNotFound)
}

func TestGetForCustomerConcealsForeignBooking(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)
	owner := uuid.NewString()

	booking, err := svc.Create(context.Background(), nil, owner, validBookingRequest(handymanID))
	require.NoError(t, err)

	_, err = svc.GetForCustomer(nil, booking.ID, owner)
	assert.NoError(t, err)

	// Someone else's booking reads as absent.
	_, err = svc.GetForCustomer(nil, booking.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)

	// Malformed booking IDs too.
	_, err = svc.GetForCustomer(nil, "garbage", owner)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestCancelBooking(t *testing.T) {
	svc, repo, handymanID := newTestBookingService(t)
	owner := uuid.NewString()

	booking, err := svc.Create(context.Background(), nil, owner, validBookingRequest(handymanID))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(nil, booking.ID, owner, "found someone else")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, "found someone else", cancelled.CancellationReason)

	stored := repo.bookings[booking.ID]
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)
}

func TestUpdateStatus(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)

	booking, err := svc.Create(context.Background(), nil, uuid.NewString(), validBookingRequest(handymanID))
	require.NoError(t, err)

	// Case-insensitive input normalizes to canonical form.
	updated, err := svc.UpdateStatus(context.Background(), nil, booking.ID, handymanID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), nil, booking.ID, handymanID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, updated.Status)
}

func TestUpdateStatusRejectsInvalid(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)

	booking, err := svc.Create(context.Background(), nil, uuid.NewString(), validBookingRequest(handymanID))
	require.NoError(t, err)

	for _, bad := range []string{"pending", "Pending", "done", ""} {
		_, err := svc.UpdateStatus(context.Background(), nil, booking.ID, handymanID, bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidBookingStatus, "status %q", bad)
	}
}

func TestUpdateStatusConcealsForeignBooking(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)

	booking, err := svc.Create(context.Background(), nil, uuid.NewString(), validBookingRequest(handymanID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), nil, booking.ID, uuid.NewString(), "Confirmed")
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestUpdateStatusPermitsOffGraphTransitions(t *testing.T) {
	svc, _, handymanID := newTestBookingService(t)

	booking, err := svc.Create(context.Background(), nil, uuid.NewString(), validBookingRequest(handymanID))
	require.NoError(t, err)

	// Pending -> Completed skips Confirmed. The designed graph does not
	// include it, but updates only log it and still apply.
	updated, err := svc.UpdateStatus(context.Background(), nil, booking.ID, handymanID, "Completed")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, updated.Status)

	// Leaving a terminal state is also applied.
	updated, err = svc.UpdateStatus(context.Background(), nil, booking.ID, handymanID, "Confirmed")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
}

func TestDeleteBooking(t *testing.T) {
	svc, repo, handymanID := newTestBookingService(t)

	booking, err := svc.Create(context.Background(), nil, uuid.NewString(), validBookingRequest(handymanID))
	require.NoError(t, err)

	// A different handyman cannot delete it.
	err = svc.Delete(nil, booking.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	assert.Contains(t, repo.bookings, booking.ID)

	require.NoError(t, svc.Delete(nil, booking.ID, handymanID))
	assert.NotContains(t, repo.bookings, booking.ID)
}
