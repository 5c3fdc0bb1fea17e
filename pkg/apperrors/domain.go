package apperrors

import (
	"net/http"
)

// Factories and predefined variables for the marketplace domain errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound) into
// a uniform 404. Ownership failures use the same factory so that a foreign
// resource is indistinguishable from an absent one.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// --- Auth ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

// Duplicate email is reported as a 400 with an explanatory message, matching
// the public API contract.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already exists",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWrongCurrentPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect",
	http.StatusBadRequest,
)

// --- Handymen ---

var ErrHandymanNotFound = New(
	CodeNotFound,
	"handyman",
	"Handyman not found",
	http.StatusNotFound,
)

// --- Bookings ---

var ErrBookingNotFound = New(
	CodeNotFound,
	"booking",
	"Booking not found",
	http.StatusNotFound,
)

var ErrBookingDateInPast = New(
	CodeValidationFailed,
	"booking",
	"Booking date must be in the future",
	http.StatusBadRequest,
)

var ErrInvalidBookingStatus = New(
	CodeInvalidStatus,
	"booking",
	"Status must be one of: Confirmed, Completed, Cancelled",
	http.StatusBadRequest,
)

// --- Reviews ---

var ErrDuplicateReview = New(
	CodeAlreadyExists,
	"review",
	"You have already reviewed this handyman",
	http.StatusBadRequest,
)

var ErrInvalidRating = New(
	CodeValidationFailed,
	"review",
	"Rating must be between 1 and 5",
	http.StatusBadRequest,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"Only JPEG and PNG images are allowed",
	http.StatusUnsupportedMediaType,
)

var ErrProfileImageRequired = New(
	CodeValidationFailed,
	"validation",
	"Profile image is required",
	http.StatusBadRequest,
)
