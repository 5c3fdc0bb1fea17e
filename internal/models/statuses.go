package models

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleHandyman Role = "handyman"
)

// BookingStatus values are stored and served in canonical capitalized form.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// NormalizeBookingStatus maps case-insensitive input to its canonical form.
// The second return value is false for unknown statuses.
func NormalizeBookingStatus(s string) (BookingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return BookingStatusPending, true
	case "confirmed":
		return BookingStatusConfirmed, true
	case "completed":
		return BookingStatusCompleted, true
	case "cancelled":
		return BookingStatusCancelled, true
	default:
		return "", false
	}
}

// intendedTransitions is the booking state machine as designed:
// Pending -> {Confirmed, Cancelled}, Confirmed -> {Completed, Cancelled}.
// Completed and Cancelled are terminal. Status updates do not currently
// reject off-graph transitions; they are only logged (see booking service).
var intendedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// IsIntendedTransition reports whether from -> to follows the designed
// state machine.
func IsIntendedTransition(from, to BookingStatus) bool {
	for _, next := range intendedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
