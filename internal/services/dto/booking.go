package dto

// CreateBookingRequest carries all required booking fields. Date is
// YYYY-MM-DD, Time is HH:MM; both are parsed and range-checked in the
// booking service.
type CreateBookingRequest struct {
	HandymanID        string  `json:"handymanId" validate:"required"`
	Service           string  `json:"service" validate:"required,min=2"`
	TaskDescription   string  `json:"taskDescription" validate:"required,min=10,max=500"`
	Date              string  `json:"date" validate:"required"`
	Time              string  `json:"time" validate:"required"`
	Phone             string  `json:"phone" validate:"required,min=7,max=15"`
	Location          string  `json:"location" validate:"required,min=3"`
	EstimatedDuration int     `json:"estimatedDuration" validate:"omitempty,gte=1,lte=24"`
	EstimatedCost     float64 `json:"estimatedCost" validate:"omitempty,gte=0"`
	Notes             string  `json:"notes" validate:"omitempty,max=200"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// UpdateBookingStatusRequest carries the requested status. Input is
// case-insensitive; the service normalizes it to canonical form and rejects
// anything other than Confirmed, Completed or Cancelled.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
