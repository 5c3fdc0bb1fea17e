package models

import "time"

// Booking is a scheduled service request from a customer to a handyman.
// A booking is referenced by exactly one customer and one handyman; only the
// owning handyman may drive status transitions, only the owning customer may
// cancel.
type Booking struct {
	BaseModel
	UserID     string `gorm:"not null;index" json:"userId"`
	HandymanID string `gorm:"not null;index" json:"handymanId"`

	Service         string        `gorm:"not null" json:"service"`
	TaskDescription string        `gorm:"not null" json:"taskDescription"`
	Date            time.Time     `gorm:"not null;index" json:"date"`
	Time            string        `gorm:"not null" json:"time"` // HH:MM
	Phone           string        `gorm:"not null" json:"phone"`
	Location        string        `gorm:"not null" json:"location"`
	Status          BookingStatus `gorm:"type:varchar(20);default:'Pending';index" json:"status"`

	EstimatedDuration  int     `json:"estimatedDuration,omitempty"` // hours
	EstimatedCost      float64 `json:"estimatedCost,omitempty"`
	Notes              string  `json:"notes,omitempty"`
	CancellationReason string  `json:"cancellationReason,omitempty"`

	// Relations
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Handyman *Handyman `gorm:"foreignKey:HandymanID" json:"handyman,omitempty"`
}
