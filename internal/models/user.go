package models

// User is a customer account. Customers are never hard-deleted.
type User struct {
	BaseModel
	FirstName    string `gorm:"not null" json:"firstName"`
	LastName     string `gorm:"not null" json:"lastName"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `gorm:"not null" json:"-"`
	Location     string `json:"location"`

	// Relations
	Bookings []Booking `gorm:"foreignKey:UserID" json:"-"`
	Reviews  []Review  `gorm:"foreignKey:UserID" json:"-"`
}

// DisplayName is shown next to reviews.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
