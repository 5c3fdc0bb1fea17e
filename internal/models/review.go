package models

// Review is a customer rating attached to a handyman. One review per
// (handyman, reviewer); reviews are never edited or deleted.
type Review struct {
	BaseModel
	HandymanID string `gorm:"not null;index;uniqueIndex:idx_reviews_handyman_user" json:"handymanId"`
	UserID     string `gorm:"not null;index;uniqueIndex:idx_reviews_handyman_user" json:"userId"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string `json:"comment"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
