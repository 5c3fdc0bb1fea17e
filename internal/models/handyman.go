package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Handyman is a service-provider account with marketplace attributes.
// Rating is denormalized: the arithmetic mean of all review ratings,
// recomputed from the full review set on every insertion (0 when empty).
type Handyman struct {
	BaseModel
	FirstName    string `gorm:"not null" json:"firstName"`
	LastName     string `gorm:"not null" json:"lastName"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"not null" json:"phone"`
	Location     string `gorm:"not null" json:"location"`
	PasswordHash string `gorm:"not null" json:"-"`

	Profession      string         `gorm:"not null" json:"profession"`
	Skills          datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	Experience      int            `json:"experience"` // years
	HourlyRate      float64        `json:"hourlyRate"`
	Bio             string         `json:"bio"`
	ProfileImage    string         `json:"profileImage"`
	PortfolioImages datatypes.JSON `gorm:"type:jsonb" json:"portfolioImages"`
	Available       bool           `gorm:"default:true" json:"available"`
	Rating          float64        `gorm:"default:0" json:"rating"`

	// Relations
	Reviews  []Review  `gorm:"foreignKey:HandymanID" json:"reviews,omitempty"`
	Bookings []Booking `gorm:"foreignKey:HandymanID" json:"-"`
}

// GetSkills returns the skill list as a string slice.
func (h *Handyman) GetSkills() []string {
	var skills []string
	if len(h.Skills) > 0 {
		_ = json.Unmarshal(h.Skills, &skills)
	}
	return skills
}

// SetSkills stores the skill list.
func (h *Handyman) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	h.Skills = datatypes.JSON(data)
}

// GetPortfolioImages returns the portfolio image URLs as a string slice.
func (h *Handyman) GetPortfolioImages() []string {
	var images []string
	if len(h.PortfolioImages) > 0 {
		_ = json.Unmarshal(h.PortfolioImages, &images)
	}
	return images
}

// SetPortfolioImages stores the portfolio image URLs.
func (h *Handyman) SetPortfolioImages(images []string) {
	data, _ := json.Marshal(images)
	h.PortfolioImages = datatypes.JSON(data)
}
