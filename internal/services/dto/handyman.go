package dto

import (
	"encoding/json"
	"strings"
)

// SkillList accepts either a JSON array of strings or a single
// comma-separated string, and normalizes to a trimmed list either way.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = normalizeSkills(arr)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = normalizeSkills(strings.Split(raw, ","))
	return nil
}

func normalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, skill := range in {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// UpdateHandymanProfileRequest is a partial update: only non-nil fields are
// applied.
type UpdateHandymanProfileRequest struct {
	FirstName  *string    `json:"firstName"`
	LastName   *string    `json:"lastName"`
	Phone      *string    `json:"phone" validate:"omitempty,min=7"`
	Location   *string    `json:"location"`
	Profession *string    `json:"profession"`
	Skills     *SkillList `json:"skills"`
	Experience *int       `json:"experience" validate:"omitempty,gte=0"`
	HourlyRate *float64   `json:"hourlyRate" validate:"omitempty,gte=0"`
	Bio        *string    `json:"bio"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type UpdateAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// HandymanView is the public directory entry: no password, review count
// included.
type HandymanView struct {
	ID              string   `json:"_id"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	Profession      string   `json:"profession"`
	Skills          []string `json:"skills"`
	Experience      int      `json:"experience"`
	HourlyRate      float64  `json:"hourlyRate"`
	Bio             string   `json:"bio,omitempty"`
	ProfileImage    string   `json:"profileImage"`
	PortfolioImages []string `json:"portfolioImages"`
	Available       bool     `json:"available"`
	Rating          float64  `json:"rating"`
	ReviewCount     int64    `json:"reviewCount"`
}

// ReviewView is a review with the reviewer's display name resolved.
type ReviewView struct {
	ID           string `json:"_id"`
	UserID       string `json:"userId"`
	ReviewerName string `json:"reviewerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"createdAt"`
}

// HandymanDetailView is the single-handyman response: the directory entry
// plus populated reviews.
type HandymanDetailView struct {
	HandymanView
	Reviews []ReviewView `json:"reviews"`
}
