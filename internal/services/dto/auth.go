package dto

// RegisterUserRequest is the customer registration body.
type RegisterUserRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,min=7,max=15"`
	Password  string `json:"password" validate:"required,min=8"`
	Location  string `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserAuthResponse mirrors the original API: the profile plus a bearer token.
type UserAuthResponse struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Token     string `json:"token"`
}

// RegisterHandymanRequest is bound from the multipart registration form; the
// profile image part is handled separately by the upload service.
type RegisterHandymanRequest struct {
	FirstName  string  `form:"firstName" json:"firstName" validate:"required"`
	LastName   string  `form:"lastName" json:"lastName" validate:"required"`
	Email      string  `form:"email" json:"email" validate:"required,email"`
	Phone      string  `form:"phone" json:"phone" validate:"required,min=7"`
	Location   string  `form:"location" json:"location" validate:"required"`
	Password   string  `form:"password" json:"password" validate:"required,min=6"`
	Profession string  `form:"profession" json:"profession" validate:"required"`
	Skills     string  `form:"skills" json:"skills"` // comma-separated
	Experience int     `form:"experience" json:"experience" validate:"omitempty,gte=0"`
	HourlyRate float64 `form:"hourlyRate" json:"hourlyRate" validate:"omitempty,gte=0"`
}

// TokenResponse is returned by handyman register/login.
type TokenResponse struct {
	Token string `json:"token"`
}
