package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"findahand_backend/internal/models"
)

// CreateCustomer inserts a customer account, hashing the raw password first.
func CreateCustomer(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashed)
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("Failed to create customer %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateHandyman inserts a handyman account with sane JSONB defaults.
func CreateHandyman(t *testing.T, db *gorm.DB, handyman *models.Handyman) error {
	if handyman.PasswordHash != "" && !strings.HasPrefix(handyman.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(handyman.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		handyman.PasswordHash = string(hashed)
	}

	if len(handyman.Skills) == 0 {
		handyman.SetSkills([]string{})
	}
	if len(handyman.PortfolioImages) == 0 {
		handyman.SetPortfolioImages([]string{})
	}
	handyman.Available = true

	result := db.Create(handyman)
	if result.Error != nil {
		t.Logf("Failed to create handyman %s: %v", handyman.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndLoginCustomer creates a customer with a unique email and logs in
// through the API, returning the bearer token.
func CreateAndLoginCustomer(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("customer_%d@test.com", time.Now().UnixNano())
	password := "password123"

	user := &models.User{
		FirstName:    "Test",
		LastName:     "Customer",
		Email:        email,
		Phone:        "87001112233",
		PasswordHash: password,
		Location:     "Almaty",
	}
	assert.NoError(t, CreateCustomer(t, ts.DB, user))

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/users/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Customer login should succeed. Response: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginHandyman creates a handyman with a unique email and logs in
// through the API.
func CreateAndLoginHandyman(t *testing.T, ts *TestServer) (string, *models.Handyman) {
	email := fmt.Sprintf("handyman_%d@test.com", time.Now().UnixNano())
	password := "password123"

	handyman := &models.Handyman{
		FirstName:    "Test",
		LastName:     "Handyman",
		Email:        email,
		Phone:        "87004445566",
		Location:     "Almaty",
		PasswordHash: password,
		Profession:   "Plumber",
		Experience:   5,
		HourlyRate:   2500,
	}
	handyman.SetSkills([]string{"pipes", "faucets"})
	assert.NoError(t, CreateHandyman(t, ts.DB, handyman))

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/handymen/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Handyman login should succeed. Response: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, handyman
}

// CreateBooking inserts a booking directly for setups that need one in a
// known state.
func CreateBooking(t *testing.T, db *gorm.DB, userID, handymanID string, status models.BookingStatus) models.Booking {
	booking := models.Booking{
		UserID:          userID,
		HandymanID:      handymanID,
		Service:         "Plumbing",
		TaskDescription: "Fix the leaking kitchen sink",
		Date:            time.Now().AddDate(0, 0, 7),
		Time:            "14:30",
		Phone:           "87001234567",
		Location:        "Almaty, Abay 10",
		Status:          status,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("Failed to create test booking: %v", err)
	}
	return booking
}
