package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findahand_backend/test/helpers"
)

func handymanRegisterFields(email string) map[string]string {
	return map[string]string{
		"firstName":  "Saidou",
		"lastName":   "Barry",
		"email":      email,
		"phone":      "87007654321",
		"location":   "Almaty",
		"password":   "secret1",
		"profession": "Plumber",
		"skills":     "pipes, faucets, heaters",
		"experience": "7",
		"hourlyRate": "3000",
	}
}

func TestHandymanRegisterAndLogin(t *testing.T) {
	ts := GetTestServer(t)

	email := fmt.Sprintf("plumber_%d@test.com", time.Now().UnixNano())
	res, bodyStr := ts.SendMultipart(t, "POST", "/api/handymen/register", "",
		handymanRegisterFields(email), "profileImage", "me.png", helpers.TestPNG(t, 600, 600))
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "token")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": "secret1",
	}
	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/handymen/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode, logBodyStr)
	assert.Contains(t, logBodyStr, "token")
}

func TestHandymanRegisterWithoutImage(t *testing.T) {
	ts := GetTestServer(t)

	email := fmt.Sprintf("noimage_%d@test.com", time.Now().UnixNano())
	res, bodyStr := ts.SendMultipart(t, "POST", "/api/handymen/register", "",
		handymanRegisterFields(email), "", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Profile image is required")
}

func TestHandymanRegisterRejectsNonImage(t *testing.T) {
	ts := GetTestServer(t)

	email := fmt.Sprintf("badfile_%d@test.com", time.Now().UnixNano())
	res, bodyStr := ts.SendMultipart(t, "POST", "/api/handymen/register", "",
		handymanRegisterFields(email), "profileImage", "evil.exe", []byte("MZ not an image at all"))
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode, bodyStr)
}

func TestHandymanDirectory(t *testing.T) {
	ts := GetTestServer(t)

	_, handyman := helpers.CreateAndLoginHandyman(t, ts)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/handymen", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, handyman.Email)
	assert.Contains(t, bodyStr, "reviewCount")
	assert.NotContains(t, bodyStr, "passwordHash")
}

func TestHandymanGetByID(t *testing.T) {
	ts := GetTestServer(t)

	_, handyman := helpers.CreateAndLoginHandyman(t, ts)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/handymen/"+handyman.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, handyman.Email)
	assert.Contains(t, bodyStr, "reviews")

	// Unknown and malformed IDs both read as 404.
	res2, _ := ts.SendRequest(t, "GET", "/api/handymen/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, res2.StatusCode)

	res3, _ := ts.SendRequest(t, "GET", "/api/handymen/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, res3.StatusCode)
}

func TestHandymanUpdateProfile(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginHandyman(t, ts)

	// Skills as a comma-separated string.
	res, bodyStr := ts.SendRequest(t, "PUT", "/api/handymen/me", token, map[string]interface{}{
		"profession": "Electrician",
		"skills":     "wiring, panels",
		"hourlyRate": 4000,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var view struct {
		Profession string   `json:"profession"`
		Skills     []string `json:"skills"`
		HourlyRate float64  `json:"hourlyRate"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &view))
	assert.Equal(t, "Electrician", view.Profession)
	assert.Equal(t, []string{"wiring", "panels"}, view.Skills)
	assert.Equal(t, 4000.0, view.HourlyRate)

	// Skills as an array normalizes the same way.
	res2, bodyStr2 := ts.SendRequest(t, "PUT", "/api/handymen/me", token, map[string]interface{}{
		"skills": []string{" sockets ", "lighting"},
	})
	assert.Equal(t, http.StatusOK, res2.StatusCode, bodyStr2)
	require.NoError(t, json.Unmarshal([]byte(bodyStr2), &view))
	assert.Equal(t, []string{"sockets", "lighting"}, view.Skills)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Electrician", view.Profession)
}

func TestHandymanUpdatePassword(t *testing.T) {
	ts := GetTestServer(t)

	token, handyman := helpers.CreateAndLoginHandyman(t, ts)

	// Wrong current password.
	res, bodyStr := ts.SendRequest(t, "PUT", "/api/handymen/me/password", token, map[string]interface{}{
		"currentPassword": "wrong",
		"newPassword":     "newsecret",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	// Correct current password.
	res2, bodyStr2 := ts.SendRequest(t, "PUT", "/api/handymen/me/password", token, map[string]interface{}{
		"currentPassword": "password123",
		"newPassword":     "newsecret",
	})
	assert.Equal(t, http.StatusOK, res2.StatusCode, bodyStr2)

	// Old password no longer works, the new one does.
	res3, _ := ts.SendRequest(t, "POST", "/api/handymen/login", "", map[string]interface{}{
		"email":    handyman.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res3.StatusCode)

	res4, _ := ts.SendRequest(t, "POST", "/api/handymen/login", "", map[string]interface{}{
		"email":    handyman.Email,
		"password": "newsecret",
	})
	assert.Equal(t, http.StatusOK, res4.StatusCode)
}

func TestHandymanAvailability(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginHandyman(t, ts)

	res, bodyStr := ts.SendRequest(t, "PUT", "/api/handymen/me/availability", token, map[string]interface{}{
		"available": false,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"available":false`)
}

func TestHandymanPortfolioUpload(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginHandyman(t, ts)

	res, bodyStr := ts.SendMultipart(t, "POST", "/api/handymen/me/portfolio", token,
		nil, "image", "work.png", helpers.TestPNG(t, 800, 600))
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "portfolioImages")
}

func TestHandymanMeRequiresHandymanRole(t *testing.T) {
	ts := GetTestServer(t)

	customerToken, _ := helpers.CreateAndLoginCustomer(t, ts)

	res, _ := ts.SendRequest(t, "GET", "/api/handymen/me", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
