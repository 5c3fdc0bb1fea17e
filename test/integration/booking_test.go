package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findahand_backend/internal/models"
	"findahand_backend/test/helpers"
)

func bookingBody(handymanID string) map[string]interface{} {
	return map[string]interface{}{
		"handymanId":      handymanID,
		"service":         "Plumbing",
		"taskDescription": "Fix the leaking kitchen sink",
		"date":            time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		"time":            "14:30",
		"phone":           "87001234567",
		"location":        "Almaty, Abay 10",
	}
}

func TestBookingLifecycle(t *testing.T) {
	ts := GetTestServer(t)

	customerToken, _ := helpers.CreateAndLoginCustomer(t, ts)
	handymanToken, handyman := helpers.CreateAndLoginHandyman(t, ts)

	// Customer books.
	res, bodyStr := ts.SendRequest(t, "POST", "/api/bookings", customerToken, bookingBody(handyman.ID))
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var booking models.Booking
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &booking))
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	// Identifiers serialize as "_id" everywhere the frontend reads them.
	assert.Contains(t, bodyStr, `"_id":"`+booking.ID+`"`)

	// Both sides see it in their lists.
	listRes, listBody := ts.SendRequest(t, "GET", "/api/bookings", customerToken, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Contains(t, listBody, booking.ID)

	hmRes, hmBody := ts.SendRequest(t, "GET", "/api/handymen/me/bookings", handymanToken, nil)
	assert.Equal(t, http.StatusOK, hmRes.StatusCode)
	assert.Contains(t, hmBody, booking.ID)

	// Handyman confirms; the requested status is case-insensitive.
	upRes, upBody := ts.SendRequest(t, "PUT", "/api/handymen/me/bookings/"+booking.ID+"/status", handymanToken,
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, upRes.StatusCode, upBody)
	assert.Contains(t, upBody, `"status":"Confirmed"`)

	// Customer cancels with a reason.
	cancelRes, cancelBody := ts.SendRequest(t, "POST", "/api/bookings/"+booking.ID+"/cancel", customerToken,
		map[string]interface{}{"reason": "found someone closer"})
	assert.Equal(t, http.StatusOK, cancelRes.StatusCode, cancelBody)
	assert.Contains(t, cancelBody, `"status":"Cancelled"`)
	assert.Contains(t, cancelBody, "found someone closer")
}

func TestBookingRejectsPastDate(t *testing.T) {
	ts := GetTestServer(t)

	customerToken, _ := helpers.CreateAndLoginCustomer(t, ts)
	_, handyman := helpers.CreateAndLoginHandyman(t, ts)

	body := bookingBody(handyman.ID)
	body["date"] = "2020-01-01"
	res, bodyStr := ts.SendRequest(t, "POST", "/api/bookings", customerToken, body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "future")
}

func TestBookingRejectsUnknownHandyman(t *testing.T) {
	ts := GetTestServer(t)

	customerToken, _ := helpers.CreateAndLoginCustomer(t, ts)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/bookings", customerToken, bookingBody(uuid.NewString()))
	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)
}

func TestBookingOwnershipConcealment(t *testing.T) {
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginCustomer(t, ts)
	otherToken, _ := helpers.CreateAndLoginCustomer(t, ts)
	_, handyman := helpers.CreateAndLoginHandyman(t, ts)

	booking := helpers.CreateBooking(t, ts.DB, owner.ID, handyman.ID, models.BookingStatusPending)

	// Owner sees it.
	res, _ := ts.SendRequest(t, "GET", "/api/bookings/"+booking.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// A different customer gets a 404, not a 403.
	res2, _ := ts.SendRequest(t, "GET", "/api/bookings/"+booking.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, res2.StatusCode)

	// Same for cancel.
	res3, _ := ts.SendRequest(t, "POST", "/api/bookings/"+booking.ID+"/cancel", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, res3.StatusCode)
}

func TestBookingStatusUpdateRules(t *testing.T) {
	ts := GetTestServer(t)

	_, customer := helpers.CreateAndLoginCustomer(t, ts)
	handymanToken, handyman := helpers.CreateAndLoginHandyman(t, ts)
	otherHandymanToken, _ := helpers.CreateAndLoginHandyman(t, ts)

	booking := helpers.CreateBooking(t, ts.DB, customer.ID, handyman.ID, models.BookingStatusPending)
	statusPath := "/api/handymen/me/bookings/" + booking.ID + "/status"

	// Pending is not a valid target.
	res, bodyStr := ts.SendRequest(t, "PUT", statusPath, handymanToken,
		map[string]interface{}{"status": "Pending"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Confirmed, Completed, Cancelled")

	// Unknown status.
	res2, _ := ts.SendRequest(t, "PUT", statusPath, handymanToken,
		map[string]interface{}{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, res2.StatusCode)

	// A different handyman cannot touch it.
	res3, _ := ts.SendRequest(t, "PUT", statusPath, otherHandymanToken,
		map[string]interface{}{"status": "Confirmed"})
	assert.Equal(t, http.StatusNotFound, res3.StatusCode)

	// The assigned handyman can.
	res4, bodyStr4 := ts.SendRequest(t, "PUT", statusPath, handymanToken,
		map[string]interface{}{"status": "Confirmed"})
	assert.Equal(t, http.StatusOK, res4.StatusCode, bodyStr4)
}

func TestBookingDelete(t *testing.T) {
	ts := GetTestServer(t)

	_, customer := helpers.CreateAndLoginCustomer(t, ts)
	handymanToken, handyman := helpers.CreateAndLoginHandyman(t, ts)
	otherHandymanToken, _ := helpers.CreateAndLoginHandyman(t, ts)

	booking := helpers.CreateBooking(t, ts.DB, customer.ID, handyman.ID, models.BookingStatusCancelled)
	path := "/api/handymen/me/bookings/" + booking.ID

	res, _ := ts.SendRequest(t, "DELETE", path, otherHandymanToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res2, bodyStr2 := ts.SendRequest(t, "DELETE", path, handymanToken, nil)
	assert.Equal(t, http.StatusOK, res2.StatusCode, bodyStr2)

	var count int64
	ts.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestBookingRequiresCustomerRole(t *testing.T) {
	ts := GetTestServer(t)

	handymanToken, handyman := helpers.CreateAndLoginHandyman(t, ts)

	res, _ := ts.SendRequest(t, "POST", "/api/bookings", handymanToken, bookingBody(handyman.ID))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res2, _ := ts.SendRequest(t, "GET", "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res2.StatusCode)
}
