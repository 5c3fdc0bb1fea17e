package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rating   int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Internal string `json:"-" validate:"omitempty,min=3"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "user@test.com",
		Password: "long-enough",
		Rating:   5,
	})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Keys come from json tags, not Go field names.
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.NotContains(t, vErr.Errors, "Email")

	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be at least 8 items/characters long", vErr.Errors["password"])
}

func TestValidateRangeMessages(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "user@test.com",
		Password: "long-enough",
		Rating:   9,
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be at most 5", vErr.Errors["rating"])
}

func TestValidationErrorString(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"email": "This field is required"}}
	assert.Contains(t, err.Error(), "Validation failed")
	assert.Contains(t, err.Error(), "email")
}
