package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedTawfiq30/dmorder/pkg/bind"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestJSONDecodesAndValidates(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"a@b.com","password":"secret123"}`))

	var body loginBody
	errs, err := bind.JSON(req, &body)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "a@b.com", body.Email)
}

func TestJSONReportsValidationErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"nope"}`))

	var body loginBody
	errs, err := bind.JSON(req, &body)
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestJSONRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":`))

	var body loginBody
	_, err := bind.JSON(req, &body)
	assert.Error(t, err)
}
