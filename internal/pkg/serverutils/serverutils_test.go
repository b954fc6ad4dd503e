package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leadForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Budget   string `json:"budget" validate:"omitempty,oneof=small medium large"`
	Internal string
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		req    leadForm
		fields []FieldError
	}{
		{
			name: "valid",
			req:  leadForm{Name: "Ana", Email: "ana@acme.io"},
		},
		{
			name: "missing and malformed fields use json names",
			req:  leadForm{Email: "nope", Budget: "huge"},
			fields: []FieldError{
				{Field: "name", Message: "is required"},
				{Field: "email", Message: "must be a valid email"},
				{Field: "budget", Message: "must be one of small medium large"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

type teapotError struct{}

func (teapotError) Error() string   { return "short and stout" }
func (teapotError) HTTPStatus() int { return fiber.StatusTeapot }

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(c *fiber.Ctx) error { return ValidateRequest(leadForm{}) })
	app.Get("/status", func(c *fiber.Ctx) error { return teapotError{} })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("db down") })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/validation", fiber.StatusUnprocessableEntity, "Validation failed"},
		{"/status", fiber.StatusTeapot, "short and stout"},
		{"/fiber", fiber.StatusBadRequest, "Bad Request"},
		{"/plain", fiber.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var envelope Response[json.RawMessage]
			require.NoError(t, json.Unmarshal(body, &envelope))
			assert.False(t, envelope.Success)
			assert.Equal(t, tt.status, envelope.Code)
			assert.Equal(t, tt.message, envelope.Message)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	app.Get("/me", JwtMiddleware, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})

	token, err := IssueToken("admin-1", "admin", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken("admin-1", "admin", -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"valid", "Bearer " + token, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "admin-1", string(body))
			}
		})
	}
}

func TestTokensRequireSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := IssueToken("admin-1", "admin", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "attacker",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte(""))
	require.NoError(t, err)

	id, err := ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, id)
}
