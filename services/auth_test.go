package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestJWTService_RoundTrip(t *testing.T) {
	jwtSvc := NewJWTService(testSecret, time.Hour)

	issued, err := jwtSvc.GenerateToken(student.ID, shared.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), issued.ExpiresIn)

	claims, err := jwtSvc.VerifyJWTToken(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, student.ID, claims.UserID)
	assert.Equal(t, shared.RoleStudent, claims.Role)
	assert.Equal(t, SERVICE_NAME, claims.Issuer)
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	jwtSvc := NewJWTService(testSecret, time.Hour)

	foreign, err := NewJWTService("other-secret", time.Hour).ToJWT(student.ID, shared.RoleStudent)
	require.NoError(t, err)
	_, err = jwtSvc.VerifyJWTToken(foreign)
	assert.Error(t, err)

	expired, err := NewJWTService(testSecret, -time.Minute).ToJWT(student.ID, shared.RoleStudent)
	require.NoError(t, err)
	_, err = jwtSvc.VerifyJWTToken(expired)
	assert.Error(t, err)
}

func TestJWTService_ExtractTokenFromHeader(t *testing.T) {
	jwtSvc := NewJWTService(testSecret, time.Hour)

	token, err := jwtSvc.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwtSvc.ExtractTokenFromHeader("")
	assert.Error(t, err)
	_, err = jwtSvc.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := NewJWTService(testSecret, time.Hour)
	auth := NewAuthMiddleware(jwtSvc)

	app := fiber.New()
	app.Get("/me", auth.RequiredAuth(), func(c *fiber.Ctx) error {
		actor := shared.CurrentActor(c)
		return c.SendString(actor.ID + ":" + actor.Role)
	})
	app.Get("/admin", auth.RequiredAuth(), auth.RequireRole(shared.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	call := func(path, role string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if role != "" {
			token, err := jwtSvc.ToJWT("user-9", role)
			require.NoError(t, err)
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := call("/me", shared.RoleParent)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "user-9:parent", string(body))

	assert.Equal(t, http.StatusUnauthorized, call("/me", "").StatusCode)
	assert.Equal(t, http.StatusForbidden, call("/admin", shared.RoleStudent).StatusCode)
	assert.Equal(t, http.StatusNoContent, call("/admin", shared.RoleAdmin).StatusCode)
}
