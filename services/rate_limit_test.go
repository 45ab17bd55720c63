package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/services/repositories"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestRateLimiter(t *testing.T) (*RateLimitService, *manualClock) {
	t.Helper()

	clock := &manualClock{now: testNow}
	repo := repositories.NewRateLimitRepository(newTestDatabase(t).Db())
	return NewRateLimitService(repo, clock.Now), clock
}

func TestRateLimitService_BlocksAfterLimit(t *testing.T) {
	limiter, clock := newTestRateLimiter(t)

	for i := 0; i < 10; i++ {
		allowed, info, err := limiter.IsAllowed(student.ID, EndpointTestAttempt)
		require.NoError(t, err)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10-(i+1), info.Remaining)
	}

	allowed, info, err := limiter.IsAllowed(student.ID, EndpointTestAttempt)
	require.NoError(t, err)
	assert.False(t, allowed)
	require.NotNil(t, info.BlockedUntil)
	assert.True(t, info.BlockedUntil.Equal(testNow.Add(time.Hour)))

	// other students are unaffected
	allowed, _, err = limiter.IsAllowed("student-2", EndpointTestAttempt)
	require.NoError(t, err)
	assert.True(t, allowed)

	clock.Advance(time.Hour + time.Second)
	allowed, info, err = limiter.IsAllowed(student.ID, EndpointTestAttempt)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 9, info.Remaining)
}

func TestRateLimitService_WindowResets(t *testing.T) {
	limiter, clock := newTestRateLimiter(t)

	for i := 0; i < 5; i++ {
		_, _, err := limiter.IsAllowed(student.ID, EndpointProgressUpdate)
		require.NoError(t, err)
	}

	clock.Advance(time.Minute)
	allowed, info, err := limiter.IsAllowed(student.ID, EndpointProgressUpdate)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 119, info.Remaining)
}

func TestRateLimitService_UnknownEndpointIsUnlimited(t *testing.T) {
	limiter, _ := newTestRateLimiter(t)

	allowed, info, err := limiter.IsAllowed(student.ID, "unknown")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, -1, info.Limit)
}

func TestRateLimitService_Middleware(t *testing.T) {
	limiter, _ := newTestRateLimiter(t)
	limiter.configs[EndpointProfileUpdate].MaxRequests = 1

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(shared.UserID, student.ID)
		return c.Next()
	})
	app.Patch("/profile", limiter.UserBasedRateLimit(EndpointProfileUpdate), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	resp, err = app.Test(httptest.NewRequest(http.MethodPatch, "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}
