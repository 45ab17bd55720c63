package client

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, app *fiber.App) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func fastRetry() Option {
	return WithRetryPolicy(RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond})
}

func TestClient_GetProfileRetriesServerErrors(t *testing.T) {
	var calls int32
	app := fiber.New()
	app.Get("/api/v1/profiles/:id", func(c *fiber.Ctx) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return shared.ResponseJSON(c, fiber.StatusServiceUnavailable, "Database unavailable", nil)
		}
		assert.Equal(t, "Bearer tok", c.Get(fiber.HeaderAuthorization))
		return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.ProfileResponse{
			ID: c.Params("id"), DisplayName: "Lan", Role: shared.RoleStudent, GradeLevel: 5,
		})
	})

	c := New(serve(t, app), "tok", fastRetry())
	profile, err := c.GetProfile(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, "student-1", profile.ID)
	assert.Equal(t, "Lan", profile.DisplayName)
	assert.Equal(t, 5, profile.GradeLevel)
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	app := fiber.New()
	app.Patch("/api/v1/profiles/:id", func(c *fiber.Ctx) error {
		atomic.AddInt32(&calls, 1)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:    fiber.StatusBadRequest,
			Message: "Validation failed",
			Errors:  []dto.ValidationError{{Field: "grade_level", Message: "grade_level must be at most 12"}},
		})
	})

	grade := 13
	c := New(serve(t, app), "tok", fastRetry())
	_, err := c.UpdateProfile(context.Background(), "student-1", dto.UpdateProfileRequest{GradeLevel: &grade})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, fiber.StatusBadRequest, StatusCode(err))
	assert.Contains(t, err.Error(), "grade_level must be at most 12")
}

func TestClient_RetryStopsOnCancel(t *testing.T) {
	var calls int32
	app := fiber.New()
	app.Get("/api/v1/profiles/:id", func(c *fiber.Ctx) error {
		atomic.AddInt32(&calls, 1)
		return shared.ResponseJSON(c, fiber.StatusInternalServerError, "boom", nil)
	})

	c := New(serve(t, app), "tok", WithRetryPolicy(RetryPolicy{MaxAttempts: 5, BaseDelay: time.Second, MaxDelay: time.Second}))
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := c.GetProfile(ctx, "student-1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_ProgressCalls(t *testing.T) {
	var got dto.UpdateProgressRequest
	app := fiber.New()
	app.Post("/api/v1/lectures/:id/progress", func(c *fiber.Ctx) error {
		require.NoError(t, c.BodyParser(&got))
		return shared.ResponseJSON(c, fiber.StatusOK, "Progress updated", dto.ProgressUpdateResponse{
			Progress: dto.LectureProgressResponse{LectureID: c.Params("id"), WatchPercentage: got.Progress},
		})
	})
	app.Post("/api/v1/lectures/:id/complete", func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, fiber.StatusOK, "Lecture completed", dto.CompleteLectureResponse{
			Progress:      dto.LectureProgressResponse{LectureID: c.Params("id"), IsCompleted: true},
			NextLectureID: "lec-2",
		})
	})
	app.Get("/api/v1/lectures/byChapter/:chapterId", func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.ChapterLecturesResponse{
			ChapterID: c.Params("chapterId") + "/" + c.Query("studentId"),
		})
	})

	c := New(serve(t, app), "tok")
	ctx := context.Background()

	updated, err := c.UpdateProgress(ctx, "lec-1", dto.UpdateProgressRequest{Progress: 37.5, TimeSpent: 12, Position: 45})
	require.NoError(t, err)
	assert.Equal(t, 37.5, updated.Progress.WatchPercentage)
	assert.Equal(t, dto.UpdateProgressRequest{Progress: 37.5, TimeSpent: 12, Position: 45}, got)

	done, err := c.CompleteLecture(ctx, "lec-1", dto.CompleteLectureRequest{TimeSpent: 60})
	require.NoError(t, err)
	assert.True(t, done.Progress.IsCompleted)
	assert.Equal(t, "lec-2", done.NextLectureID)

	list, err := c.GetChapterLectures(ctx, "ch-1", "student-4")
	require.NoError(t, err)
	assert.Equal(t, "ch-1/student-4", list.ChapterID)

	_, err = c.GetOverview(ctx, "student-4")
	assert.Equal(t, fiber.StatusNotFound, StatusCode(err))
}
