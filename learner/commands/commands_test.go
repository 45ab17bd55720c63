package commands

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/playback"
	"github.com/lac-hong-legacy/lecture_api/progression"
	"github.com/lac-hong-legacy/lecture_api/services"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func chapterFixture() *dto.ChapterLecturesResponse {
	lecture := func(id, title string, order int, status progression.LectureStatus) dto.LectureWithStatus {
		return dto.LectureWithStatus{
			LectureResponse: dto.LectureResponse{ID: id, Title: title, Order: order, ContentType: shared.ContentTypeVideo},
			Status:          status,
		}
	}
	current := lecture("lec-2", "Quarters", 2, progression.StatusCurrent)
	current.Progress = &dto.LectureProgressResponse{LectureID: "lec-2", WatchPercentage: 40}

	return &dto.ChapterLecturesResponse{
		ChapterID: "ch-1",
		Lectures: []dto.LectureWithStatus{
			lecture("lec-1", "Halves", 1, progression.StatusCompleted),
			current,
			lecture("lec-3", "Eighths", 3, progression.StatusUpcoming),
		},
		Summary: progression.Summary{Total: 3, Completed: 1, Percent: 33.33, CurrentLectureID: "lec-2"},
	}
}

func TestRenderChapter(t *testing.T) {
	out := renderChapter(chapterFixture())

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "1/3 lectures")
	assert.Contains(t, out, "Halves")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "40% watched")
	assert.Contains(t, out, "Locked")
	assert.Contains(t, out, "Chapter test unlocks after the last lecture")
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "45s", formatSeconds(45))
	assert.Equal(t, "2m05s", formatSeconds(125))
	assert.Equal(t, "1h01m", formatSeconds(3660))
}

func TestChapterCmd(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/lectures/byChapter/:chapterId", func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) != "Bearer tok" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", nil)
		}
		return shared.ResponseJSON(c, fiber.StatusOK, "Success", chapterFixture())
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	api := "http://" + ln.Addr().String()

	out, err := execute(t, "chapter", "ch-1", "--api", api, "--token", "tok", "--json")
	require.NoError(t, err)
	var got dto.ChapterLecturesResponse
	require.NoError(t, sonic.UnmarshalString(out, &got))
	require.Len(t, got.Lectures, 3)
	assert.Equal(t, progression.StatusCurrent, got.Lectures[1].Status)

	_, err = execute(t, "chapter", "ch-1", "--api", api, "--token", "wrong")
	assert.ErrorContains(t, err, "401")
}

func TestChapterCmd_NeedsToken(t *testing.T) {
	t.Setenv("LEARNER_TOKEN", "")
	_, err := execute(t, "chapter", "ch-1", "--api", "http://127.0.0.1:1")
	assert.ErrorContains(t, err, "no token")
}

func TestTokenCmd(t *testing.T) {
	out, err := execute(t, "token", "parent-1", "--secret", "s3cret", "--role", shared.RoleParent)
	require.NoError(t, err)

	claims, err := services.NewJWTService("s3cret", time.Hour).VerifyJWTToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "parent-1", claims.UserID)
	assert.Equal(t, shared.RoleParent, claims.Role)

	_, err = execute(t, "token", "x", "--secret", "s3cret", "--role", "teacher")
	assert.Error(t, err)
}

func TestSyncCmd_ListEmptyMirror(t *testing.T) {
	out, err := execute(t, "sync", "--list", "--mirror", ":memory:")
	require.NoError(t, err)
	assert.Contains(t, out, "Mirror is empty")
}

func TestPlayModel_PlaysToTheEnd(t *testing.T) {
	var updates []playback.Update
	m := newPlayModel(
		&dto.LectureResponse{Title: "Halves"},
		&dto.LectureProgressResponse{},
		20, 8,
	)
	m.tracker = playback.New(func(u playback.Update) { updates = append(updates, u) }, playback.WithConfig(trackerConfig(m.step)))

	for i := 0; i < 20 && !m.ended; i++ {
		m.Update(tickMsg(time.Now()))
	}

	require.True(t, m.ended)
	assert.Equal(t, 20.0, m.position)
	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.True(t, last.Ended)
	assert.Equal(t, 100.0, last.Percent)
	assert.Equal(t, 18, last.TimeSpent)
	assert.Contains(t, m.View(), "ended")
}

func TestPlayModel_ResumesFromLastPosition(t *testing.T) {
	m := newPlayModel(&dto.LectureResponse{Title: "Halves"}, &dto.LectureProgressResponse{LastPosition: 12}, 60, 1)
	assert.Equal(t, 12.0, m.position)

	m = newPlayModel(&dto.LectureResponse{Title: "Halves"}, &dto.LectureProgressResponse{LastPosition: 12, IsCompleted: true}, 60, 1)
	assert.Zero(t, m.position)
}
