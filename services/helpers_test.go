package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = shared.Actor{ID: "admin-1", Role: shared.RoleAdmin}
	student = shared.Actor{ID: "student-1", Role: shared.RoleStudent}
	parent  = shared.Actor{ID: "parent-1", Role: shared.RoleParent}
)

func newTestDatabase(t *testing.T) *SqliteService {
	t.Helper()

	db := &SqliteService{database: ":memory:"}
	require.NoError(t, db.Start())
	t.Cleanup(db.Shutdown)
	return db
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// seedChapter creates a subject with one chapter of n video lectures ordered
// 1..n.
func seedChapter(t *testing.T, catalog *CatalogService, subjectName string, n int, test *dto.ChapterTestRequest) (*dto.ChapterResponse, []dto.LectureResponse) {
	t.Helper()

	subject, err := catalog.CreateSubject(dto.CreateSubjectRequest{Name: subjectName})
	require.NoError(t, err)

	return seedChapterIn(t, catalog, subject.ID, 1, n, test)
}

func seedChapterIn(t *testing.T, catalog *CatalogService, subjectID string, order, n int, test *dto.ChapterTestRequest) (*dto.ChapterResponse, []dto.LectureResponse) {
	t.Helper()

	chapter, err := catalog.CreateChapter(dto.CreateChapterRequest{
		SubjectID: subjectID,
		Title:     fmt.Sprintf("Chapter %d", order),
		Order:     order,
		Test:      test,
	})
	require.NoError(t, err)

	lectures := make([]dto.LectureResponse, 0, n)
	for i := 1; i <= n; i++ {
		lecture, err := catalog.CreateLecture(context.Background(), dto.CreateLectureRequest{
			ChapterID:         chapter.ID,
			Title:             fmt.Sprintf("Lecture %d", i),
			Order:             i,
			EstimatedDuration: 600,
			ContentType:       shared.ContentTypeVideo,
			VideoURL:          fmt.Sprintf("https://cdn.example.com/%d.mp4", i),
		})
		require.NoError(t, err)
		lectures = append(lectures, *lecture)
	}
	return chapter, lectures
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode)
}
