package repositories

import (
	"sync"
	"testing"
	"time"

	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.Models()...))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func seedChapter(t *testing.T, repo *CatalogRepository, orders ...int) (*model.Chapter, []model.Lecture) {
	t.Helper()

	subject := &model.Subject{Name: "Mathematics"}
	require.NoError(t, repo.CreateSubject(subject))

	chapter := &model.Chapter{SubjectID: subject.ID, Title: "Fractions", Order: 1}
	require.NoError(t, repo.CreateChapter(chapter))

	var lectures []model.Lecture
	for _, order := range orders {
		lecture := model.Lecture{ChapterID: chapter.ID, Title: "Lecture", Order: order, ContentType: "video"}
		require.NoError(t, repo.CreateLecture(&lecture))
		lectures = append(lectures, lecture)
	}
	return chapter, lectures
}

func TestCatalogRepository_ListLecturesSortedByOrder(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t))
	chapter, _ := seedChapter(t, repo, 3, 1, 2)

	lectures, err := repo.ListLectures(chapter.ID)
	require.NoError(t, err)
	require.Len(t, lectures, 3)
	assert.Equal(t, 1, lectures[0].Order)
	assert.Equal(t, 2, lectures[1].Order)
	assert.Equal(t, 3, lectures[2].Order)

	counts, err := repo.CountLecturesByChapter([]string{chapter.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 3, counts[chapter.ID])
	assert.Zero(t, counts["missing"])
}

func TestCatalogRepository_DuplicateOrderRejected(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t))
	chapter, _ := seedChapter(t, repo, 1)

	err := repo.CreateLecture(&model.Lecture{ChapterID: chapter.ID, Title: "Again", Order: 1})
	assert.Error(t, err)
}

func TestProgressRepository_MergeIsMonotone(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	merge := func(pct float64, spent int) *model.LectureProgress {
		row, _, err := repo.MergeProgress(ProgressMerge{
			StudentID: "s1", LectureID: "l1", ChapterID: "c1",
			WatchPercentage: pct, TimeSpent: spent,
		})
		require.NoError(t, err)
		return row
	}

	row := merge(50, 120)
	assert.Equal(t, 50.0, row.WatchPercentage)
	assert.Equal(t, 120, row.TimeSpent)

	row = merge(30, 60)
	assert.Equal(t, 50.0, row.WatchPercentage)
	assert.Equal(t, 120, row.TimeSpent)

	row = merge(75, 200)
	assert.Equal(t, 75.0, row.WatchPercentage)
	assert.Equal(t, 200, row.TimeSpent)
	assert.False(t, row.IsCompleted)

	// replaying the same report changes nothing
	again := merge(75, 200)
	assert.Equal(t, row.ID, again.ID)
	assert.Equal(t, row.WatchPercentage, again.WatchPercentage)
}

func TestProgressRepository_CompletionIsSticky(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	row, newly, err := repo.MergeProgress(ProgressMerge{
		StudentID: "s1", LectureID: "l1", ChapterID: "c1",
		WatchPercentage: 92, TimeSpent: 300, Complete: true, At: at,
	})
	require.NoError(t, err)
	assert.True(t, newly)
	assert.True(t, row.IsCompleted)
	assert.Equal(t, 100.0, row.WatchPercentage)
	require.NotNil(t, row.CompletedAt)

	row, newly, err = repo.MergeProgress(ProgressMerge{
		StudentID: "s1", LectureID: "l1", ChapterID: "c1",
		WatchPercentage: 10, TimeSpent: 5, Complete: true, At: at.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, newly)
	assert.True(t, row.IsCompleted)
	assert.Equal(t, 100.0, row.WatchPercentage)
	assert.Equal(t, 300, row.TimeSpent)
	assert.True(t, row.CompletedAt.Equal(at))
}

func TestProgressRepository_ConcurrentMergesKeepMaximum(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(pct int) {
			defer wg.Done()
			_, _, err := repo.MergeProgress(ProgressMerge{
				StudentID: "s1", LectureID: "l1", ChapterID: "c1",
				WatchPercentage: float64(pct * 4), TimeSpent: pct,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	row, err := repo.GetProgress("s1", "l1")
	require.NoError(t, err)
	assert.Equal(t, 80.0, row.WatchPercentage)
	assert.Equal(t, 20, row.TimeSpent)

	rows, err := repo.ListProgressByChapter("s1", "c1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestProgressRepository_TestAttempts(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	require.NoError(t, repo.CreateTestAttempt(&model.ChapterTestAttempt{StudentID: "s1", ChapterID: "c1", Score: 40}))
	require.NoError(t, repo.CreateTestAttempt(&model.ChapterTestAttempt{StudentID: "s1", ChapterID: "c1", Score: 80, Passed: true}))
	require.NoError(t, repo.CreateTestAttempt(&model.ChapterTestAttempt{StudentID: "s2", ChapterID: "c1", Score: 10}))

	attempts, err := repo.ListTestAttempts("s1", "c1")
	require.NoError(t, err)
	assert.Len(t, attempts, 2)

	passed, err := repo.ListPassedChapters("s1")
	require.NoError(t, err)
	assert.True(t, passed["c1"])

	passed, err = repo.ListPassedChapters("s2")
	require.NoError(t, err)
	assert.Empty(t, passed)
}

func TestRateLimitRepository_Lifecycle(t *testing.T) {
	repo := NewRateLimitRepository(newTestDB(t))
	now := time.Now()

	got, err := repo.GetRateLimit("1.2.3.4", "api_general")
	require.NoError(t, err)
	assert.Nil(t, got)

	rl := &model.RateLimit{Identifier: "1.2.3.4", EndpointType: "api_general", RequestCount: 1, WindowStart: now.Add(-2 * time.Hour)}
	require.NoError(t, repo.SaveRateLimit(rl))

	got, err = repo.GetRateLimit("1.2.3.4", "api_general")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.RequestCount)

	total, blocked, err := repo.Stats(now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.EqualValues(t, 0, blocked)

	removed, err := repo.CleanupOldRecords(now.Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}
