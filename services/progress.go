package services

import (
	"context"
	"errors"
	"math"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/lac-hong-legacy/lecture_api/progression"
	"github.com/lac-hong-legacy/lecture_api/services/repositories"
	"github.com/lac-hong-legacy/lecture_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const PROGRESS_SVC = "progress_svc"

const overviewKeyPrefix = "overview:"

var (
	errLectureLocked   = errors.New("lecture is not unlocked for the student")
	errTestLocked      = errors.New("chapter lectures are not all completed")
	errNoChapterTest   = errors.New("chapter has no test")
	errNoAttemptsLeft  = errors.New("no attempts remaining")
	errStudentRequired = errors.New("student id is required")
)

// ProgressService is the Progress Store: it merges progress reports,
// records completions and derives lecture statuses and overviews.
type ProgressService struct {
	appContext.DefaultService

	db           DatabaseProvider
	progressRepo *repositories.ProgressRepository
	catalogRepo  *repositories.CatalogRepository
	profileRepo  *repositories.ProfileRepository

	catalog *CatalogService
	cache   *RedisService
	monitor *MonitoringService

	completionThreshold float64
	overviewTTL         time.Duration
	now                 func() time.Time
}

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

type ProgressOption func(*ProgressService)

func WithOverviewCache(cache *RedisService, ttl time.Duration) ProgressOption {
	return func(svc *ProgressService) {
		svc.cache = cache
		svc.overviewTTL = ttl
	}
}

// WithCatalog lets lecture listings carry presigned video URLs.
func WithCatalog(catalog *CatalogService) ProgressOption {
	return func(svc *ProgressService) {
		svc.catalog = catalog
	}
}

func WithProgressClock(now func() time.Time) ProgressOption {
	return func(svc *ProgressService) {
		svc.now = now
	}
}

func NewProgressService(db DatabaseProvider, opts ...ProgressOption) *ProgressService {
	svc := &ProgressService{
		completionThreshold: shared.DefaultCompletionThreshold,
		overviewTTL:         time.Minute,
		now:                 time.Now,
	}
	svc.bind(db)
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	svc.completionThreshold = shared.DefaultCompletionThreshold
	if v, err := strconv.ParseFloat(os.Getenv("PROGRESS_COMPLETION_THRESHOLD"), 64); err == nil && v > 0 && v <= 100 {
		svc.completionThreshold = v
	}
	svc.overviewTTL = time.Minute
	if ttl, err := time.ParseDuration(os.Getenv("OVERVIEW_CACHE_TTL")); err == nil && ttl > 0 {
		svc.overviewTTL = ttl
	}
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.bind(svc.Service(DATABASE_SVC).(DatabaseProvider))
	if catalog, ok := svc.Service(CATALOG_SVC).(*CatalogService); ok {
		svc.catalog = catalog
	}
	if cache, ok := svc.Service(REDIS_SVC).(*RedisService); ok {
		svc.cache = cache
	}
	if monitor, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok {
		svc.monitor = monitor
	}
	return nil
}

func (svc *ProgressService) bind(db DatabaseProvider) {
	svc.db = db
	svc.progressRepo = repositories.NewProgressRepository(db.Db())
	svc.catalogRepo = repositories.NewCatalogRepository(db.Db())
	svc.profileRepo = repositories.NewProfileRepository(db.Db())
}

// ==================== LECTURE PROGRESS ====================

// UpdateProgress merges a progress report of the actor on a lecture. Reports
// on a locked lecture are rejected; a report at or above the completion
// threshold also completes the lecture.
func (svc *ProgressService) UpdateProgress(ctx context.Context, actor shared.Actor, lectureID string, req dto.UpdateProgressRequest) (*dto.ProgressUpdateResponse, error) {
	if err := checkWriteAccess(actor); err != nil {
		return nil, err
	}

	lecture, err := svc.unlockedLecture(actor.ID, lectureID)
	if err != nil {
		return nil, err
	}

	position := req.Position
	row, newlyCompleted, err := svc.progressRepo.MergeProgress(repositories.ProgressMerge{
		StudentID:       actor.ID,
		LectureID:       lecture.ID,
		ChapterID:       lecture.ChapterID,
		WatchPercentage: req.Progress,
		TimeSpent:       req.TimeSpent,
		Position:        &position,
		Complete:        req.Progress >= svc.completionThreshold,
		At:              svc.now(),
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	clamped := row.WatchPercentage > req.Progress
	svc.monitor.RecordProgressUpdate(clamped)
	if newlyCompleted {
		svc.monitor.RecordCompletion()
	}
	svc.invalidateOverview(ctx, actor.ID)

	return &dto.ProgressUpdateResponse{
		Progress: toProgressResponse(*row),
		Clamped:  clamped,
	}, nil
}

// CompleteLecture marks the lecture completed for the actor and returns the
// chapter's statuses after the change.
func (svc *ProgressService) CompleteLecture(ctx context.Context, actor shared.Actor, lectureID string, req dto.CompleteLectureRequest) (*dto.CompleteLectureResponse, error) {
	if err := checkWriteAccess(actor); err != nil {
		return nil, err
	}

	lecture, err := svc.unlockedLecture(actor.ID, lectureID)
	if err != nil {
		return nil, err
	}

	row, newlyCompleted, err := svc.progressRepo.MergeProgress(repositories.ProgressMerge{
		StudentID: actor.ID,
		LectureID: lecture.ID,
		ChapterID: lecture.ChapterID,
		TimeSpent: req.TimeSpent,
		Complete:  true,
		At:        svc.now(),
	})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if newlyCompleted {
		svc.monitor.RecordCompletion()
	}
	svc.invalidateOverview(ctx, actor.ID)

	lectures, completed, err := svc.chapterState(actor.ID, lecture.ChapterID)
	if err != nil {
		return nil, err
	}

	statuses := progression.Statuses(lectures, completed)
	resp := &dto.CompleteLectureResponse{
		Progress:             toProgressResponse(*row),
		ChapterID:            lecture.ChapterID,
		Statuses:             make([]dto.LectureStatusEntry, 0, len(lectures)),
		ChapterTestAvailable: progression.ChapterTestAvailable(lectures, completed),
	}
	for i, l := range lectures {
		resp.Statuses = append(resp.Statuses, dto.LectureStatusEntry{LectureID: l.ID, Status: statuses[i]})
	}
	if idx := progression.CurrentIndex(lectures, completed); idx >= 0 {
		resp.NextLectureID = lectures[idx].ID
	}
	return resp, nil
}

// GetLectureProgress returns the stored record, or an empty one when the
// student has not started the lecture yet.
func (svc *ProgressService) GetLectureProgress(actor shared.Actor, studentID, lectureID string) (*dto.LectureProgressResponse, error) {
	if err := svc.checkRead(actor, studentID); err != nil {
		return nil, err
	}

	lecture, err := svc.catalogRepo.GetLecture(lectureID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	row, err := svc.progressRepo.GetProgress(studentID, lecture.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.LectureProgressResponse{LectureID: lecture.ID}, nil
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	resp := toProgressResponse(*row)
	return &resp, nil
}

// GetChapterLectures lists the chapter's lectures in order with the status
// and progress of studentID. Upcoming lectures carry no video or content
// unless an admin asks.
func (svc *ProgressService) GetChapterLectures(ctx context.Context, actor shared.Actor, studentID, chapterID string) (*dto.ChapterLecturesResponse, error) {
	if err := svc.checkRead(actor, studentID); err != nil {
		return nil, err
	}

	if _, err := svc.catalogRepo.GetChapter(chapterID); err != nil {
		return nil, svc.db.HandleError(err)
	}

	rows, err := svc.catalogRepo.ListLectures(chapterID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	records, err := svc.progressRepo.ListProgressByChapter(studentID, chapterID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	byLecture := make(map[string]model.LectureProgress, len(records))
	for _, r := range records {
		byLecture[r.LectureID] = r
	}

	lectures := toProgressionLectures(rows)
	completed := completedSet(records)
	statuses := progression.Statuses(lectures, completed)
	statusByID := make(map[string]progression.LectureStatus, len(lectures))
	for i, l := range lectures {
		statusByID[l.ID] = statuses[i]
	}

	resp := &dto.ChapterLecturesResponse{
		ChapterID: chapterID,
		Lectures:  make([]dto.LectureWithStatus, 0, len(rows)),
		Summary:   progression.Summarize(lectures, completed),
	}
	for _, row := range rows {
		item := dto.LectureWithStatus{Status: statusByID[row.ID]}
		switch {
		case !item.Status.Accessible() && !actor.IsAdmin():
			item.LectureResponse = toLectureResponse(row)
			item.VideoURL, item.Content = "", ""
		case svc.catalog != nil:
			item.LectureResponse = svc.catalog.toLectureResponse(ctx, row)
		default:
			item.LectureResponse = toLectureResponse(row)
		}
		if r, ok := byLecture[row.ID]; ok {
			p := toProgressResponse(r)
			item.Progress = &p
		}
		resp.Lectures = append(resp.Lectures, item)
	}
	return resp, nil
}

// ==================== OVERVIEW ====================

// GetOverview aggregates the student's progress per subject and chapter.
// Results are cached per student and dropped on every write.
func (svc *ProgressService) GetOverview(ctx context.Context, actor shared.Actor, studentID string) (*dto.OverviewResponse, error) {
	if studentID == "" {
		return nil, shared.NewBadRequestError(errStudentRequired, "Student id is required")
	}
	if err := svc.checkRead(actor, studentID); err != nil {
		return nil, err
	}

	if svc.cache != nil {
		var cached dto.OverviewResponse
		hit, err := svc.cache.GetJSON(ctx, overviewKeyPrefix+studentID, &cached)
		if err != nil {
			log.WithField("student_id", studentID).WithError(err).Warn("Overview cache read failed")
		}
		svc.monitor.RecordOverviewCache(hit)
		if hit {
			return &cached, nil
		}
	}

	overview, err := svc.buildOverview(studentID)
	if err != nil {
		return nil, err
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, overviewKeyPrefix+studentID, overview, svc.overviewTTL); err != nil {
			log.WithField("student_id", studentID).WithError(err).Warn("Overview cache write failed")
		}
	}
	return overview, nil
}

func (svc *ProgressService) buildOverview(studentID string) (*dto.OverviewResponse, error) {
	subjects, err := svc.catalogRepo.ListSubjects()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	records, err := svc.progressRepo.ListProgressByStudent(studentID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	passed, err := svc.progressRepo.ListPassedChapters(studentID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	completed := completedSet(records)
	spentByChapter := make(map[string]int)
	for _, r := range records {
		spentByChapter[r.ChapterID] += r.TimeSpent
	}

	overview := &dto.OverviewResponse{
		StudentID:   studentID,
		Subjects:    make([]dto.SubjectOverview, 0, len(subjects)),
		GeneratedAt: svc.now().UTC(),
	}

	for _, subject := range subjects {
		chapters, err := svc.catalogRepo.ListChapters(subject.ID)
		if err != nil {
			return nil, svc.db.HandleError(err)
		}
		ids := make([]string, 0, len(chapters))
		for _, c := range chapters {
			ids = append(ids, c.ID)
		}
		lecturesByChapter, err := svc.catalogRepo.ListLecturesForChapters(ids)
		if err != nil {
			return nil, svc.db.HandleError(err)
		}

		so := dto.SubjectOverview{
			SubjectID: subject.ID,
			Name:      subject.Name,
			Chapters:  make([]dto.ChapterOverview, 0, len(chapters)),
		}
		for _, chapter := range chapters {
			summary := progression.Summarize(toProgressionLectures(lecturesByChapter[chapter.ID]), completed)
			so.Chapters = append(so.Chapters, dto.ChapterOverview{
				ChapterID:  chapter.ID,
				Title:      chapter.Title,
				Order:      chapter.Order,
				Summary:    summary,
				TimeSpent:  spentByChapter[chapter.ID],
				HasTest:    chapter.Test.Enabled,
				TestPassed: passed[chapter.ID],
			})
			so.Completed += summary.Completed
			so.Total += summary.Total
			so.TimeSpent += spentByChapter[chapter.ID]
		}
		so.Percent = percent(so.Completed, so.Total)

		overview.Subjects = append(overview.Subjects, so)
		overview.LecturesCompleted += so.Completed
		overview.LecturesTotal += so.Total
		overview.TotalTimeSpent += so.TimeSpent
	}
	overview.Percent = percent(overview.LecturesCompleted, overview.LecturesTotal)
	return overview, nil
}

func (svc *ProgressService) invalidateOverview(ctx context.Context, studentID string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(ctx, overviewKeyPrefix+studentID); err != nil {
		log.WithField("student_id", studentID).WithError(err).Warn("Overview cache invalidation failed")
	}
}

// ==================== CHAPTER TEST ====================

func (svc *ProgressService) GetChapterTest(actor shared.Actor, studentID, chapterID string) (*dto.ChapterTestStatusResponse, error) {
	if err := svc.checkRead(actor, studentID); err != nil {
		return nil, err
	}

	chapter, err := svc.catalogRepo.GetChapter(chapterID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if !chapter.Test.Enabled {
		return nil, shared.NewNotFoundError(errNoChapterTest, "Chapter has no test")
	}

	lectures, completed, err := svc.chapterState(studentID, chapterID)
	if err != nil {
		return nil, err
	}
	attempts, err := svc.progressRepo.ListTestAttempts(studentID, chapterID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := &dto.ChapterTestStatusResponse{
		ChapterID: chapterID,
		Test: dto.ChapterTestDescriptor{
			Title:             chapter.Test.Title,
			PassingPercentage: chapter.Test.PassingPercentage,
			AttemptsAllowed:   chapter.Test.AttemptsAllowed,
		},
		AttemptsUsed:      len(attempts),
		AttemptsRemaining: attemptsRemaining(chapter.Test.AttemptsAllowed, len(attempts)),
	}
	for _, a := range attempts {
		if resp.BestScore == nil || a.Score > *resp.BestScore {
			score := a.Score
			resp.BestScore = &score
		}
		resp.Passed = resp.Passed || a.Passed
	}
	resp.Available = progression.ChapterTestAvailable(lectures, completed) && resp.AttemptsRemaining != 0
	return resp, nil
}

func (svc *ProgressService) SubmitTestAttempt(ctx context.Context, actor shared.Actor, chapterID string, req dto.SubmitTestAttemptRequest) (*dto.TestAttemptResponse, error) {
	if err := checkWriteAccess(actor); err != nil {
		return nil, err
	}

	chapter, err := svc.catalogRepo.GetChapter(chapterID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if !chapter.Test.Enabled {
		return nil, shared.NewNotFoundError(errNoChapterTest, "Chapter has no test")
	}

	lectures, completed, err := svc.chapterState(actor.ID, chapterID)
	if err != nil {
		return nil, err
	}
	if !progression.ChapterTestAvailable(lectures, completed) {
		return nil, shared.NewForbiddenError(errTestLocked, "Chapter test is locked")
	}

	previous, err := svc.progressRepo.ListTestAttempts(actor.ID, chapterID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if attemptsRemaining(chapter.Test.AttemptsAllowed, len(previous)) == 0 {
		return nil, shared.NewForbiddenError(errNoAttemptsLeft, "No attempts remaining")
	}

	attempt := &model.ChapterTestAttempt{
		StudentID: actor.ID,
		ChapterID: chapterID,
		Score:     req.Score,
		Passed:    req.Score >= chapter.Test.PassingPercentage,
		CreatedAt: svc.now(),
	}
	if err := svc.progressRepo.CreateTestAttempt(attempt); err != nil {
		return nil, svc.db.HandleError(err)
	}
	svc.monitor.RecordTestAttempt(attempt.Passed)
	svc.invalidateOverview(ctx, actor.ID)

	return &dto.TestAttemptResponse{
		ID:            attempt.ID,
		ChapterID:     chapterID,
		Score:         attempt.Score,
		Passed:        attempt.Passed,
		AttemptNumber: len(previous) + 1,
		CreatedAt:     attempt.CreatedAt,
	}, nil
}

// ==================== HELPERS ====================

func (svc *ProgressService) checkRead(actor shared.Actor, studentID string) error {
	return checkReadAccess(svc.profileRepo, actor, studentID)
}

// unlockedLecture loads the lecture and fails with 403 unless it is the
// student's current or an already completed lecture.
func (svc *ProgressService) unlockedLecture(studentID, lectureID string) (*model.Lecture, error) {
	lecture, err := svc.catalogRepo.GetLecture(lectureID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	accessible, err := lectureAccessible(svc.catalogRepo, svc.progressRepo, studentID, lecture)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if !accessible {
		return nil, shared.NewForbiddenError(errLectureLocked, "Lecture is locked")
	}
	return lecture, nil
}

func (svc *ProgressService) chapterState(studentID, chapterID string) ([]progression.Lecture, progression.CompletedSet, error) {
	rows, err := svc.catalogRepo.ListLectures(chapterID)
	if err != nil {
		return nil, nil, svc.db.HandleError(err)
	}
	records, err := svc.progressRepo.ListProgressByChapter(studentID, chapterID)
	if err != nil {
		return nil, nil, svc.db.HandleError(err)
	}
	return toProgressionLectures(rows), completedSet(records), nil
}

func toProgressionLectures(rows []model.Lecture) []progression.Lecture {
	lectures := make([]progression.Lecture, 0, len(rows))
	for _, r := range rows {
		lectures = append(lectures, progression.Lecture{ID: r.ID, Order: r.Order})
	}
	return progression.Order(lectures)
}

func completedSet(records []model.LectureProgress) progression.CompletedSet {
	set := progression.NewCompletedSet()
	for _, r := range records {
		if r.IsCompleted {
			set[r.LectureID] = struct{}{}
		}
	}
	return set
}

func attemptsRemaining(allowed, used int) int {
	if allowed <= 0 {
		return -1
	}
	if used >= allowed {
		return 0
	}
	return allowed - used
}

func percent(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(done)/float64(total)*10000) / 100
}

func toProgressResponse(p model.LectureProgress) dto.LectureProgressResponse {
	updated := p.UpdatedAt
	return dto.LectureProgressResponse{
		LectureID:       p.LectureID,
		WatchPercentage: p.WatchPercentage,
		TimeSpent:       p.TimeSpent,
		LastPosition:    p.LastPosition,
		IsCompleted:     p.IsCompleted,
		CompletedAt:     p.CompletedAt,
		UpdatedAt:       &updated,
	}
}
