package dto

import (
	"time"

	"github.com/lac-hong-legacy/lecture_api/progression"
)

// UpdateProgressRequest reports the client's high-water watch percentage and
// its cumulative time spent on the lecture. Both are merged with max on the
// server, so resending the same values is harmless.
type UpdateProgressRequest struct {
	Progress  float64 `json:"progress" validate:"gte=0,lte=100"`
	TimeSpent int     `json:"time_spent" validate:"gte=0"`
	Position  float64 `json:"position" validate:"gte=0"`
}

func (r UpdateProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteLectureRequest struct {
	TimeSpent int `json:"time_spent" validate:"gte=0"`
}

func (r CompleteLectureRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LectureProgressResponse struct {
	LectureID       string     `json:"lecture_id"`
	WatchPercentage float64    `json:"watch_percentage"`
	TimeSpent       int        `json:"time_spent"`
	LastPosition    float64    `json:"last_position"`
	IsCompleted     bool       `json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type ProgressUpdateResponse struct {
	Progress LectureProgressResponse `json:"progress"`
	// Clamped is set when the reported percentage was below the stored one.
	Clamped bool `json:"clamped"`
}

type LectureStatusEntry struct {
	LectureID string                    `json:"lecture_id"`
	Status    progression.LectureStatus `json:"status"`
}

type CompleteLectureResponse struct {
	Progress             LectureProgressResponse `json:"progress"`
	ChapterID            string                  `json:"chapter_id"`
	Statuses             []LectureStatusEntry    `json:"statuses"`
	NextLectureID        string                  `json:"next_lecture_id,omitempty"`
	ChapterTestAvailable bool                    `json:"chapter_test_available"`
}

// Overview DTOs
type ChapterOverview struct {
	ChapterID string `json:"chapter_id"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
	progression.Summary
	TimeSpent  int  `json:"time_spent"`
	HasTest    bool `json:"has_test"`
	TestPassed bool `json:"test_passed"`
}

type SubjectOverview struct {
	SubjectID string            `json:"subject_id"`
	Name      string            `json:"name"`
	Chapters  []ChapterOverview `json:"chapters"`
	Completed int               `json:"completed"`
	Total     int               `json:"total"`
	Percent   float64           `json:"percent"`
	TimeSpent int               `json:"time_spent"`
}

type OverviewResponse struct {
	StudentID         string            `json:"student_id"`
	Subjects          []SubjectOverview `json:"subjects"`
	LecturesCompleted int               `json:"lectures_completed"`
	LecturesTotal     int               `json:"lectures_total"`
	Percent           float64           `json:"percent"`
	TotalTimeSpent    int               `json:"total_time_spent"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

// Chapter test DTOs
type SubmitTestAttemptRequest struct {
	Score int `json:"score" validate:"gte=0,lte=100"`
}

func (r SubmitTestAttemptRequest) Validate() error {
	return GetValidator().Struct(r)
}

type TestAttemptResponse struct {
	ID            string    `json:"id"`
	ChapterID     string    `json:"chapter_id"`
	Score         int       `json:"score"`
	Passed        bool      `json:"passed"`
	AttemptNumber int       `json:"attempt_number"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChapterTestStatusResponse struct {
	ChapterID         string                `json:"chapter_id"`
	Test              ChapterTestDescriptor `json:"test"`
	Available         bool                  `json:"available"`
	AttemptsUsed      int                   `json:"attempts_used"`
	AttemptsRemaining int                   `json:"attempts_remaining"` // -1 when unlimited
	BestScore         *int                  `json:"best_score,omitempty"`
	Passed            bool                  `json:"passed"`
}
