package dto

import "github.com/lac-hong-legacy/lecture_api/progression"

// Subject DTOs
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Order       int    `json:"order" validate:"gte=0"`
}

func (r CreateSubjectRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SubjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// Chapter DTOs
type ChapterTestRequest struct {
	Title             string `json:"title" validate:"max=200"`
	PassingPercentage int    `json:"passing_percentage" validate:"required,min=1,max=100"`
	AttemptsAllowed   int    `json:"attempts_allowed" validate:"gte=0,lte=100"`
}

type CreateChapterRequest struct {
	SubjectID   string              `json:"subject_id" validate:"required"`
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=4000"`
	Order       int                 `json:"order" validate:"gte=0"`
	Test        *ChapterTestRequest `json:"test,omitempty"`
}

func (r CreateChapterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChapterTestDescriptor struct {
	Title             string `json:"title"`
	PassingPercentage int    `json:"passing_percentage"`
	AttemptsAllowed   int    `json:"attempts_allowed"`
}

type ChapterResponse struct {
	ID           string                 `json:"id"`
	SubjectID    string                 `json:"subject_id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Order        int                    `json:"order"`
	Test         *ChapterTestDescriptor `json:"test,omitempty"`
	LectureCount int                    `json:"lecture_count"`
}

// Lecture DTOs
type CreateLectureRequest struct {
	ChapterID         string `json:"chapter_id" validate:"required"`
	Title             string `json:"title" validate:"required,max=200"`
	Order             int    `json:"order" validate:"gte=0"`
	EstimatedDuration int    `json:"estimated_duration" validate:"gte=0"`
	ContentType       string `json:"content_type" validate:"required,oneof=video rich_text"`
	VideoURL          string `json:"video_url" validate:"omitempty,url"`
	Content           string `json:"content"`
	// UploadPending allows a video lecture without URL when the file is
	// uploaded afterwards through the video endpoint.
	UploadPending bool `json:"upload_pending"`
}

func (r CreateLectureRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LectureResponse struct {
	ID                string `json:"id"`
	ChapterID         string `json:"chapter_id"`
	Title             string `json:"title"`
	Order             int    `json:"order"`
	EstimatedDuration int    `json:"estimated_duration"`
	ContentType       string `json:"content_type"`
	VideoURL          string `json:"video_url,omitempty"`
	Content           string `json:"content,omitempty"`
}

type LectureWithStatus struct {
	LectureResponse
	Status   progression.LectureStatus `json:"status"`
	Progress *LectureProgressResponse  `json:"progress,omitempty"`
}

type ChapterLecturesResponse struct {
	ChapterID string              `json:"chapter_id"`
	Lectures  []LectureWithStatus `json:"lectures"`
	Summary   progression.Summary `json:"summary"`
}

type MediaUploadResponse struct {
	LectureID   string `json:"lecture_id"`
	ObjectName  string `json:"object_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}
