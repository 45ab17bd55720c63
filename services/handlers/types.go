package handlers

import (
	"context"
	"io"

	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/shared"
)

type CatalogServiceInterface interface {
	CreateSubject(req dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	ListSubjects() ([]dto.SubjectResponse, error)
	CreateChapter(req dto.CreateChapterRequest) (*dto.ChapterResponse, error)
	GetChapter(chapterID string) (*dto.ChapterResponse, error)
	ListChapters(subjectID string) ([]dto.ChapterResponse, error)
	CreateLecture(ctx context.Context, req dto.CreateLectureRequest) (*dto.LectureResponse, error)
	GetLecture(ctx context.Context, actor shared.Actor, lectureID string) (*dto.LectureResponse, error)
	UploadLectureVideo(ctx context.Context, lectureID, filename string, reader io.Reader, size int64, contentType string) (*dto.MediaUploadResponse, error)
}

type ProgressServiceInterface interface {
	UpdateProgress(ctx context.Context, actor shared.Actor, lectureID string, req dto.UpdateProgressRequest) (*dto.ProgressUpdateResponse, error)
	CompleteLecture(ctx context.Context, actor shared.Actor, lectureID string, req dto.CompleteLectureRequest) (*dto.CompleteLectureResponse, error)
	GetLectureProgress(actor shared.Actor, studentID, lectureID string) (*dto.LectureProgressResponse, error)
	GetChapterLectures(ctx context.Context, actor shared.Actor, studentID, chapterID string) (*dto.ChapterLecturesResponse, error)
	GetOverview(ctx context.Context, actor shared.Actor, studentID string) (*dto.OverviewResponse, error)
	GetChapterTest(actor shared.Actor, studentID, chapterID string) (*dto.ChapterTestStatusResponse, error)
	SubmitTestAttempt(ctx context.Context, actor shared.Actor, chapterID string, req dto.SubmitTestAttemptRequest) (*dto.TestAttemptResponse, error)
}

type ProfileServiceInterface interface {
	GetProfile(actor shared.Actor, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(actor shared.Actor, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	ListStudents(actor shared.Actor, guardianID string) ([]dto.ProfileResponse, error)
}
