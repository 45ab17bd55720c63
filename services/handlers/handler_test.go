package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgressService struct {
	ProgressServiceInterface

	gotActor     shared.Actor
	gotStudentID string
	gotLectureID string
	gotUpdate    dto.UpdateProgressRequest
	err          error
}

func (f *fakeProgressService) UpdateProgress(_ context.Context, actor shared.Actor, lectureID string, req dto.UpdateProgressRequest) (*dto.ProgressUpdateResponse, error) {
	f.gotActor, f.gotLectureID, f.gotUpdate = actor, lectureID, req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ProgressUpdateResponse{Progress: dto.LectureProgressResponse{LectureID: lectureID, WatchPercentage: req.Progress}}, nil
}

func (f *fakeProgressService) GetLectureProgress(actor shared.Actor, studentID, lectureID string) (*dto.LectureProgressResponse, error) {
	f.gotActor, f.gotStudentID, f.gotLectureID = actor, studentID, lectureID
	return &dto.LectureProgressResponse{LectureID: lectureID}, f.err
}

func (f *fakeProgressService) CompleteLecture(_ context.Context, actor shared.Actor, lectureID string, req dto.CompleteLectureRequest) (*dto.CompleteLectureResponse, error) {
	f.gotActor, f.gotLectureID = actor, lectureID
	return &dto.CompleteLectureResponse{ChapterID: "chapter-1"}, f.err
}

func newTestApp(actor shared.Actor) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := shared.GetAppError(err); ok {
				return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
			}
			return shared.ResponseInternalError(c, err)
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(shared.UserID, actor.ID)
		c.Locals(shared.UserRole, actor.Role)
		return c.Next()
	})
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestProgressHandler_UpdateProgress(t *testing.T) {
	actor := shared.Actor{ID: "student-1", Role: shared.RoleStudent}
	svc := &fakeProgressService{}
	h := NewProgressHandler(svc)

	app := newTestApp(actor)
	app.Post("/lectures/:id/progress", h.UpdateProgress)

	status, body := send(t, app, http.MethodPost, "/lectures/lec-1/progress", `{"progress": 42.5, "time_spent": 30, "position": 61}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, actor, svc.gotActor)
	assert.Equal(t, "lec-1", svc.gotLectureID)
	assert.Equal(t, dto.UpdateProgressRequest{Progress: 42.5, TimeSpent: 30, Position: 61}, svc.gotUpdate)

	var resp shared.Response
	require.NoError(t, sonic.UnmarshalString(body, &resp))
	assert.Equal(t, "Progress updated", resp.Message)
}

func TestProgressHandler_UpdateProgressValidation(t *testing.T) {
	svc := &fakeProgressService{}
	app := newTestApp(shared.Actor{ID: "student-1", Role: shared.RoleStudent})
	app.Post("/lectures/:id/progress", NewProgressHandler(svc).UpdateProgress)

	status, body := send(t, app, http.MethodPost, "/lectures/lec-1/progress", `{"progress": -1}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "progress must be at least 0")
	assert.Empty(t, svc.gotLectureID)

	status, _ = send(t, app, http.MethodPost, "/lectures/lec-1/progress", `{"progress": `)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProgressHandler_PassesServiceErrors(t *testing.T) {
	svc := &fakeProgressService{err: shared.NewForbiddenError(errors.New("locked"), "Lecture is locked")}
	app := newTestApp(shared.Actor{ID: "student-1", Role: shared.RoleStudent})
	app.Post("/lectures/:id/progress", NewProgressHandler(svc).UpdateProgress)

	status, body := send(t, app, http.MethodPost, "/lectures/lec-2/progress", `{"progress": 10}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, "Lecture is locked")
}

func TestProgressHandler_StudentDefaultsToCaller(t *testing.T) {
	svc := &fakeProgressService{}
	app := newTestApp(shared.Actor{ID: "parent-1", Role: shared.RoleParent})
	h := NewProgressHandler(svc)
	app.Get("/lectures/:id/progress", h.GetLectureProgress)

	status, _ := send(t, app, http.MethodGet, "/lectures/lec-1/progress", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "parent-1", svc.gotStudentID)

	status, _ = send(t, app, http.MethodGet, "/lectures/lec-1/progress?studentId=student-7", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "student-7", svc.gotStudentID)
}

func TestProgressHandler_CompleteWithoutBody(t *testing.T) {
	svc := &fakeProgressService{}
	app := newTestApp(shared.Actor{ID: "student-1", Role: shared.RoleStudent})
	app.Post("/lectures/:id/complete", NewProgressHandler(svc).CompleteLecture)

	status, body := send(t, app, http.MethodPost, "/lectures/lec-1/complete", "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "lec-1", svc.gotLectureID)
}

type fakeCatalogService struct {
	CatalogServiceInterface

	created *dto.CreateLectureRequest
}

func (f *fakeCatalogService) CreateLecture(_ context.Context, req dto.CreateLectureRequest) (*dto.LectureResponse, error) {
	f.created = &req
	return &dto.LectureResponse{ID: "lec-1", ChapterID: req.ChapterID, Title: req.Title}, nil
}

func (f *fakeCatalogService) ListChapters(subjectID string) ([]dto.ChapterResponse, error) {
	return []dto.ChapterResponse{{ID: "chapter-1", SubjectID: subjectID}}, nil
}

func TestCatalogHandler_CreateLectureValidation(t *testing.T) {
	svc := &fakeCatalogService{}
	app := newTestApp(shared.Actor{ID: "admin-1", Role: shared.RoleAdmin})
	app.Post("/lectures", NewCatalogHandler(svc).CreateLecture)

	// a video lecture needs a URL unless the upload follows
	status, body := send(t, app, http.MethodPost, "/lectures", `{"chapter_id":"c1","title":"Intro","content_type":"video"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "video_url is required for video lectures")
	assert.Nil(t, svc.created)

	status, _ = send(t, app, http.MethodPost, "/lectures", `{"chapter_id":"c1","title":"Intro","content_type":"audio"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = send(t, app, http.MethodPost, "/lectures", `{"chapter_id":"c1","title":"Intro","content_type":"video","upload_pending":true}`)
	require.Equal(t, http.StatusCreated, status, body)
	require.NotNil(t, svc.created)
	assert.Equal(t, "c1", svc.created.ChapterID)
}

func TestCatalogHandler_ListChaptersNeedsSubject(t *testing.T) {
	app := newTestApp(shared.Actor{ID: "student-1", Role: shared.RoleStudent})
	app.Get("/chapters", NewCatalogHandler(&fakeCatalogService{}).ListChapters)

	status, _ := send(t, app, http.MethodGet, "/chapters", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := send(t, app, http.MethodGet, "/chapters?subjectId=s1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"subject_id":"s1"`)
}
