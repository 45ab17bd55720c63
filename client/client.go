// Package client is the learner-side access to the lecture API. It covers
// the calls the progression flow makes plus the profile fetch.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/dto"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []dto.ValidationError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Message)
		}
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an
// APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	retry   RetryPolicy
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8000". token is sent as a bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: defaultTimeout,
		retry:   DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []dto.ValidationError `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	a.Timeout(timeout)

	if body != nil {
		a.JSONEncoder(sonic.Marshal).JSON(body)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}

	status, raw, errs := a.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	var env envelope
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &env); err != nil {
			if status >= http.StatusBadRequest {
				return &APIError{StatusCode: status, Message: http.StatusText(status)}
			}
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{StatusCode: status, Message: msg, Fields: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := sonic.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}
	return nil
}

// ==================== PROFILE ====================

func (c *Client) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	var profile dto.ProfileResponse
	err := c.withRetry(ctx, "get_profile", func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, "/api/v1/profiles/"+url.PathEscape(userID), nil, &profile)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	var profile dto.ProfileResponse
	err := c.withRetry(ctx, "update_profile", func(ctx context.Context) error {
		return c.do(ctx, http.MethodPatch, "/api/v1/profiles/"+url.PathEscape(userID), req, &profile)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ==================== PROGRESS ====================

func (c *Client) GetOverview(ctx context.Context, studentID string) (*dto.OverviewResponse, error) {
	var overview dto.OverviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/student-progress/"+url.PathEscape(studentID)+"/overview", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// GetChapterLectures lists a chapter with statuses. An empty studentID means
// the caller.
func (c *Client) GetChapterLectures(ctx context.Context, chapterID, studentID string) (*dto.ChapterLecturesResponse, error) {
	path := "/api/v1/lectures/byChapter/" + url.PathEscape(chapterID)
	if studentID != "" {
		path += "?studentId=" + url.QueryEscape(studentID)
	}

	var lectures dto.ChapterLecturesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &lectures); err != nil {
		return nil, err
	}
	return &lectures, nil
}

func (c *Client) GetLecture(ctx context.Context, lectureID string) (*dto.LectureResponse, error) {
	var lecture dto.LectureResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/lectures/"+url.PathEscape(lectureID), nil, &lecture); err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (c *Client) GetLectureProgress(ctx context.Context, lectureID string) (*dto.LectureProgressResponse, error) {
	var progress dto.LectureProgressResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/lectures/"+url.PathEscape(lectureID)+"/progress", nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *Client) UpdateProgress(ctx context.Context, lectureID string, req dto.UpdateProgressRequest) (*dto.ProgressUpdateResponse, error) {
	var resp dto.ProgressUpdateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/lectures/"+url.PathEscape(lectureID)+"/progress", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CompleteLecture(ctx context.Context, lectureID string, req dto.CompleteLectureRequest) (*dto.CompleteLectureResponse, error) {
	var resp dto.CompleteLectureResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/lectures/"+url.PathEscape(lectureID)+"/complete", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
