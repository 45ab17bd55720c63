package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// studentFor resolves the student a read is about. It defaults to the caller.
func studentFor(c *fiber.Ctx, actor shared.Actor) string {
	if id := c.Query("studentId"); id != "" {
		return id
	}
	return actor.ID
}

// ==================== LECTURES ====================

// @Summary Lectures of a chapter with status
// @Description Lectures in order with completed/current/upcoming status and the caller's progress
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param chapterId path string true "Chapter ID"
// @Param studentId query string false "Student ID (defaults to the caller)"
// @Success 200 {object} shared.Response{data=dto.ChapterLecturesResponse}
// @Failure 403 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/v1/lectures/byChapter/{chapterId} [get]
func (h *ProgressHandler) GetChapterLectures(c *fiber.Ctx) error {
	actor := shared.CurrentActor(c)

	lectures, err := h.progressSvc.GetChapterLectures(c.UserContext(), actor, studentFor(c, actor), c.Params("chapterId"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lectures)
}

// @Summary Get lecture progress
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Lecture ID"
// @Param studentId query string false "Student ID (defaults to the caller)"
// @Success 200 {object} shared.Response{data=dto.LectureProgressResponse}
// @Router /api/v1/lectures/{id}/progress [get]
func (h *ProgressHandler) GetLectureProgress(c *fiber.Ctx) error {
	actor := shared.CurrentActor(c)

	progress, err := h.progressSvc.GetLectureProgress(actor, studentFor(c, actor), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", progress)
}

// @Summary Update lecture progress
// @Description Merges the reported watch percentage and time spent with the stored record. Values never decrease.
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Lecture ID"
// @Param request body dto.UpdateProgressRequest true "Progress"
// @Success 200 {object} shared.Response{data=dto.ProgressUpdateResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} shared.Response
// @Failure 429 {object} shared.Response
// @Router /api/v1/lectures/{id}/progress [post]
func (h *ProgressHandler) UpdateProgress(c *fiber.Ctx) error {
	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.progressSvc.UpdateProgress(c.UserContext(), shared.CurrentActor(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Progress updated", resp)
}

// @Summary Complete lecture
// @Description Marks the lecture completed and returns the recomputed chapter statuses
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Lecture ID"
// @Param request body dto.CompleteLectureRequest false "Time spent"
// @Success 200 {object} shared.Response{data=dto.CompleteLectureResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/lectures/{id}/complete [post]
func (h *ProgressHandler) CompleteLecture(c *fiber.Ctx) error {
	var req dto.CompleteLectureRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return shared.NewBadRequestError(err, "Invalid request")
		}
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.progressSvc.CompleteLecture(c.UserContext(), shared.CurrentActor(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Lecture completed", resp)
}

// ==================== OVERVIEW ====================

// @Summary Student progress overview
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param studentId path string true "Student ID"
// @Success 200 {object} shared.Response{data=dto.OverviewResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/student-progress/{studentId}/overview [get]
func (h *ProgressHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.progressSvc.GetOverview(c.UserContext(), shared.CurrentActor(c), c.Params("studentId"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", overview)
}

// ==================== CHAPTER TEST ====================

// @Summary Chapter test status
// @Tags progress
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param chapterId path string true "Chapter ID"
// @Param studentId query string false "Student ID (defaults to the caller)"
// @Success 200 {object} shared.Response{data=dto.ChapterTestStatusResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/chapters/{chapterId}/test [get]
func (h *ProgressHandler) GetChapterTest(c *fiber.Ctx) error {
	actor := shared.CurrentActor(c)

	status, err := h.progressSvc.GetChapterTest(actor, studentFor(c, actor), c.Params("chapterId"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", status)
}

// @Summary Submit chapter test attempt
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param chapterId path string true "Chapter ID"
// @Param request body dto.SubmitTestAttemptRequest true "Attempt"
// @Success 201 {object} shared.Response{data=dto.TestAttemptResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/chapters/{chapterId}/test/attempts [post]
func (h *ProgressHandler) SubmitTestAttempt(c *fiber.Ctx) error {
	var req dto.SubmitTestAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	attempt, err := h.progressSvc.SubmitTestAttempt(c.UserContext(), shared.CurrentActor(c), c.Params("chapterId"), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusCreated, "Attempt recorded", attempt)
}
