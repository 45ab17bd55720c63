package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/shared"
)

type CatalogHandler struct {
	catalogSvc CatalogServiceInterface
}

func NewCatalogHandler(catalogSvc CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// @Summary List subjects
// @Tags catalog
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.SubjectResponse}
// @Router /api/v1/subjects [get]
func (h *CatalogHandler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.catalogSvc.ListSubjects()
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", subjects)
}

// @Summary Create subject
// @Tags catalog
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} shared.Response{data=dto.SubjectResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/subjects [post]
func (h *CatalogHandler) CreateSubject(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	subject, err := h.catalogSvc.CreateSubject(req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusCreated, "Subject created", subject)
}

// @Summary List chapters of a subject
// @Tags catalog
// @Produce json
// @Security Bearer
// @Param subjectId query string true "Subject ID"
// @Success 200 {object} shared.Response{data=[]dto.ChapterResponse}
// @Router /api/v1/chapters [get]
func (h *CatalogHandler) ListChapters(c *fiber.Ctx) error {
	subjectID := c.Query("subjectId")
	if subjectID == "" {
		return shared.NewBadRequestError(nil, "subjectId is required")
	}

	chapters, err := h.catalogSvc.ListChapters(subjectID)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", chapters)
}

// @Summary Get chapter
// @Tags catalog
// @Produce json
// @Security Bearer
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} shared.Response{data=dto.ChapterResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/chapters/{chapterId} [get]
func (h *CatalogHandler) GetChapter(c *fiber.Ctx) error {
	chapter, err := h.catalogSvc.GetChapter(c.Params("chapterId"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", chapter)
}

// @Summary Create chapter
// @Tags catalog
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateChapterRequest true "Chapter"
// @Success 201 {object} shared.Response{data=dto.ChapterResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/chapters [post]
func (h *CatalogHandler) CreateChapter(c *fiber.Ctx) error {
	var req dto.CreateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	chapter, err := h.catalogSvc.CreateChapter(req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusCreated, "Chapter created", chapter)
}

// @Summary Create lecture
// @Tags catalog
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateLectureRequest true "Lecture"
// @Success 201 {object} shared.Response{data=dto.LectureResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} shared.Response
// @Router /api/v1/lectures [post]
func (h *CatalogHandler) CreateLecture(c *fiber.Ctx) error {
	var req dto.CreateLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	lecture, err := h.catalogSvc.CreateLecture(c.UserContext(), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusCreated, "Lecture created", lecture)
}

// @Summary Get lecture
// @Tags catalog
// @Produce json
// @Security Bearer
// @Param id path string true "Lecture ID"
// @Success 200 {object} shared.Response{data=dto.LectureResponse}
// @Failure 403 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/v1/lectures/{id} [get]
func (h *CatalogHandler) GetLecture(c *fiber.Ctx) error {
	lecture, err := h.catalogSvc.GetLecture(c.UserContext(), shared.CurrentActor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lecture)
}

// @Summary Upload lecture video
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path string true "Lecture ID"
// @Param video formData file true "Video file"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/lectures/{id}/video [post]
func (h *CatalogHandler) UploadLectureVideo(c *fiber.Ctx) error {
	file, err := c.FormFile("video")
	if err != nil {
		return shared.NewBadRequestError(err, "No video file provided")
	}

	src, err := file.Open()
	if err != nil {
		return shared.NewBadRequestError(err, "Unreadable video file")
	}
	defer src.Close()

	response, err := h.catalogSvc.UploadLectureVideo(c.UserContext(), c.Params("id"), file.Filename, src, file.Size, file.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Video uploaded successfully", response)
}
