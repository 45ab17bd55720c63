package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/shared"
)

type ProfileHandler struct {
	profileSvc ProfileServiceInterface
}

func NewProfileHandler(profileSvc ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// @Summary Get profile
// @Description Returns a profile. Students read their own, parents read their children's, admins read any.
// @Tags profile
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response{data=dto.ProfileResponse}
// @Failure 403 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Router /api/v1/profiles/{userId} [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.profileSvc.GetProfile(shared.CurrentActor(c), c.Params("userId"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", profile)
}

// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param userId path string true "User ID"
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} shared.Response{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} shared.Response
// @Router /api/v1/profiles/{userId} [patch]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	profile, err := h.profileSvc.UpdateProfile(shared.CurrentActor(c), c.Params("userId"), req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Profile updated", profile)
}

// @Summary List a guardian's students
// @Tags profile
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param userId path string true "Guardian user ID"
// @Success 200 {object} shared.Response{data=[]dto.ProfileResponse}
// @Failure 403 {object} shared.Response
// @Router /api/v1/profiles/{userId}/students [get]
func (h *ProfileHandler) ListStudents(c *fiber.Ctx) error {
	students, err := h.profileSvc.ListStudents(shared.CurrentActor(c), c.Params("userId"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", students)
}
