package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	validate.RegisterValidation("role", validateRole)
	validate.RegisterStructValidation(validateCreateLecture, CreateLectureRequest{})
}

func GetValidator() *validator.Validate {
	return validate
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "student", "parent", "admin":
		return true
	}
	return false
}

// A video lecture needs a playable source; a rich text lecture needs a body.
func validateCreateLecture(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateLectureRequest)
	switch req.ContentType {
	case "video":
		if req.VideoURL == "" && !req.UploadPending {
			sl.ReportError(req.VideoURL, "video_url", "VideoURL", "required_for_video", "")
		}
	case "rich_text":
		if strings.TrimSpace(req.Content) == "" {
			sl.ReportError(req.Content, "content", "Content", "required_for_rich_text", "")
		}
	}
}

type ValidationError struct {
	Field   string `json:"field" example:"progress"`
	Message string `json:"message" example:"progress must be at most 100"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code" example:"400"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  []ValidationError `json:"errors"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min", "gte":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max", "lte":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "url":
				message = fieldError.Field() + " must be a valid URL"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "role":
				message = fieldError.Field() + " must be one of: student parent admin"
			case "required_for_video":
				message = fieldError.Field() + " is required for video lectures"
			case "required_for_rich_text":
				message = fieldError.Field() + " is required for rich text lectures"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
