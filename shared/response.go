package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var JSONAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	successResponse       = mustMarshal(Response{Code: 200, Message: "Success"})
	createdResponse       = mustMarshal(Response{Code: 201, Message: "Created"})
	notFoundResponse      = mustMarshal(Response{Code: 404, Message: "Not Found"})
	unauthorizedResponse  = mustMarshal(Response{Code: 401, Message: "Unauthorized"})
	badRequestResponse    = mustMarshal(Response{Code: 400, Message: "Bad Request"})
	forbiddenResponse     = mustMarshal(Response{Code: 403, Message: "Forbidden"})
	internalErrorResponse = mustMarshal(Response{Code: 500, Message: "Internal Server Error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := JSONAPI.Marshal(v)
	return b
}

func cachedResponse(httpCode int, message string) []byte {
	switch {
	case httpCode == 200 && message == "Success":
		return successResponse
	case httpCode == 201 && message == "Created":
		return createdResponse
	case httpCode == 400 && message == "Bad Request":
		return badRequestResponse
	case httpCode == 401 && message == "Unauthorized":
		return unauthorizedResponse
	case httpCode == 403 && message == "Forbidden":
		return forbiddenResponse
	case httpCode == 404 && message == "Not Found":
		return notFoundResponse
	case httpCode == 500 && message == "Internal Server Error":
		return internalErrorResponse
	}
	return nil
}

func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	if data == nil {
		if body := cachedResponse(httpCode, message); body != nil {
			return c.Status(httpCode).Send(body)
		}
	}

	body, err := JSONAPI.Marshal(Response{
		Code:    httpCode,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return err
	}
	return c.Status(httpCode).Send(body)
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, fiber.StatusOK, "Success", data)
}

func ResponseCreated(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, fiber.StatusCreated, "Created", data)
}

func ResponseNotFound(c *fiber.Ctx) error {
	return ResponseJSON(c, fiber.StatusNotFound, "Not Found", nil)
}

func ResponseUnauthorized(c *fiber.Ctx, detail string) error {
	if detail == "" {
		return ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	return ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", detail)
}

func ResponseForbidden(c *fiber.Ctx) error {
	return ResponseJSON(c, fiber.StatusForbidden, "Forbidden", nil)
}

func ResponseInternalError(c *fiber.Ctx, err error) error {
	if err == nil {
		return ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
	}
	return ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
}
