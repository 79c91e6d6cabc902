package httperror

import "github.com/gofiber/fiber/v2"

// Error is the HTTP-facing error carried from handlers to the response writer.
type Error struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func newError(status int, code, message string, details interface{}) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func BadRequest(code, message string, details interface{}) *Error {
	return newError(fiber.StatusBadRequest, code, message, details)
}

func Unauthorized(code, message string, details interface{}) *Error {
	return newError(fiber.StatusUnauthorized, code, message, details)
}

func Forbidden(code, message string, details interface{}) *Error {
	return newError(fiber.StatusForbidden, code, message, details)
}

func NotFound(code, message string, details interface{}) *Error {
	return newError(fiber.StatusNotFound, code, message, details)
}

func UnprocessableEntity(code, message string, details interface{}) *Error {
	return newError(fiber.StatusUnprocessableEntity, code, message, details)
}

func InternalServerError(code, message string, details interface{}) *Error {
	return newError(fiber.StatusInternalServerError, code, message, details)
}

func NoContent(code, message string, details interface{}) *Error {
	return newError(fiber.StatusNoContent, code, message, details)
}
