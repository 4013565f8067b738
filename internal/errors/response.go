package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// RespondWithServiceError classifies err and writes the matching status.
// context names the failed action ("create category") and shapes generic messages.
func RespondWithServiceError(c *gin.Context, err error, context string) ErrorInfo {
	info := Classify(err, context)
	RespondWithError(c, info.Kind.HTTPStatus(), info.Code, info.Message)
	return info
}

// RespondOK writes the success envelope {message, ...payload}.
func RespondOK(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{"message": message}
	for k, v := range payload {
		if k == "message" {
			continue
		}
		body[k] = v
	}
	c.JSON(statusCode, body)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error, please retry later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithValidationError reports a binding failure.
func RespondWithValidationError(c *gin.Context, err error) {
	RespondWithError(c, http.StatusBadRequest, ValidationInvalidInput, err.Error())
}
