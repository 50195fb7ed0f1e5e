package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, domain.CodeBadRequest, message)
}

// Error maps err to a status code. Messages of unclassified errors are not exposed.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	code := domain.CodeOf(err)
	status := StatusFor(code)
	message := "internal server error"
	if code != domain.CodeInternal {
		message = err.Error()
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		}
	}
	abort(c, status, code, message)
}

// StatusFor returns the HTTP status for an error code.
func StatusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeBadRequest:
		return http.StatusBadRequest
	case domain.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, status int, code domain.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: string(code), Message: message},
	})
}
