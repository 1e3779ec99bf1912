// =============================================================================
// FILE: internal/middleware/errors.go
// PURPOSE: Turn errors attached by handlers into uniform JSON error bodies
// =============================================================================
//
// Every error response of the API has the same shape:
//
//	{ "status": "NOT_FOUND", "message": "Product with ID 999 not found",
//	  "errors": "ResourceNotFound", "dateTime": "2024-11-09T14:03:12" }
//
// "errors" is a plain string when there is a single entry and an array
// otherwise.
// =============================================================================

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-api/internal/apperrors"
)

// DateTimeLayout is the wire format of ApiError.DateTime (no zone, seconds precision)
const DateTimeLayout = "2006-01-02T15:04:05"

// ApiError is the body written for every failed request
type ApiError struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Errors   ErrorList `json:"errors"`
	DateTime DateTime  `json:"dateTime"`
}

// ErrorList marshals a single element as a bare string
type ErrorList []string

func (l ErrorList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *ErrorList) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = ErrorList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// DateTime is a local timestamp rendered as yyyy-MM-ddTHH:mm:ss
type DateTime time.Time

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(DateTimeLayout))
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := time.ParseInLocation(DateTimeLayout, raw, time.Local)
	if err != nil {
		return err
	}
	*d = DateTime(t)
	return nil
}

// isNull reports a JSON null literal, which decoders must treat as a no-op
func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// statusName renders 404 as NOT_FOUND, 422 as UNPROCESSABLE_ENTITY, ...
func statusName(code int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
}

// NewApiError builds an ApiError for the given status
func NewApiError(code int, message string, details ...string) ApiError {
	return ApiError{
		Status:   statusName(code),
		Message:  message,
		Errors:   details,
		DateTime: DateTime(time.Now()),
	}
}

// Translate maps an error to its status code and body
func Translate(err error) (int, ApiError) {
	var (
		notFound   *apperrors.NotFoundError
		mismatch   *apperrors.TypeMismatchError
		validation *apperrors.ValidationError
		size       *apperrors.IncorrectResultSizeError
		conflict   *apperrors.ConflictError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, NewApiError(http.StatusNotFound, notFound.Error(), "ResourceNotFound")

	case errors.As(err, &mismatch):
		return http.StatusBadRequest, NewApiError(http.StatusBadRequest,
			"The provided argument type does not match the expected type.", mismatch.Error())

	case errors.As(err, &validation):
		return http.StatusBadRequest, NewApiError(http.StatusBadRequest,
			"Validation failed for the request payload.", validation.Details...)

	case errors.As(err, &size):
		return http.StatusUnprocessableEntity, NewApiError(http.StatusUnprocessableEntity,
			fmt.Sprintf("The query returned an unexpected number of results: %d, but %d was expected.", size.Actual, size.Expected),
			"IncorrectResultSizeDataAccessException")

	case errors.As(err, &conflict):
		return http.StatusConflict, NewApiError(http.StatusConflict, conflict.Message, conflict.Code)

	default:
		// the cause is logged, never echoed to the client
		return http.StatusInternalServerError, NewApiError(http.StatusInternalServerError,
			"An unexpected error occurred.", "InternalServerError")
	}
}

// ErrorHandler writes the ApiError for the last error a handler attached
// with c.Error, unless the handler already wrote a response
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := Translate(err)

		entry := logger.WithFields(logrus.Fields{
			"status":     status,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(RequestIDKey),
		})
		if status >= http.StatusInternalServerError {
			entry.WithError(err).Error("Request failed")
		} else {
			entry.WithError(err).Warn("Request rejected")
		}

		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery answers panics with a 500 ApiError instead of an empty body
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"panic":      recovered,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(RequestIDKey),
		}).Error("Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			NewApiError(http.StatusInternalServerError, "An unexpected error occurred.", "InternalServerError"))
	})
}

// NoRoute answers unknown paths with a 404 ApiError
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, NewApiError(http.StatusNotFound,
			fmt.Sprintf("No handler found for %s %s", c.Request.Method, c.Request.URL.Path), "NoHandlerFound"))
	}
}
