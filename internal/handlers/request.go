// =============================================================================
// FILE: internal/handlers/request.go
// PURPOSE: Shared request parsing for all handlers
// =============================================================================
//
// Handlers never write error responses themselves. They attach the error to
// the Gin context with c.Error(err) and return; middleware.ErrorHandler turns
// it into the JSON error body and status code.
// =============================================================================

package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"catalog-api/internal/apperrors"
)

var registerOnce sync.Once

// registerValidations teaches Gin's validator the "notblank" tag and makes
// it report fields by their JSON name
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		mustRegisterValidation(v, "notblank", validators.NotBlank)
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// mustRegisterValidation registers a custom rule, panicking on failure
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// parseID reads an int64 path parameter, returning a TypeMismatchError when
// the value is not an integer
func parseID(c *gin.Context, param string) (int64, error) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &apperrors.TypeMismatchError{Param: param, Value: raw, Expected: "int64", Err: err}
	}
	return id, nil
}

// bindJSON decodes and validates the request body into obj
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, describeFieldError(fe))
		}
		return apperrors.NewValidationError(details...)
	}

	// malformed JSON, wrong JSON types, empty body
	return apperrors.NewValidationError(fmt.Sprintf("malformed request body: %v", err))
}

// describeFieldError renders "category.id is required" style messages
func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, found := strings.Cut(field, "."); found {
		field = rest // drop the struct name
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
