// Package validation holds the declarative input schemas and the bind
// helpers that normalize raw input before validating it, so that trimming
// happens ahead of length checks.
package validation

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "tasktracker/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Same tag gin's binding engine reads
	v.SetTagName("binding")
	// max counts runes; password length is bounded by what the hash
	// accepts, which is bytes.
	if err := v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	}); err != nil {
		panic(err)
	}
	return v
}

type normalizable interface {
	normalize()
}

// BindJSON decodes the request body into obj, normalizes it, and validates
// it. Unknown fields are ignored. The returned failure carries the first
// violated constraint's message.
func BindJSON(c *gin.Context, obj any) *apierrors.APIError {
	if err := json.NewDecoder(c.Request.Body).Decode(obj); err != nil {
		var parseErr *time.ParseError
		if errors.As(err, &parseErr) {
			return apierrors.BadRequest("Invalid ISO 8601 date format")
		}
		return apierrors.BadRequest("Invalid request body")
	}

	if n, ok := obj.(normalizable); ok {
		n.normalize()
	}

	if err := validate.Struct(obj); err != nil {
		return apierrors.BadRequest(firstMessage(err, "Invalid request body"))
	}

	return nil
}

// BindQuery binds query parameters into obj, applying struct defaults, and
// validates the result.
func BindQuery(c *gin.Context, obj any) *apierrors.APIError {
	if err := c.ShouldBindQuery(obj); err != nil {
		return apierrors.BadRequest(firstMessage(err, "Invalid query parameters"))
	}
	return nil
}

// messages maps StructNamespace.tag of a violated constraint to its
// human-readable message.
var messages = map[string]string{
	"RegisterInput.Name.required":     "Name cannot be empty",
	"RegisterInput.Name.max":          "Name must be 100 characters or fewer",
	"RegisterInput.Email.required":    "Invalid email format",
	"RegisterInput.Email.email":       "Invalid email format",
	"RegisterInput.Password.required": "Password must be at least 8 characters",
	"RegisterInput.Password.min":      "Password must be at least 8 characters",
	"RegisterInput.Password.maxbytes": "Password must be 72 characters or fewer",

	"LoginInput.Email.required":    "Invalid email format",
	"LoginInput.Email.email":       "Invalid email format",
	"LoginInput.Password.required": "Password cannot be empty",

	"CreateTaskInput.Title.required":  "Title cannot be empty",
	"CreateTaskInput.Title.max":       "Title must be 200 characters or fewer",
	"CreateTaskInput.Description.max": "Description must be 2000 characters or fewer",
	"CreateTaskInput.Status.oneof":    "Invalid status value",
	"UpdateTaskInput.Title.min":       "Title cannot be empty",
	"UpdateTaskInput.Title.max":       "Title must be 200 characters or fewer",
	"UpdateTaskInput.Description.max": "Description must be 2000 characters or fewer",
	"UpdateTaskInput.Status.oneof":    "Invalid status value",

	"TaskQuery.Status.oneof": "Invalid status value",
	"TaskQuery.Page.min":     "Page must be at least 1",
	"TaskQuery.Limit.min":    "Limit must be between 1 and 100",
	"TaskQuery.Limit.max":    "Limit must be between 1 and 100",
	"TaskQuery.SortBy.oneof": "Invalid sortBy value",
	"TaskQuery.Order.oneof":  "Invalid order value",
}

func firstMessage(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.StructNamespace()+"."+fe.Tag()]; ok {
			return msg
		}
		return "Invalid value for " + fe.Field()
	}
	return fallback
}
