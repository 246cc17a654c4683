package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/application/service"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/internal/domain/enum"
	"github.com/sangkips/optica-api/internal/presentation/http/dto/response"
	"github.com/sangkips/optica-api/internal/presentation/http/middleware"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/pagination"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports binding errors under the JSON name of the field.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	return c.GetString(middleware.ContextUserEmail)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	role, _ := c.Get(middleware.ContextUserRole)
	r, _ := role.(enum.UserRole)
	return r
}

// currentActor returns the signed-in user, writing a 401 when absent.
func currentActor(c *gin.Context) (service.Actor, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return service.Actor{}, false
	}
	return service.Actor{UserID: *userID, Name: GetUserEmail(c), Role: GetUserRole(c)}, true
}

// paramID parses a UUID path parameter, writing a 400 on failure.
func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body. Binding rule failures become a 422 listing
// every field; malformed JSON is a 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{Field: fe.Field(), Message: bindingMessage(fe)})
		}
		response.ValidationError(c, fields)
		return false
	}
	response.BadRequest(c, "Invalid request body: "+err.Error())
	return false
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid e-mail address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "eqfield":
		return "must match " + strings.ToLower(fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "numeric":
		return "must contain only digits"
	}
	return "is invalid"
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	p := &pagination.PaginationParams{Page: page, PerPage: perPage}
	p.Validate()
	return p
}

// queryDate parses an optional YYYY-MM-DD query value.
func queryDate(value, field string) (*entity.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(value)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

// queryMonth parses an optional month number, 1 to 12.
func queryMonth(value, field string) (*time.Month, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 12 {
		return nil, apperror.NewFieldError(field, "must be between 1 and 12")
	}
	m := time.Month(n)
	return &m, nil
}

// queryUUID parses an optional UUID query value.
func queryUUID(value, field string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a valid ID")
	}
	return &id, nil
}

// queryCode parses an optional enum query value.
func queryCode[T ~string](value, field string, valid func(T) bool) (*T, error) {
	if value == "" {
		return nil, nil
	}
	v := T(value)
	if !valid(v) {
		return nil, apperror.NewFieldError(field, "is not a valid value")
	}
	return &v, nil
}
