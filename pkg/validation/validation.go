package validation

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/pkg/apperror"
	"github.com/sangkips/optica-api/pkg/money"
)

// Violations collects one message per failing field.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records a message for field unless one is already present.
func (v Violations) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// Err returns nil when there are no violations, otherwise a 422 AppError
// listing every field in a stable order.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	errs := make([]apperror.FieldError, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, apperror.FieldError{Field: f, Message: v[f]})
	}
	return apperror.NewValidationError(errs)
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

func RequiredID(field string, id uuid.UUID, v Violations) {
	if id == uuid.Nil {
		v.Add(field, "is required")
	}
}

func PositiveAmount(field string, val money.Cents, v Violations) {
	if val <= 0 {
		v.Add(field, "must be greater than zero")
	}
}

func NonNegativeAmount(field string, val money.Cents, v Violations) {
	if val < 0 {
		v.Add(field, "must not be negative")
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v.Add(field, "must be greater than zero")
	}
}

func MaxLength(field, value string, max int, v Violations) {
	if len(value) > max {
		v.Add(field, "is too long")
	}
}
