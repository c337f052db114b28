package ids

import (
	"strings"

	"github.com/google/uuid"
	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
)

func New() string {
	return uuid.NewString()
}

// Parse normalizes an identifier and rejects anything that is not a UUID,
// so malformed ids never reach the store.
func Parse(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Validation(field, value, field+" is required")
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", apperr.InvalidFormat(field, value)
	}
	return parsed.String(), nil
}

// ParseOptional is Parse for references that may be absent.
func ParseOptional(field string, value *string) (*string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := Parse(field, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
