package services

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// ID prefixes for generated identifiers.
const (
	documentIDPrefix  = "local-"
	highlightIDPrefix = "box-"
	bookmarkIDPrefix  = "bm-"
)

// newUUID is the default id source.
func newUUID() string {
	return uuid.NewString()
}

// toValidationError converts ozzo-validation field errors into a
// *domain.ValidationError for the first failing field (by name).
// Other errors pass through unchanged.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		var single validation.Error
		if errors.As(err, &single) {
			return domain.NewValidationError("", single.Error())
		}
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr != nil {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	return domain.NewValidationError(fields[0], fieldErrs[fields[0]].Error())
}
