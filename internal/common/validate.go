package common

import (
	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance. Request structs declare their
// schema with `validate` tags and are checked at the boundary, before any
// lifecycle logic runs.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// CheckStruct runs struct validation and folds failures into ErrValidation
// so handlers map them to 400 uniformly.
func CheckStruct(s interface{}) error {
	if err := Validate.Struct(s); err != nil {
		return Errorf("%s: %w", err.Error(), ErrValidation)
	}
	return nil
}
