package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request payload against its validate tags before it
// goes over the wire, so obviously-bad input never costs a network call.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
