package dto

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request shape checks.
// Shape validation covers required fields, enum membership and basic ranges;
// bookkeeping invariants (balanced entries, total matching, balance bounds)
// belong to the services and are never encoded in struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs tag-based shape validation on a request DTO.
func Validate(req any) error {
	return validate.Struct(req)
}
