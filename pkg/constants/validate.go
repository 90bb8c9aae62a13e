package constants

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance used by all DTOs.
var Validate = validator.New(validator.WithRequiredStructEnabled())
