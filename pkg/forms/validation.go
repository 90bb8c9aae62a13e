package forms

import "errors"

// ValidationError reports a field that failed a pre-submission check.
// Validation failures are detected before any network call and never enter
// the request error taxonomy.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
