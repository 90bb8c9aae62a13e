package accounts

import (
	"fmt"
	"strings"

	"github.com/gcet-osf/forumctl/pkg/constants"
	"github.com/gcet-osf/forumctl/pkg/forms"
)

// RegisterDTO is the registration form. Field names mirror the form inputs.
type RegisterDTO struct {
	FullName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Gender          string `validate:"required"`
	DateOfBirth     string `validate:"required"`
}

// Validate runs the checks in the order the form always has: required
// fields first (naming the first offender), then password rules, then
// format rules. It never issues a network call.
func (d *RegisterDTO) Validate() error {
	required := []struct{ name, value string }{
		{"fullName", d.FullName},
		{"email", d.Email},
		{"password", d.Password},
		{"confirmPassword", d.ConfirmPassword},
		{"gender", d.Gender},
		{"dateOfBirth", d.DateOfBirth},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &forms.ValidationError{
				Field:  f.name,
				Reason: fmt.Sprintf("Please fill the %s field.", f.name),
			}
		}
	}
	if len(d.Password) < 8 {
		return &forms.ValidationError{Field: "password", Reason: "Password must be at least 8 characters."}
	}
	if d.Password != d.ConfirmPassword {
		return &forms.ValidationError{Field: "confirmPassword", Reason: "Passwords do not match."}
	}
	if err := constants.Validate.Struct(d); err != nil {
		return &forms.ValidationError{Field: "email", Reason: "Please enter a valid email address"}
	}
	return nil
}

type LoginDTO struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (d *LoginDTO) Validate() error {
	if err := constants.Validate.Var(d.Email, "required,email"); err != nil {
		return &forms.ValidationError{Field: "email", Reason: "Please enter a valid email address"}
	}
	if d.Password == "" {
		return &forms.ValidationError{Field: "password", Reason: "Password is required"}
	}
	return nil
}
