package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/isdelr/job-portal-be/internal/apperr"
	"github.com/isdelr/job-portal-be/internal/auth"
	"github.com/isdelr/job-portal-be/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		// bcrypt rejects long passwords by byte count, not rune count.
		"pwbytes": func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= auth.MaxPasswordBytes
		},
		"jobstatus": func(fl validator.FieldLevel) bool {
			return models.JobStatus(fl.Field().String()).Valid()
		},
		"worktype": func(fl validator.FieldLevel) bool {
			return models.WorkType(fl.Field().String()).Valid()
		},
		"jobposition": func(fl validator.FieldLevel) bool {
			return utf8.RuneCountInString(fl.Field().String()) <= models.MaxPositionLength
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

var (
	passwordTooLong      = fmt.Sprintf("Password must be at most %d characters", auth.MaxPasswordBytes)
	passwordTooManyBytes = fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes)
)

// fieldMessages maps "field.tag" to the message clients see.
var fieldMessages = map[string]string{
	"first_name.required":      "Name is required",
	"email.required":           "Email is required",
	"email.email":              "Please provide a valid email",
	"password.required":        "Password is required and should be at least 6 characters",
	"password.min":             "Password must be at least 6 characters",
	"password.max":             passwordTooLong,
	"password.pwbytes":         passwordTooManyBytes,
	"newPassword.required":     "New password is required",
	"newPassword.min":          "Password must be at least 6 characters",
	"newPassword.max":          passwordTooLong,
	"newPassword.pwbytes":      passwordTooManyBytes,
	"position.jobposition":     fmt.Sprintf("Position must be at most %d characters", models.MaxPositionLength),
	"status.jobstatus":         "Status must be one of pending, reject, interview",
	"work_type.worktype":       "Work type must be one of full_time, part_time, freelance, internship",
	"currentPassword.required": "Current password is required",
}

// check validates s and converts the first failure into a validation error.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Internal("validation failed", err)
	}

	fe := verrs[0]
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return apperr.Validation(msg)
	}
	return apperr.Validation(fe.Field() + " is invalid")
}
