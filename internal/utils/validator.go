// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	studentIDPattern = regexp.MustCompile(`^\d{8}$`)
	teacherIDPattern = regexp.MustCompile(`^\d{7}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("student_id", validateStudentID)
	validate.RegisterValidation("teacher_id", validateTeacherID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidStudentID reports whether the id matches the 8-digit student format.
func IsValidStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}

// IsValidTeacherID reports whether the id matches the 7-digit staff format.
func IsValidTeacherID(id string) bool {
	return teacherIDPattern.MatchString(id)
}

func validateStudentID(fl validator.FieldLevel) bool {
	return IsValidStudentID(fl.Field().String())
}

func validateTeacherID(fl validator.FieldLevel) bool {
	return IsValidTeacherID(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "student_id":
		return "Student id must be exactly 8 digits"
	case "teacher_id":
		return "Staff id must be exactly 7 digits"
	default:
		return e.Field() + " is invalid"
	}
}
