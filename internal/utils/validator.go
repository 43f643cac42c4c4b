package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/opteron-x86/exam-ace/internal/errors"
	"github.com/opteron-x86/exam-ace/internal/models"
)

// Validator wraps go-playground/validator with the custom rules used by the
// quiz API.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	RegisterCustomValidators(v)
	return &Validator{validate: v}
}

// Validate checks a struct's `validate` tags and returns the shared
// ValidationErrors type on failure.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

func ValidateQuestionType(fl validator.FieldLevel) bool {
	value := models.QuestionType(fl.Field().String())
	_, ok := models.QuestionTypeNames[value]
	return ok
}

func ValidateDifficultyLevel(fl validator.FieldLevel) bool {
	switch models.DifficultyLevel(fl.Field().String()) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}

func ValidateSessionMode(fl validator.FieldLevel) bool {
	switch models.SessionMode(fl.Field().String()) {
	case models.ModeStudy, models.ModeExam:
		return true
	}
	return false
}

// RegisterCustomValidators registers the quiz-specific validation tags.
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", ValidateQuestionType)
	validate.RegisterValidation("difficulty_level", ValidateDifficultyLevel)
	validate.RegisterValidation("session_mode", ValidateSessionMode)

	// Report JSON field names in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
