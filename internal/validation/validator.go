// Package validation checks user supplied catalog input before it reaches
// the catalog: new prompts, new categories and configured AI tools.
//
// Rules are declared as struct tags and evaluated with go-playground's
// validator. Failures are collected into a ValidationResult which converts
// to a single AppError for display.
package validation

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dpshade/prompt-catalog/internal/errors"
	"github.com/dpshade/prompt-catalog/internal/models"
)

// PromptInput is the data collected by the add-prompt form.
type PromptInput struct {
	Title       string `validate:"notblank,max=100"`
	Template    string `validate:"notblank"`
	Category    string `validate:"notblank,nefold=All"`
	Subcategory string `validate:"max=60"`
	Description string `validate:"max=255"`
}

// CategoryInput is the data collected by the add-category form.
type CategoryInput struct {
	Name string `validate:"notblank,max=40,nefold=All"`
}

// ToolInput is one AI tool entry from configuration.
type ToolInput struct {
	ID         string `validate:"notblank"`
	Name       string `validate:"notblank"`
	BaseURL    string `validate:"required,url"`
	QueryParam string `validate:"omitempty,alphanum"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("nefold", func(fl validator.FieldLevel) bool {
			return !strings.EqualFold(strings.TrimSpace(fl.Field().String()), fl.Param())
		})
	})
	return validate
}

// Struct validates any tagged struct.
func Struct(v interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	err := instance().Struct(v)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "input",
			Code:    "INVALID_INPUT",
			Message: err.Error(),
		})
		return result
	}

	result.Valid = false
	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fe.Field(),
			Code:    strings.ToUpper(fe.Tag()),
			Message: describe(fe),
			Value:   fe.Value(),
		})
	}
	return result
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "nefold":
		return fmt.Sprintf("%s cannot be %q", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "alphanum":
		return fmt.Sprintf("%s must be alphanumeric", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ValidatePrompt checks a new prompt.
func ValidatePrompt(in PromptInput) *ValidationResult {
	return Struct(in)
}

// ValidateCategory checks a new category name. Uniqueness is checked by the
// catalog, which owns the category list.
func ValidateCategory(name string) *ValidationResult {
	return Struct(CategoryInput{Name: name})
}

// ValidateTool checks one configured AI tool.
func ValidateTool(in ToolInput) *ValidationResult {
	return Struct(in)
}

// ToAppError converts validation result to AppError
func (result *ValidationResult) ToAppError() *errors.AppError {
	if result.Valid {
		return nil
	}

	if len(result.Errors) == 0 {
		return errors.ValidationError("Validation failed")
	}

	first := result.Errors[0]
	var appErr *errors.AppError
	if first.Code == "NOTBLANK" || first.Code == "REQUIRED" {
		appErr = errors.MissingFieldError(strings.ToLower(first.Field))
	} else {
		appErr = errors.ValidationError(first.Message)
	}

	if len(result.Errors) > 1 {
		var details []string
		for _, e := range result.Errors {
			details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Message))
		}
		appErr = appErr.WithDetails(strings.Join(details, "; "))
	}

	return appErr.WithContext("validation_errors", result.Errors)
}

// PromptModel builds the catalog record for validated input. Optional fields
// stay nil when left blank.
func (in PromptInput) PromptModel(id string) *models.Prompt {
	p := &models.Prompt{
		ID:       id,
		Name:     strings.TrimSpace(in.Title),
		Template: in.Template,
		Category: strings.TrimSpace(in.Category),
	}
	if s := strings.TrimSpace(in.Subcategory); s != "" {
		p.Subcategory = models.StringPtr(s)
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		p.Summary = models.StringPtr(d)
	}
	return p
}
