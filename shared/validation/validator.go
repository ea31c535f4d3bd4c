// Package validation wraps go-playground/validator with English messages and
// explicit rule lists for handlers that need hand-picked error texts.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError is a single failed check, keyed by the JSON name of the field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// Rule is one (field, predicate, message) tuple. Value extracts the checked value
// from the input and Tag is a validator tag such as "required,email".
type Rule[T any] struct {
	Field   string
	Value   func(T) any
	Tag     string
	Message string
}

// Validator validates structs and rule lists.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator that reports fields by their json tag and translates
// messages to English.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s using its validate tags. It returns nil when s is valid.
func (v *Validator) Struct(s any) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.trans),
		})
	}

	return out
}

// Check evaluates every rule against in and collects the messages of the failed ones.
// Rules are all evaluated, so a request with several problems reports all of them.
func Check[T any](v *Validator, in T, rules []Rule[T]) []FieldError {
	var out []FieldError
	for _, rule := range rules {
		if err := v.validate.Var(rule.Value(in), rule.Tag); err != nil {
			out = append(out, FieldError{Field: rule.Field, Message: rule.Message})
		}
	}

	return out
}
