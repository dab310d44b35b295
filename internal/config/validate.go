package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Veraticus/numbercruncher/internal/common"
	"github.com/Veraticus/numbercruncher/internal/taxonomy"
)

// Validator wraps go-playground/validator and reports failures as
// common.ErrInvalidConfig with config-key field names.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator that knows the taxon and column keys.
func NewValidator() *Validator {
	v := validator.New()

	// Report mapstructure names so messages match the config file keys.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("taxon", func(fl validator.FieldLevel) bool {
		_, ok := taxonomy.DefaultRuleSet().Lookup(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("column", func(fl validator.FieldLevel) bool {
		_, ok := columnByName(fl.Field().String())
		return ok
	})

	return &Validator{v: v}
}

// Validate checks a struct against its validate tags.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, fieldPath(e)+" "+friendlyMessage(e))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// fieldPath renders a namespace like "Config.input.delimiter" as the config
// key "input.delimiter".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s character(s)", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "taxon":
		return fmt.Sprintf("is not a known taxon (known: %s)", strings.Join(taxonomy.Keys(), ", "))
	case "column":
		return "is not a known column"
	default:
		return "is invalid"
	}
}
