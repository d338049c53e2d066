// Package validator wraps go-playground/validator with the marketplace's
// custom rules and turns failures into field-keyed messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxMoney is the exclusive upper bound of a NUMERIC(18,2) column.
var maxMoney = decimal.New(1, 16)

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON (or form) names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	v.RegisterCustomTypeFunc(func(fv reflect.Value) any {
		if d, ok := fv.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("money", isMoney); err != nil {
		panic(fmt.Sprintf("validator: register money: %v", err))
	}
	return v
}

// isMoney accepts a positive amount in whole cents that fits NUMERIC(18,2).
func isMoney(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsPositive() && d.LessThan(maxMoney) && d.Equal(d.Round(2))
}

// Validate checks s against its `validate` tags.
func Validate(s any) error {
	return engine.Struct(s)
}

// messages maps a tag to its client-facing text; %s is the tag parameter.
var messages = map[string]string{
	"required": "This field is required",
	"uuid":     "Must be a valid UUID",
	"uuid4":    "Must be a valid UUID",
	"email":    "Must be a valid email address",
	"url":      "Must be a valid URL",
	"min":      "Minimum length is %s",
	"max":      "Maximum length is %s",
	"gte":      "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"oneof":    "Must be one of: %s",
	"money":    "Must be a positive amount below 10000000000000000 with at most two decimal places",
}

// FormatValidationErrors returns one message per failed field, keyed by the
// field's JSON name. Errors that did not come from Validate yield an empty map.
func FormatValidationErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	tmpl, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("Validation failed on '%s'", fe.Tag())
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, fe.Param())
	}
	return tmpl
}
