// Package validate checks caller-supplied request values before they
// reach the stores. It is tag-driven: the raw types in the data package
// declare their constraints and this package turns violations into the
// store's error codes, reporting every failing field in one pass rather
// than stopping at the first.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/PaulBabatuyi/chatstore/internal/errs"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// report fields under their json names so messages match what the
	// caller actually typed
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return val
}

// Struct validates s against its field tags. Returns nil on success,
// otherwise an errs.List with one entry per failing field: E_MISSING
// for absent required fields, E_BAD_VAL for everything else.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: s was not a struct; programmer error
		// surfaced as a bad value rather than a panic
		return errs.Wrap(errs.BadVal, err, "value cannot be validated")
	}

	list := make(errs.List, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			list = append(list, errs.New(errs.Missing, "%s is required", fe.Field()))
		case "email":
			list = append(list, errs.New(errs.BadVal, "%s is not a valid email address", fe.Field()))
		default:
			list = append(list, errs.New(errs.BadVal, "%s fails %s validation", fe.Field(), fe.Tag()))
		}
	}
	return list
}
