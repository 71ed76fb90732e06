package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared request validator. Error messages use JSON field
// names so clients see the names they sent.
var Validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationErrors flattens validator errors into client-friendly strings.
func ValidationErrors(err error) []string {
	var out []string
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out = append(out, field+" is required")
		case "email":
			out = append(out, field+" must be a valid email address")
		case "min":
			out = append(out, field+" must be at least "+fe.Param())
		case "max":
			out = append(out, field+" must be at most "+fe.Param())
		default:
			out = append(out, field+" is invalid")
		}
	}
	return out
}
