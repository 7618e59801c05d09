package api

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("localpath", func(fl validator.FieldLevel) bool {
		return isLocalPath(fl.Field().String())
	})

	return v
}

// isLocalPath accepts absolute paths on this host only.
func isLocalPath(s string) bool {
	return strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") && !strings.Contains(s, `\`)
}

// validReturnTo reports whether returnTo may be forwarded after admission.
// Anything else is dropped rather than failing the request.
func validReturnTo(returnTo string) bool {
	return returnTo != "" && validate.Var(returnTo, "max=2048,localpath") == nil
}
