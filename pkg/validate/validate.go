// Package validate wraps go-playground/validator so boundary inputs fail
// with coded domain errors before any state change.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "clearhire/pkg/domain-errors"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// Struct validates the given struct using its validate tags. Returns a
// CodeValidation domain error listing every failed field, or nil.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return dErrors.Wrap(dErrors.CodeValidation, "invalid input", err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
	}
	return dErrors.New(dErrors.CodeValidation, strings.Join(msgs, "; "))
}
