package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// TagNotBlank rejects strings made only of whitespace. Such names would be
// indistinguishable from empty ones in every listing.
const TagNotBlank = "notblank"

// RegisterRules adds the custom rules to v
func RegisterRules(v *validator.Validate) error {
	return v.RegisterValidation(TagNotBlank, notBlank)
}

// New returns a validator with the custom rules registered
func New() *validator.Validate {
	v := validator.New()
	if err := RegisterRules(v); err != nil {
		panic(err)
	}
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
