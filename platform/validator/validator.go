// Package validator wraps go-playground struct validation behind a small
// injectable type so handlers do not touch the library directly.
package validator

import "github.com/go-playground/validator/v10"

// Validator checks request structs against their validate tags.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the default tag rules.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates s against its validate tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}
