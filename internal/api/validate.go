package api

import "github.com/go-playground/validator/v10"

// newValidator создаёт валидатор входных документов.
func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
