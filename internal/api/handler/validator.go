package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator adapts go-playground/validator to echo's Validator interface
// so handlers can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			msgs = append(msgs, field+" is required")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
