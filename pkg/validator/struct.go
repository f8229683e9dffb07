package validator

import (
	"errors"
	"strings"

	validatorengine "github.com/go-playground/validator/v10"

	"github.com/meetnear/broadcast-service/pkg/helper"
)

// StructValidator struct
type StructValidator struct {
	validator *validatorengine.Validate
}

// NewStructValidator using go library
// https://github.com/go-playground/validator (all struct tags will be here)
func NewStructValidator() *StructValidator {
	return &StructValidator{
		validator: validatorengine.New(),
	}
}

// ValidateStruct function
func (v *StructValidator) ValidateStruct(data interface{}) error {
	if err := v.validator.Struct(data); err != nil {
		switch errs := err.(type) {
		case validatorengine.ValidationErrors:
			multiError := helper.NewMultiError()
			for _, e := range errs {
				multiError.Append(strings.ToLower(e.Field()), errors.New(e.Error()))
			}
			if multiError.HasError() {
				return multiError
			}
		default:
			return err
		}
	}

	return nil
}
