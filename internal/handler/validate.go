package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json field names so the errors map matches the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// "required" lets whitespace-only strings through; titles must not.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// checkRequest validates the struct and flattens the result into a
// field -> message map. The first violation per field wins.
func checkRequest(req interface{}) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrors := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		field := fe.Field()
		if _, seen := fieldErrors[field]; seen {
			continue
		}
		fieldErrors[field] = fieldMessage(fe)
	}
	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return fmt.Sprintf("%s must not be blank", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
