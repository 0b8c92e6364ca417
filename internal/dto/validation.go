package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"inventory-api/internal/domain"
)

// RegisterCustomValidators wires the size and color vocabulary checks
// into gin's binding engine and makes validation errors report JSON
// field names. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("productsize", func(fl validator.FieldLevel) bool {
		return domain.Size(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("productcolor", func(fl validator.FieldLevel) bool {
		return domain.Color(fl.Field().String()).IsValid()
	})
}

// BindingFieldErrors flattens a gin binding error into a field -> message
// map. Non-validation errors (malformed JSON, type mismatches) come back
// as a single "body" entry.
func BindingFieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageForTag(fe)
	}
	return fields
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "productsize":
		return "unknown size"
	case "productcolor":
		return "unknown color"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
