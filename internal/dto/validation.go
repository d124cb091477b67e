package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

// validateStruct runs the binding tags of a create payload.
func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return apierrors.FromBindingError(err)
	}
	return nil
}

func init() {
	// Report json names instead of Go field names from gin's binding validator.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// checkValue validates a present value against validator tags.
func checkValue(errs *apierrors.ValidationError, field string, value any, tags string) {
	err := validate.Var(value, tags)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs.Add(field, apierrors.TagMessage(fe.Tag(), fe.Param()))
		}
		return
	}
	errs.Add(field, err.Error())
}

// checkRequired validates an optional field backed by a NOT NULL column.
func checkRequired[T any](errs *apierrors.ValidationError, field string, o Optional[T], tags string) {
	if !o.Set {
		return
	}
	if o.Null {
		errs.Add(field, apierrors.TagMessage("notnull", ""))
		return
	}
	if tags != "" {
		checkValue(errs, field, o.Value, tags)
	}
}

// checkNullable validates an optional field whose column accepts NULL.
func checkNullable[T any](errs *apierrors.ValidationError, field string, o Optional[T], tags string) {
	if !o.Present() || tags == "" {
		return
	}
	checkValue(errs, field, o.Value, tags)
}

func enumTag[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return "oneof=" + strings.Join(parts, " ")
}
