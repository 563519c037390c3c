// internal/controller/validation.go
package controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
	"github.com/unclebandit/ecommerce-services/internal/model"
)

// Validator checks request bodies against their struct tags and reports
// failures keyed by JSON field name.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimals are compared as floats so gt/gte tags apply to prices
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &Validator{v: v}
}

func (val *Validator) Struct(s any) error {
	return val.fields("", val.v.Struct(s))
}

// CustomerUpdate only checks the email, and only when one was sent.
func (val *Validator) CustomerUpdate(req model.CustomerRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return nil
	}
	if err := val.v.Var(req.Email, "email"); err != nil {
		return appErrors.NewValidation(map[string]string{"email": "must be a valid email address"})
	}
	return nil
}

// Purchases validates a non-empty batch, line by line.
func (val *Validator) Purchases(batch []model.PurchaseRequest) error {
	if len(batch) == 0 {
		return appErrors.NewValidation(map[string]string{"purchases": "must contain at least one line"})
	}

	fields := map[string]string{}
	for i := range batch {
		err := val.fields(fmt.Sprintf("[%d].", i), val.v.Struct(&batch[i]))
		var ve *appErrors.ErrValidation
		if errors.As(err, &ve) {
			for k, msg := range ve.Fields {
				fields[k] = msg
			}
		} else if err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		return appErrors.NewValidation(fields)
	}
	return nil
}

func (val *Validator) fields(prefix string, err error) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[prefix+fe.Field()] = message(fe)
	}
	return appErrors.NewValidation(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
