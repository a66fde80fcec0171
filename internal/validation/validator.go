package validation

import (
	"errors"
	"reflect"
	"strings"

	"distribution-service/internal/apperror"
	"distribution-service/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps go-playground/validator with decimal support and JSON field names
type Validator struct {
	v *validator.Validate
}

// New returns a Validator ready for request and model structs
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// numeric tags such as gte=0 see decimals as float64
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// money: fits a decimal(10,2) column
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		if !ok {
			if fl.Field().Kind() != reflect.Float64 {
				return true
			}
			d = decimal.NewFromFloat(fl.Field().Float())
		}
		return model.FitsMoneyColumn(d)
	})
	return &Validator{v: v}
}

// decimalField reads the decimal behind fl from its parent struct, since the
// custom type func hands validation funcs a float64 copy.
func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := fl.Parent()
	for parent.Kind() == reflect.Ptr {
		if parent.IsNil() {
			return decimal.Decimal{}, false
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return decimal.Decimal{}, false
	}
	field := parent.FieldByName(fl.StructFieldName())
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return decimal.Decimal{}, false
		}
		field = field.Elem()
	}
	if !field.IsValid() {
		return decimal.Decimal{}, false
	}
	d, ok := field.Interface().(decimal.Decimal)
	return d, ok
}

var std = New()

// Struct validates s with the shared validator
func Struct(s interface{}) error {
	return std.Validate(s)
}

// Validate checks s and converts failures into an apperror.ValidationError
func (cv *Validator) Validate(s interface{}) error {
	err := cv.v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &apperror.ValidationError{Fields: make([]apperror.FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.Fields = append(out.Fields, apperror.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from the namespace, e.g. "items[1].productId"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "money":
		return "must have at most 8 integer digits and 2 decimal places"
	case "min":
		return "must have at least " + fe.Param() + " entries"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
