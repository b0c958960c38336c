package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the same custom tags the domain rules use.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("integral", integral)
	v.RegisterAlias("pwd", "min=4")
}

// notBlank rejects strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(f.String()) != ""
}

// integral accepts whole numbers, including floats such as 3.0 decoded from JSON.
func integral(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return !math.IsInf(v, 0) && v == math.Trunc(v)
	default:
		return false
	}
}

var (
	domainOnce sync.Once
	domainV    *validator.Validate
)

// Domain returns the validator used for domain input rules, independent of Gin.
func Domain() *validator.Validate {
	domainOnce.Do(func() {
		domainV = validator.New(validator.WithRequiredStructEnabled())
		configure(domainV)
	})
	return domainV
}

// Messages maps "field.tag" or "field" to a caller-facing message.
type Messages map[string]string

// FieldError is the first rule a value broke.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Check validates s with the domain validator and reports only the first failure,
// worded by msgs when it has an entry for the field.
func Check(s any, msgs Messages) error {
	err := Domain().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := fe.Field()
	msg, ok := msgs[field+"."+fe.Tag()]
	if !ok {
		msg, ok = msgs[field]
	}
	if !ok {
		msg = field + " " + formatFieldError(fe)
	}
	return &FieldError{Field: field, Tag: fe.Tag(), Message: msg}
}

// DecodeError turns a JSON type mismatch on a field msgs knows into a *FieldError
// worded like a rule failure. Any other error yields nil.
func DecodeError(err error, msgs Messages) error {
	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) || ute.Field == "" {
		return nil
	}
	msg, ok := msgs[ute.Field]
	if !ok {
		return nil
	}
	return &FieldError{Field: ute.Field, Tag: "type", Message: msg}
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if ute.Field != "" {
			return map[string]string{ute.Field: "must be of type " + ute.Type.String()}
		}
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return map[string]string{fe.Field: fe.Message}
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "notblank":
		return "must be a non-empty string"
	case "integral":
		return "must be a whole number"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "len":
		if param != "" {
			return fmt.Sprintf("must be exactly %s characters long", param)
		}
		return "invalid length"
	case "min", "pwd":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "number", "numeric":
		return "must be numeric"
	case "dive":
		return "array validation failed"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
