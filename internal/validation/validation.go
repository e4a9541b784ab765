// Package validation turns raw request input into typed request records.
//
// Request shapes are plain structs whose `json` tags name the fields and
// whose `validate` tags carry go-playground/validator rules. Decode checks
// every field, so a rejected request reports all of its problems at once.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind classifies a field-level violation.
type Kind string

const (
	MissingField  Kind = "MissingField"
	InvalidType   Kind = "InvalidType"
	InvalidFormat Kind = "InvalidFormat"
)

// Violation describes one field that failed its rules.
type Violation struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Errors aggregates every violation found in a request.
type Errors []Violation

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+" "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed with the given kind.
func (e Errors) Has(field string, kind Kind) bool {
	for _, v := range e {
		if v.Field == field && v.Kind == kind {
			return true
		}
	}
	return false
}

// Input is untyped request data keyed by field name.
type Input map[string]any

var (
	validate  = newValidator()
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	// hexuuid accepts the 8-4-4-4-12 textual form in either letter case.
	if err := v.RegisterValidation("hexuuid", func(fl validator.FieldLevel) bool {
		return IsValidUUID(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsValidUUID checks whether a string matches the UUID textual grammar.
func IsValidUUID(s string) bool {
	return uuidRegex.MatchString(s)
}

// Decode builds a T from in, returning Errors when any field is rejected.
func Decode[T any](in Input) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("validation: %T is not a struct", out))
	}
	rt := rv.Type()

	typeErrors := make(map[string]Violation)
	names := make(map[string]string, rt.NumField())
	order := make([]string, 0, rt.NumField())

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := fieldName(sf)
		if name == "" {
			continue
		}
		names[sf.Name] = name
		order = append(order, name)

		raw, ok := in[name]
		if !ok || raw == nil {
			continue
		}
		if v, ok := assign(rv.Field(i), raw); !ok {
			typeErrors[name] = Violation{Field: name, Kind: InvalidType, Message: v}
		}
	}

	ruleErrors := make(map[string][]Violation)
	if err := validate.Struct(&out); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		for _, fe := range fieldErrs {
			name, _, _ := strings.Cut(fe.Field(), "[")
			if _, failed := typeErrors[name]; failed {
				continue
			}
			ruleErrors[name] = append(ruleErrors[name], describe(fe, names))
		}
	}

	var errs Errors
	for _, name := range order {
		if v, ok := typeErrors[name]; ok {
			errs = append(errs, v)
			continue
		}
		errs = append(errs, ruleErrors[name]...)
	}
	if len(errs) > 0 {
		var zero T
		return zero, errs
	}
	return out, nil
}

// assign stores raw into field, returning a message when the type does not fit.
func assign(field reflect.Value, raw any) (string, bool) {
	switch field.Kind() {
	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return "must be a string", false
		}
		field.SetString(s)
		return "", true

	case reflect.Pointer:
		if field.Type().Elem().Kind() != reflect.String {
			break
		}
		s, ok := raw.(string)
		if !ok {
			return "must be a string", false
		}
		field.Set(reflect.ValueOf(&s))
		return "", true

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			break
		}
		list, ok := stringList(raw)
		if !ok {
			return "must be a list of strings", false
		}
		field.Set(reflect.ValueOf(list))
		return "", true
	}
	return fmt.Sprintf("unsupported type %s", field.Type()), false
}

func stringList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			list = append(list, s)
		}
		return list, true
	}
	return nil, false
}

func describe(fe validator.FieldError, names map[string]string) Violation {
	v := Violation{Field: fe.Field(), Kind: InvalidFormat}
	switch fe.Tag() {
	case "required":
		v.Kind = MissingField
		v.Message = "is required"
	case "hexuuid", "uuid", "uuid4":
		v.Message = "must be a valid UUID"
	case "email":
		v.Message = "must be a valid email address"
	case "datetime":
		v.Message = fmt.Sprintf("must be a date formatted as %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			v.Message = fmt.Sprintf("must be at least %s characters", fe.Param())
		} else {
			v.Message = fmt.Sprintf("must contain at least %s items", fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			v.Message = fmt.Sprintf("must not exceed %s characters", fe.Param())
		} else {
			v.Message = fmt.Sprintf("must not contain more than %s items", fe.Param())
		}
	case "eqfield":
		other := names[fe.Param()]
		if other == "" {
			other = fe.Param()
		}
		v.Message = "must match " + other
	case "oneof":
		v.Message = fmt.Sprintf("must be one of: %s", fe.Param())
	case "dive":
		v.Message = "some items are invalid"
	default:
		if fe.Param() != "" {
			v.Message = fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		} else {
			v.Message = "failed " + fe.Tag()
		}
	}
	return v
}

func fieldName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}
