package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// ErrMissingFields is returned when a required form value is absent.
var ErrMissingFields = errors.New(MsgMissingFields)

// FormError is a 400-class problem with a submitted form or body.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

var (
	formDecoder = newFormDecoder()
	validate    = newValidator()
)

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(false)
	d.ZeroEmpty(true)
	return d
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			if name := strings.Split(f.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// DecodeForm copies the text parts of form into dst and validates it. Any
// text part without a matching field is rejected. fileFields name the file
// parts the endpoint accepts; browsers send an empty text part under that
// name when no file was chosen, so those keys are skipped here.
func DecodeForm(form *multipart.Form, dst interface{}, fileFields ...string) error {
	values := make(map[string][]string, len(form.Value))
	for k, v := range form.Value {
		if contains(fileFields, k) && strings.TrimSpace(strings.Join(v, "")) == "" {
			continue
		}
		values[k] = v
	}
	for k := range form.File {
		if !contains(fileFields, k) {
			return &FormError{Message: fmt.Sprintf("Unknown field: %s", k)}
		}
	}

	if err := formDecoder.Decode(dst, values); err != nil {
		return decodeError(err)
	}
	return Validate(dst)
}

func decodeError(err error) error {
	var multi schema.MultiError
	if errors.As(err, &multi) {
		for key, e := range multi {
			var unknown schema.UnknownKeyError
			if errors.As(e, &unknown) {
				return &FormError{Message: fmt.Sprintf("Unknown field: %s", unknown.Key)}
			}
			return &FormError{Message: fmt.Sprintf("Invalid value for %s", key)}
		}
	}
	return &FormError{Message: MsgInvalidPayload}
}

// Validate runs the struct's validate tags. A missing required value maps to
// ErrMissingFields, anything else to a FormError naming the field.
func Validate(dst interface{}) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FormError{Message: MsgInvalidPayload}
	}
	for _, fe := range verrs {
		if strings.HasPrefix(fe.Tag(), "required") {
			return ErrMissingFields
		}
	}
	return &FormError{Message: fmt.Sprintf("Invalid value for %s", verrs[0].Field())}
}

// IsBadRequest reports whether err came from decoding or validating input.
func IsBadRequest(err error) bool {
	var fe *FormError
	return errors.Is(err, ErrMissingFields) || errors.As(err, &fe)
}

// SplitComma turns "a, b,,c" into [a b c].
func SplitComma(s string) []string {
	return splitTrim(s, ",")
}

// SplitLines turns one requirement per line into a list.
func SplitLines(s string) []string {
	return splitTrim(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func splitTrim(s, sep string) []string {
	out := []string{}
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate accepts the date formats the admin console and HTML date inputs
// produce. Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn is ParseDate with zone-less values read in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &FormError{Message: fmt.Sprintf("Invalid date: %s", s)}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
