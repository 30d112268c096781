package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MaxRequestBodyBytes caps the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// validate reports field names by their json tag so messages match the wire
// format. It also knows the non-standard "notblank" rule.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// DecodeJSON decodes the request body into v. Bodies larger than
// MaxRequestBodyBytes and trailing data after the first JSON value are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	if w != nil {
		r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON value")
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return validate.Struct(v)
}
