package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/biztime/internal/errs"
)

var (
	ErrBodyRequired   = errs.BadRequest("request body is required")
	ErrTrailingData   = errs.BadRequest("invalid request body: unexpected data after JSON value")
	ErrNotJSONContent = errs.UnsupportedMediaType("Content-Type must be application/json")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Decode reads the JSON request body into dst and runs its validate tags.
// A missing body, malformed JSON or failed validation is a bad request.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrBodyRequired
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrBodyRequired
		}

		return errs.BadRequest("invalid request body: " + err.Error())
	}

	if dec.More() {
		return ErrTrailingData
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return errs.BadRequest(validationMessage(fieldErrs))
		}

		return fmt.Errorf("validating request: %w", err)
	}

	return nil
}

// RequireJSON rejects requests that carry a body with any Content-Type other
// than application/json. Bodiless requests pass through.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			Error(w, r, ErrNotJSONContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func validationMessage(fieldErrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "max":
			msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
		case "min":
			msg = fmt.Sprintf("must be at least %s characters", fe.Param())
		default:
			msg = "is invalid"
		}

		msgs = append(msgs, fe.Field()+" "+msg)
	}

	return "Validation failed: " + strings.Join(msgs, ", ")
}
