package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/retro-quiz/internal/response"
)

// MaxBodyBytes caps request bodies read by Bind.
const MaxBodyBytes = 1 << 20

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		en_translations.RegisterDefaultTranslations(v, trans)
	}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. Decoding errors are reported
// against the offending field, or under "body" when there is none.
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		fields[field] = fmt.Sprintf("must be %s, got %s", describeType(typeErr.Type), typeErr.Value)
		return fields
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		fields["body"] = fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
		return fields
	}

	fields["body"] = err.Error()
	return fields
}

// Bind reads, decodes and validates the JSON request body into dst.
// An empty or null body yields ErrEmptyBody; undecodable input yields
// ErrInvalidPayload and failed binding tags ErrValidation. On success the
// returned code is empty.
func Bind(c *gin.Context, dst interface{}) (response.ErrCode, map[string]string) {
	if c.Request.Body == nil {
		return response.ErrEmptyBody, nil
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		return response.ErrInvalidPayload, map[string]string{"body": err.Error()}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return response.ErrEmptyBody, nil
	}

	if err := binding.JSON.BindBody(trimmed, dst); err != nil {
		var ve govalidator.ValidationErrors
		if errors.As(err, &ve) {
			return response.ErrValidation, TranslateErrors(err)
		}
		return response.ErrInvalidPayload, TranslateErrors(err)
	}
	return "", nil
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	case reflect.Map, reflect.Struct:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Bool:
		return "a boolean"
	default:
		return t.String()
	}
}
