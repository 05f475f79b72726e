// Package bind decodes request bodies and validates them with go-playground/validator
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// ValidatorSvc pairs the validator with its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
	mu         sync.Mutex
}

var (
	get = sync.OnceValue(build)

	// seam for the trailing data check
	jsonMore = func(dec *json.Decoder) bool { return dec.More() }
)

// Get returns the process validator, building it on first use
func Get() *ValidatorSvc { return get() }

func build() *ValidatorSvc {
	enLoc := en.New()
	trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	s := &ValidatorSvc{Validator: v, Translator: trans}
	s.message("min", "{0} must be at least {1}")
	s.message("max", "{0} must be at most {1}")
	_ = s.Register("notblank", notBlank, "{0} must not be blank")
	_ = s.Register("utf8", validUTF8, "{0} must be valid UTF-8")
	return s
}

// jsonName reports fields by their json name in messages
func jsonName(fld reflect.StructField) string {
	tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return fld.Name
	}
	return tag
}

func notBlank(fl FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.String:
		return strings.TrimSpace(f.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return f.Len() > 0
	}
	return !f.IsZero()
}

func validUTF8(fl FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.String:
		return utf8.ValidString(f.String())
	case reflect.Slice:
		for i := range f.Len() {
			if e := f.Index(i); e.Kind() == reflect.String && !utf8.ValidString(e.String()) {
				return false
			}
		}
	}
	return true
}

// message overrides the translation for tag; {0} is the field, {1} the param
func (s *ValidatorSvc) message(tag, text string) {
	_ = s.Validator.RegisterTranslation(tag, s.Translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Register adds a custom tag and its english message
func (s *ValidatorSvc) Register(tag string, fn validator.Func, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Validator.RegisterValidation(tag, fn); err != nil {
		return err
	}
	s.message(tag, text)
	return nil
}

// RegisterValidation registers tag on the process validator
func RegisterValidation(tag string, fn validator.Func, text string) error {
	return Get().Register(tag, fn, text)
}

// Struct validates v and returns the first failure as a Validation error with its field
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Named("bind").Error().Err(inv).Msg("validator misuse")
		return perr.Internalf("validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

// JSONOptions controls ParseJSON
type JSONOptions struct {
	MaxBytes       int64 // default 1 MiB
	AllowUnknown   bool
	AllowEmptyBody bool
}

// ParseJSON decodes one JSON value into T and validates it
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero, dst T
	o := JSONOptions{MaxBytes: 1 << 20}
	if len(opts) > 0 {
		o = opts[0]
	}

	body := r.Body
	if body == nil {
		body = http.NoBody
	}
	defer body.Close()
	if o.MaxBytes > 0 {
		body = http.MaxBytesReader(nil, body, o.MaxBytes)
	}

	dec := json.NewDecoder(body)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF) && o.AllowEmptyBody:
			return dst, Struct(dst)
		case errors.Is(err, io.EOF):
			return zero, perr.JSONErrf("empty body")
		case errors.As(err, &tooBig):
			return zero, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// QueryInt reads an integer query param in [lo, hi], def when absent
func QueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer between %d and %d", key, lo, hi), key)
	}
	return n, nil
}

// QueryString reads a required query param
func QueryString(r *http.Request, key string) (string, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return "", perr.WithField(perr.Validationf("%s is required", key), key)
	}
	return s, nil
}
