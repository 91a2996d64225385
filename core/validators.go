package core

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	AlphaSpaceTag   = "alphaspace"
	alphaSpaceText  = "{0} must only contain letters and spaces"
	alphaSpaceRegex = regexp.MustCompile(`^[A-Za-z ]+$`)

	NotBlankTag  = "notblank"
	notBlankText = "{0} cannot be empty"

	PosNumberTag  = "posnumber"
	posNumberText = "{0} must be a positive number"

	requiredTag  = "required"
	requiredText = "{0} cannot be empty"
)

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// NewValidate returns a validator set up with InitValidators.
func NewValidate(translator ut.Translator) *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	InitValidators(validate, translator)
	return validate
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(AlphaSpaceTag, alphaSpaceValidation)
	RegisterCustomTranslation(validate, translator, AlphaSpaceTag, alphaSpaceText)

	_ = validate.RegisterValidation(NotBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, NotBlankTag, notBlankText)

	_ = validate.RegisterValidation(PosNumberTag, posNumberValidation)
	RegisterCustomTranslation(validate, translator, PosNumberTag, posNumberText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
// "{0}" in text is replaced by the field name.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// IsAlphaSpace reports whether s is made of ASCII letters and spaces only.
func IsAlphaSpace(s string) bool {
	return alphaSpaceRegex.MatchString(s)
}

// ParsePositiveNumber parses s as a finite number strictly greater than 0.
func ParsePositiveNumber(s string) (float64, bool) {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) || val <= 0 {
		return 0, false
	}
	return val, true
}

// Custom Global Validators

// alphaSpaceValidation only allows letters and spaces.
func alphaSpaceValidation(fl validator.FieldLevel) bool {
	return IsAlphaSpace(fl.Field().String())
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// posNumberValidation checks that a string field holds a positive number.
func posNumberValidation(fl validator.FieldLevel) bool {
	_, ok := ParsePositiveNumber(fl.Field().String())
	return ok
}
