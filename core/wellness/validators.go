package wellness

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/mindbloom/core"
)

var nowFunc = time.Now // mockable

// DefaultHealthyThreshold is the number of screen-free minutes a Healthy entry needs unless configured otherwise.
const DefaultHealthyThreshold = 60

// Policy holds the classification rules.
type Policy struct {
	HealthyThreshold float64
}

func DefaultPolicy() Policy {
	return Policy{HealthyThreshold: DefaultHealthyThreshold}
}

// Validator checks candidate entries and classifies them. It holds no mutable state.
type Validator struct {
	policy     Policy
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator returns a Validator for policy.
// validate and translator must have been set up with core.InitValidators.
func NewValidator(policy Policy, validate *validator.Validate, translator ut.Translator) (*Validator, error) {
	if !(policy.HealthyThreshold > 0) {
		return nil, core.NewValidationError(ErrInvalidPolicy, core.FieldError{
			Field: "healthyThreshold",
			Error: ErrInvalidPolicy.Error(),
		})
	}
	if validate == nil || translator == nil {
		translator = core.NewTranslator()
		validate = core.NewValidate(translator)
	}
	return &Validator{policy: policy, validate: validate, translator: translator}, nil
}

// NewDefaultValidator returns a Validator with its own validator instance.
func NewDefaultValidator(policy Policy) (*Validator, error) {
	return NewValidator(policy, nil, nil)
}

func (v *Validator) Policy() Policy { return v.policy }

// Classify computes the status of an entry: Healthy requires at least HealthyThreshold screen-free
// minutes and a me-time activity.
func (v *Validator) Classify(minutes float64, meTimeActivity string) Status {
	if minutes >= v.policy.HealthyThreshold && strings.TrimSpace(meTimeActivity) != "" {
		return StatusHealthy
	}
	return StatusNeedsMoreMeTime
}

// Validate turns a candidate into an Entry.
// It fails with *EmptyFieldError, *InvalidCharacterError or *InvalidNumberError, checked in that order.
func (v *Validator) Validate(ne NewEntry) (Entry, error) {
	ne = ne.Clean()
	if err := v.check(ne); err != nil {
		return Entry{}, err
	}

	minutes, _ := core.ParsePositiveNumber(ne.ScreenFreeMinutes)
	return Entry{
		id:                uuid.New(),
		studentName:       ne.StudentName,
		wellnessActivity:  ne.WellnessActivity,
		meTimeActivity:    ne.MeTimeActivity,
		screenFreeMinutes: minutes,
		notes:             ne.Notes,
		status:            v.Classify(minutes, ne.MeTimeActivity),
		createdAt:         nowFunc(),
	}, nil
}

// PreviewStatus computes the status of a candidate that may not be complete yet.
func (v *Validator) PreviewStatus(ne NewEntry) Preview {
	ne = ne.Clean()
	err := v.check(ne)
	switch {
	case err == nil:
		minutes, _ := core.ParsePositiveNumber(ne.ScreenFreeMinutes)
		return previewOf(v.Classify(minutes, ne.MeTimeActivity))
	case errors.Is(err, ErrEmptyField):
		return PreviewIncomplete
	default:
		return PreviewInvalid
	}
}

// check runs the struct validation and reports the first failure by precedence:
// an empty field, then a bad character, then a bad number.
func (v *Validator) check(ne NewEntry) error {
	err := v.validate.Struct(ne)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "validating entry")
	}

	var charErr, numErr error
	for _, fe := range vErrs { // in struct field order
		switch fe.Tag() {
		case "required":
			return &EmptyFieldError{Field: fe.Field(), Message: fe.Translate(v.translator)}
		case core.AlphaSpaceTag:
			if charErr == nil {
				charErr = &InvalidCharacterError{
					Field:   fe.Field(),
					Value:   fmt.Sprint(fe.Value()),
					Message: fe.Translate(v.translator),
				}
			}
		case core.PosNumberTag:
			numErr = &InvalidNumberError{Value: fmt.Sprint(fe.Value()), Message: fe.Translate(v.translator)}
		}
	}
	if charErr != nil {
		return charErr
	}
	if numErr != nil {
		return numErr
	}
	return errors.Wrap(err, "validating entry")
}

// Messages returns the field -> message form of a validation error, for display next to the inputs.
// It is nil for any other error.
func (v *Validator) Messages(err error) map[string]string {
	vErr, ok := AsValidationError(err)
	if !ok {
		return nil
	}
	return vErr.FieldMap()
}
