package wellness

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T, threshold float64) *Validator {
	t.Helper()
	v, err := NewDefaultValidator(Policy{HealthyThreshold: threshold})
	require.NoError(t, err)
	return v
}

func candidate(name, wellness, meTime, minutes string) NewEntry {
	return NewEntry{
		StudentName:       name,
		WellnessActivity:  wellness,
		MeTimeActivity:    meTime,
		ScreenFreeMinutes: minutes,
	}
}

func TestNewValidator(t *testing.T) {
	for _, threshold := range []float64{0, -1} {
		_, err := NewDefaultValidator(Policy{HealthyThreshold: threshold})
		require.Error(t, err, "threshold %v", threshold)
		assert.True(t, errors.Is(err, ErrInvalidPolicy))
	}

	v, err := NewDefaultValidator(DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultHealthyThreshold), v.Policy().HealthyThreshold)
}

func TestValidator_Validate(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }() // reset

	v := newTestValidator(t, DefaultHealthyThreshold)

	tests := []struct {
		name       string
		ne         NewEntry
		wantErr    error
		wantField  string
		wantStatus Status
		wantMins   float64
	}{
		{name: "healthy", ne: candidate("Asha Rao", "Meditation", "Music", "75"), wantStatus: StatusHealthy, wantMins: 75},
		{name: "needs more me-time", ne: candidate("Asha Rao", "Meditation", "Music", "30"), wantStatus: StatusNeedsMoreMeTime, wantMins: 30},
		{name: "threshold is inclusive", ne: candidate("Asha Rao", "Meditation", "Music", "60"), wantStatus: StatusHealthy, wantMins: 60},
		{name: "fractional minutes", ne: candidate("Asha Rao", "Meditation", "Music", "59.5"), wantStatus: StatusNeedsMoreMeTime, wantMins: 59.5},
		{name: "fields are trimmed", ne: candidate("  Asha Rao ", " Art Therapy", "Dance  ", " 90 "), wantStatus: StatusHealthy, wantMins: 90},
		{name: "empty name", ne: candidate("", "Meditation", "Music", "75"), wantErr: ErrEmptyField, wantField: FieldName},
		{name: "blank name", ne: candidate("   ", "Meditation", "Music", "75"), wantErr: ErrEmptyField, wantField: FieldName},
		{name: "empty wellness", ne: candidate("Asha", "", "Music", "75"), wantErr: ErrEmptyField, wantField: FieldWellnessActivity},
		{name: "empty me-time", ne: candidate("Asha", "Meditation", " ", "75"), wantErr: ErrEmptyField, wantField: FieldMeTimeActivity},
		{name: "empty minutes", ne: candidate("Asha", "Meditation", "Music", ""), wantErr: ErrEmptyField, wantField: FieldScreenFreeMinutes},
		{name: "empty beats invalid", ne: candidate("Asha1", "", "Music", "-5"), wantErr: ErrEmptyField, wantField: FieldWellnessActivity},
		{name: "digit in name", ne: candidate("Asha1", "Meditation", "Music", "75"), wantErr: ErrInvalidCharacter, wantField: FieldName},
		{name: "punctuation in wellness", ne: candidate("Asha", "Yoga!", "Music", "75"), wantErr: ErrInvalidCharacter, wantField: FieldWellnessActivity},
		{name: "hyphen in me-time", ne: candidate("Asha", "Yoga", "Me-Time", "75"), wantErr: ErrInvalidCharacter, wantField: FieldMeTimeActivity},
		{name: "first bad field wins", ne: candidate("Asha", "Yoga2", "Music3", "75"), wantErr: ErrInvalidCharacter, wantField: FieldWellnessActivity},
		{name: "character beats number", ne: candidate("Asha1", "Yoga", "Music", "-5"), wantErr: ErrInvalidCharacter, wantField: FieldName},
		{name: "negative minutes", ne: candidate("Asha", "Yoga", "Music", "-5"), wantErr: ErrInvalidNumber, wantField: FieldScreenFreeMinutes},
		{name: "zero minutes", ne: candidate("Asha", "Yoga", "Music", "0"), wantErr: ErrInvalidNumber, wantField: FieldScreenFreeMinutes},
		{name: "text minutes", ne: candidate("Asha", "Yoga", "Music", "abc"), wantErr: ErrInvalidNumber, wantField: FieldScreenFreeMinutes},
		{name: "nan minutes", ne: candidate("Asha", "Yoga", "Music", "NaN"), wantErr: ErrInvalidNumber, wantField: FieldScreenFreeMinutes},
		{name: "infinite minutes", ne: candidate("Asha", "Yoga", "Music", "Inf"), wantErr: ErrInvalidNumber, wantField: FieldScreenFreeMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := v.Validate(tt.ne)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "Validate() error = %v, wantErr %v", err, tt.wantErr)
				assert.True(t, e.IsZero())

				vErr, ok := AsValidationError(err)
				require.True(t, ok)
				assert.Contains(t, vErr.FieldMap(), tt.wantField)
				return
			}
			require.NoError(t, err)
			assert.False(t, e.IsZero())
			assert.Equal(t, tt.wantStatus, e.Status())
			assert.Equal(t, tt.wantMins, e.ScreenFreeMinutes())
			assert.Equal(t, now, e.CreatedAt())
		})
	}
}

func TestValidator_Validate_fields(t *testing.T) {
	v := newTestValidator(t, DefaultHealthyThreshold)
	ne := candidate(" Asha Rao ", "Art Therapy", "Gardening", "75")
	ne.Notes = "  slept well  "

	e, err := v.Validate(ne)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", e.StudentName())
	assert.Equal(t, "Art Therapy", e.WellnessActivity())
	assert.Equal(t, "Gardening", e.MeTimeActivity())
	assert.Equal(t, "slept well", e.Notes())
	assert.True(t, e.IsHealthy())

	other, err := v.Validate(ne)
	require.NoError(t, err)
	assert.NotEqual(t, e.ID(), other.ID())
}

func TestValidator_Validate_messages(t *testing.T) {
	v := newTestValidator(t, DefaultHealthyThreshold)

	_, err := v.Validate(candidate("", "Yoga", "Music", "75"))
	assert.Equal(t, map[string]string{FieldName: "name cannot be empty"}, v.Messages(err))

	_, err = v.Validate(candidate("Asha1", "Yoga", "Music", "75"))
	assert.Equal(t, map[string]string{FieldName: "name must only contain letters and spaces"}, v.Messages(err))

	_, err = v.Validate(candidate("Asha", "Yoga", "Music", "-5"))
	assert.Equal(t, map[string]string{
		FieldScreenFreeMinutes: "screen_free_minutes must be a positive number",
	}, v.Messages(err))

	var numErr *InvalidNumberError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "-5", numErr.Value)

	assert.Nil(t, v.Messages(errors.New("boom")))
	assert.Nil(t, v.Messages(nil))
}

func TestValidator_Classify(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		minutes   float64
		meTime    string
		want      Status
	}{
		{name: "above threshold", threshold: 60, minutes: 75, meTime: "Music", want: StatusHealthy},
		{name: "at threshold", threshold: 60, minutes: 60, meTime: "Music", want: StatusHealthy},
		{name: "below threshold", threshold: 60, minutes: 59.99, meTime: "Music", want: StatusNeedsMoreMeTime},
		{name: "no me-time", threshold: 60, minutes: 120, meTime: "", want: StatusNeedsMoreMeTime},
		{name: "blank me-time", threshold: 60, minutes: 120, meTime: "  ", want: StatusNeedsMoreMeTime},
		{name: "custom threshold", threshold: 120, minutes: 75, meTime: "Music", want: StatusNeedsMoreMeTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t, tt.threshold)
			for range 3 { // deterministic
				assert.Equal(t, tt.want, v.Classify(tt.minutes, tt.meTime))
			}
		})
	}
}

func TestValidator_PreviewStatus(t *testing.T) {
	v := newTestValidator(t, DefaultHealthyThreshold)

	tests := []struct {
		name string
		ne   NewEntry
		want Preview
	}{
		{name: "blank form", ne: NewEntry{}, want: PreviewIncomplete},
		{name: "partly filled", ne: candidate("Asha", "Yoga", "", ""), want: PreviewIncomplete},
		{name: "partly filled with errors", ne: candidate("Asha1", "", "Music", "x"), want: PreviewIncomplete},
		{name: "bad character", ne: candidate("Asha1", "Yoga", "Music", "75"), want: PreviewInvalid},
		{name: "bad number", ne: candidate("Asha", "Yoga", "Music", "soon"), want: PreviewInvalid},
		{name: "healthy", ne: candidate("Asha", "Yoga", "Music", "75"), want: PreviewHealthy},
		{name: "needs more me-time", ne: candidate("Asha", "Yoga", "Music", "30"), want: PreviewNeedsMoreMeTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.PreviewStatus(tt.ne))
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "Fill all fields to see status", PreviewIncomplete.Message())
	assert.Equal(t, "Status: Healthy", PreviewHealthy.Message())
	assert.Equal(t, "Status: Needs More Me-Time", PreviewNeedsMoreMeTime.Message())

	s, ok := PreviewNeedsMoreMeTime.Status()
	assert.True(t, ok)
	assert.Equal(t, StatusNeedsMoreMeTime, s)

	_, ok = PreviewInvalid.Status()
	assert.False(t, ok)
}
