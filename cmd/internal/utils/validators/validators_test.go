package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordProbe struct {
	Password string `validate:"hasupper,haslower,hasdigit,hasspecial,nospaces"`
}

type timestampProbe struct {
	At string `validate:"iso8601"`
}

type dateProbe struct {
	On string `validate:"dateonly"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("hasupper", HasUpper))
	require.NoError(t, v.RegisterValidation("haslower", HasLower))
	require.NoError(t, v.RegisterValidation("hasdigit", HasDigit))
	require.NoError(t, v.RegisterValidation("hasspecial", HasSpecial))
	require.NoError(t, v.RegisterValidation("nospaces", NoWhiteSpaces))
	require.NoError(t, v.RegisterValidation("iso8601", IsIso8601))
	require.NoError(t, v.RegisterValidation("dateonly", IsDateOnly))
	return v
}

func TestPasswordRules(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		password string
		valid    bool
	}{
		{"Str0ng!pass", true},
		{"weakpass1!", false},  // no upper
		{"ALLCAPS1!", false},   // no lower
		{"NoDigits!!", false},  // no digit
		{"NoSpecial123a", false},
		{"Has space1!A", false},
	}

	for _, tc := range cases {
		err := v.Struct(&passwordProbe{Password: tc.password})
		if tc.valid {
			assert.NoError(t, err, tc.password)
		} else {
			assert.Error(t, err, tc.password)
		}
	}
}

func TestIsIso8601(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(&timestampProbe{At: "2025-09-01T10:00:00Z"}))
	assert.NoError(t, v.Struct(&timestampProbe{At: "2025-09-01T10:00:00+02:00"}))
	assert.Error(t, v.Struct(&timestampProbe{At: "2025-09-01 10:00"}))
	assert.Error(t, v.Struct(&timestampProbe{At: "not a time"}))
}

func TestIsDateOnly(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(&dateProbe{On: "2025-09-01"}))
	assert.Error(t, v.Struct(&dateProbe{On: "2025-9-1"}))
	assert.Error(t, v.Struct(&dateProbe{On: "2025-09-01T00:00:00Z"}))
}
