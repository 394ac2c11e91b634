package configuration

import (
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTrueBool_Get(t *testing.T) {
	tests := []struct {
		name     string
		input    DefaultTrueBool
		expected bool
	}{
		{
			name: "Present and True returns True",
			input: DefaultTrueBool{
				Optional: Optional[bool]{Value: true, Present: true},
			},
			expected: true,
		},
		{
			name: "Present and False returns False",
			input: DefaultTrueBool{
				Optional: Optional[bool]{Value: false, Present: true},
			},
			expected: false,
		},
		{
			name: "Not Present returns True (Default)",
			input: DefaultTrueBool{
				Optional: Optional[bool]{Value: false, Present: false},
			},
			expected: true,
		},
		{
			name: "Explicit Set wins over Missing",
			input: func() DefaultTrueBool {
				b := DefaultTrueBool{}
				b.Set(false)
				return b
			}(),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Get(); got != tt.expected {
				t.Errorf("DefaultTrueBool.Get() = %v, want %v", got, tt.expected)
			}
		})
	}
}

type hookTestConfig struct {
	Enabled        DefaultTrueBool `mapstructure:"enabled"`
	ErrorCondition ErrorCondition  `mapstructure:"errorCondition"`
}

func decodeWithHook(t *testing.T, input map[string]interface{}) (hookTestConfig, error) {
	var result hookTestConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decodeHookFunc(),
		Result:     &result,
	})
	assert.NoError(t, err)
	return result, decoder.Decode(input)
}

func TestDecodeHookDefaultTrueBool(t *testing.T) {
	// GIVEN
	explicitFalse := map[string]interface{}{"enabled": false}
	absent := map[string]interface{}{}

	// WHEN
	falseResult, falseErr := decodeWithHook(t, explicitFalse)
	absentResult, absentErr := decodeWithHook(t, absent)

	// THEN
	assert.NoError(t, falseErr)
	assert.False(t, falseResult.Enabled.Get())
	assert.NoError(t, absentErr)
	assert.True(t, absentResult.Enabled.Get())
}

func TestDecodeHookRejectsStringBool(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{"enabled": "yes"}

	// WHEN
	_, err := decodeWithHook(t, input)

	// THEN
	assert.Error(t, err)
}

func TestDecodeHookErrorConditionFromString(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{"errorCondition": "stop"}

	// WHEN
	result, err := decodeWithHook(t, input)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, ErrorConditionStop, result.ErrorCondition)
}

func TestDecodeHookErrorConditionFromLegacyCode(t *testing.T) {
	// GIVEN the numeric encoding of older configurations
	tests := map[int]ErrorCondition{
		0: ErrorConditionStop,
		1: ErrorConditionAlarm,
		2: ErrorConditionIgnoreInvalidSensors,
		3: ErrorConditionContinueLastGood,
	}

	for code, expected := range tests {
		// WHEN
		result, err := decodeWithHook(t, map[string]interface{}{"errorCondition": code})

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, expected, result.ErrorCondition)
	}
}

func TestDecodeHookErrorConditionUnknownCode(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{"errorCondition": 9}

	// WHEN
	_, err := decodeWithHook(t, input)

	// THEN
	assert.Error(t, err)
}
