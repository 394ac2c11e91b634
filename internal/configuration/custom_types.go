package configuration

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Optional is a generic container for optional configuration values.
type Optional[T any] struct {
	// Value holds the actual value as unmarshalled.
	Value T
	// Present indicates if the value was present in the configuration.
	Present bool
}

// DefaultTrueBool is a boolean type that defaults to true if not present.
type DefaultTrueBool struct {
	Optional[bool]
}

// Get returns the boolean value, defaulting to true if not present.
func (b *DefaultTrueBool) Get() bool {
	if !b.Present {
		return true
	}
	return b.Value
}

// Set stores an explicit value.
func (b *DefaultTrueBool) Set(value bool) {
	b.Present = true
	b.Value = value
}

func decodeHookFunc() mapstructure.DecodeHookFuncType {
	defaultTrueBoolType := reflect.TypeOf(DefaultTrueBool{})
	errorConditionType := reflect.TypeOf(ErrorCondition(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t == defaultTrueBoolType {
			switch v := data.(type) {
			case bool:
				return DefaultTrueBool{Optional[bool]{Value: v, Present: true}}, nil
			case string:
				return nil, fmt.Errorf("expected a boolean, got %q", v)
			}
			return data, nil
		}

		// ErrorCondition: accept the legacy numeric encoding as well
		if t == errorConditionType {
			switch v := data.(type) {
			case int:
				legacy := []ErrorCondition{
					ErrorConditionStop,
					ErrorConditionAlarm,
					ErrorConditionIgnoreInvalidSensors,
					ErrorConditionContinueLastGood,
				}
				if v < 0 || v >= len(legacy) {
					return nil, fmt.Errorf("unknown error condition code %d", v)
				}
				return legacy[v], nil
			case string:
				return ErrorCondition(v), nil
			}
		}

		return data, nil
	}
}
