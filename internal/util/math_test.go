package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceWithinBounds(t *testing.T) {
	// GIVEN
	value := 50.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 50.0, result)
}

func TestCoerceBelowMin(t *testing.T) {
	// GIVEN
	value := -5.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestCoerceAboveMax(t *testing.T) {
	// GIVEN
	value := 150.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 100.0, result)
}
