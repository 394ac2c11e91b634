package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWindowAvg(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(290)
	window.Append(300)
	window.Append(310)

	// WHEN
	avg := GetWindowAvg(window)

	// THEN
	assert.Equal(t, 300.0, avg)
}

func TestGetWindowAvgPartiallyFilled(t *testing.T) {
	// GIVEN a window larger than the number of samples
	window := CreateRollingWindow(10)
	window.Append(290)
	window.Append(310)

	// WHEN
	avg := GetWindowAvg(window)

	// THEN only appended samples contribute
	assert.Equal(t, 300.0, avg)
}
