package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadFloatFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	assert.NoError(t, os.WriteFile(path, []byte("293.15\n"), 0644))

	// WHEN
	value, err := ReadFloatFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 293.15, value)
}

func TestReadFloatFromEmptyFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	assert.NoError(t, os.WriteFile(path, []byte(""), 0644))

	// WHEN
	_, err := ReadFloatFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestReadFloatFromMissingFile(t *testing.T) {
	// WHEN
	_, err := ReadFloatFromFile("/nonexistent/value")

	// THEN
	assert.Error(t, err)
}

func TestWriteFloatToFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")

	// WHEN
	err := WriteFloatToFileAtomic(42.5, path)

	// THEN
	assert.NoError(t, err)
	value, readErr := ReadFloatFromFile(path)
	assert.NoError(t, readErr)
	assert.Equal(t, 42.5, value)
}

func TestWriteFloatToFileAtomicOverwrites(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	assert.NoError(t, WriteFloatToFileAtomic(10.0, path))

	// WHEN
	assert.NoError(t, WriteFloatToFileAtomic(20.0, path))

	// THEN
	value, err := ReadFloatFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, value)
}
