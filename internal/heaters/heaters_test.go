package heaters

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestFileHeaterActuate(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "percent")
	heater := &FileHeater{
		Config: configuration.HeaterConfig{
			ID:        "zone1_main",
			MaxPowerW: 40.0,
			File:      &configuration.FileHeaterConfig{Path: path},
		},
	}

	// WHEN
	err := heater.Actuate(42.5)

	// THEN
	assert.NoError(t, err)
	content, readErr := os.ReadFile(path)
	assert.NoError(t, readErr)
	value, parseErr := strconv.ParseFloat(string(content), 64)
	assert.NoError(t, parseErr)
	assert.Equal(t, 42.5, value)
}

func TestFileHeaterEmergencyOff(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "percent")
	heater := &FileHeater{
		Config: configuration.HeaterConfig{
			ID:        "zone1_main",
			MaxPowerW: 40.0,
			File:      &configuration.FileHeaterConfig{Path: path},
		},
	}
	assert.NoError(t, heater.Actuate(80.0))

	// WHEN
	err := heater.EmergencyOff()

	// THEN
	assert.NoError(t, err)
	content, readErr := os.ReadFile(path)
	assert.NoError(t, readErr)
	value, parseErr := strconv.ParseFloat(string(content), 64)
	assert.NoError(t, parseErr)
	assert.Equal(t, 0.0, value)
}

func TestNewHeaterFactory(t *testing.T) {
	// GIVEN
	fileConfig := configuration.HeaterConfig{ID: "a", File: &configuration.FileHeaterConfig{}}
	cmdConfig := configuration.HeaterConfig{
		ID:  "b",
		Cmd: &configuration.CmdHeaterConfig{SetPower: &configuration.ExecConfig{Exec: "/usr/bin/true"}},
	}
	emptyConfig := configuration.HeaterConfig{ID: "c"}

	// WHEN
	file, fileErr := NewHeater(fileConfig)
	cmd, cmdErr := NewHeater(cmdConfig)
	_, emptyErr := NewHeater(emptyConfig)

	// THEN
	assert.NoError(t, fileErr)
	assert.IsType(t, &FileHeater{}, file)
	assert.NoError(t, cmdErr)
	assert.IsType(t, &CmdHeater{}, cmd)
	assert.Error(t, emptyErr)
}
