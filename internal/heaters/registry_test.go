package heaters

import (
	"errors"
	"testing"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/stretchr/testify/assert"
)

type mockHeater struct {
	config configuration.HeaterConfig

	lastPercent  float64
	actuations   int
	emergencyOff bool
	actuateErr   error
}

func (h *mockHeater) GetId() string                         { return h.config.ID }
func (h *mockHeater) GetConfig() configuration.HeaterConfig { return h.config }

func (h *mockHeater) Actuate(percent float64) error {
	if h.actuateErr != nil {
		return h.actuateErr
	}
	h.lastPercent = percent
	h.actuations++
	return nil
}

func (h *mockHeater) EmergencyOff() error {
	h.emergencyOff = true
	h.lastPercent = 0
	return nil
}

func createMockHeater(id string, maxPowerW float64) *mockHeater {
	return &mockHeater{
		config: configuration.HeaterConfig{
			ID:        id,
			MaxPowerW: maxPowerW,
		},
	}
}

func TestSetPowerClampsToValidRange(t *testing.T) {
	// GIVEN
	heater := createMockHeater("zone1_main", 40.0)
	registry := NewRegistry([]Heater{heater})

	// WHEN
	errLow := registry.SetPower("zone1_main", -5.0)
	low, _ := registry.GetPower("zone1_main")
	errHigh := registry.SetPower("zone1_main", 150.0)
	high, _ := registry.GetPower("zone1_main")

	// THEN
	assert.NoError(t, errLow)
	assert.Equal(t, 0.0, low)
	assert.NoError(t, errHigh)
	assert.Equal(t, 100.0, high)
}

func TestSetPowerUnknownHeater(t *testing.T) {
	// GIVEN
	registry := NewRegistry([]Heater{})

	// WHEN
	err := registry.SetPower("bogus", 50.0)

	// THEN
	assert.ErrorIs(t, err, ErrHeaterNotFound)
}

func TestSetPowerDisabledHeater(t *testing.T) {
	// GIVEN
	heater := createMockHeater("zone1_main", 40.0)
	heater.config.Enabled.Set(false)
	registry := NewRegistry([]Heater{heater})

	// WHEN
	err := registry.SetPower("zone1_main", 50.0)

	// THEN
	assert.ErrorIs(t, err, ErrHeaterDisabled)
	assert.Equal(t, 0, heater.actuations)
}

func TestSetPowerActuatorFailure(t *testing.T) {
	// GIVEN
	heater := createMockHeater("zone1_main", 40.0)
	heater.actuateErr = errors.New("bus fault")
	registry := NewRegistry([]Heater{heater})

	// WHEN
	err := registry.SetPower("zone1_main", 50.0)
	status, _ := registry.GetStatus("zone1_main")

	// THEN
	assert.ErrorIs(t, err, ErrActuatorFailure)
	assert.Equal(t, HeaterStatusActuatorError, status)
}

func TestDistributePowerProportionalToCapacity(t *testing.T) {
	// GIVEN a 40 W and a 10 W heater
	big := createMockHeater("zone1_main", 40.0)
	small := createMockHeater("zone1_aux", 10.0)
	registry := NewRegistry([]Heater{big, small})

	// WHEN 25 W are distributed over both
	failures, err := registry.DistributePower([]string{"zone1_main", "zone1_aux"}, 25.0)

	// THEN both run at the same percent of their own maximum
	assert.NoError(t, err)
	assert.Equal(t, 0, failures)
	assert.Equal(t, 50.0, big.lastPercent)
	assert.Equal(t, 50.0, small.lastPercent)
}

func TestDistributePowerClampsToTotalCapacity(t *testing.T) {
	// GIVEN 40 W + 10 W of capacity
	big := createMockHeater("zone1_main", 40.0)
	small := createMockHeater("zone1_aux", 10.0)
	registry := NewRegistry([]Heater{big, small})

	// WHEN 80 W are requested
	failures, err := registry.DistributePower([]string{"zone1_main", "zone1_aux"}, 80.0)

	// THEN the request saturates at full capacity
	assert.NoError(t, err)
	assert.Equal(t, 0, failures)
	assert.Equal(t, 100.0, big.lastPercent)
	assert.Equal(t, 100.0, small.lastPercent)
}

func TestDistributePowerNegativeRequestTurnsHeatersOff(t *testing.T) {
	// GIVEN
	heater := createMockHeater("zone1_main", 40.0)
	registry := NewRegistry([]Heater{heater})
	_, _ = registry.DistributePower([]string{"zone1_main"}, 20.0)

	// WHEN
	failures, err := registry.DistributePower([]string{"zone1_main"}, -10.0)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, failures)
	assert.Equal(t, 0.0, heater.lastPercent)
}

func TestDistributePowerNoCapacity(t *testing.T) {
	// GIVEN
	heater := createMockHeater("zone1_main", 0.0)
	registry := NewRegistry([]Heater{heater})

	// WHEN
	_, err := registry.DistributePower([]string{"zone1_main"}, 10.0)

	// THEN
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestDistributePowerUnknownHeater(t *testing.T) {
	// GIVEN
	heater := createMockHeater("zone1_main", 40.0)
	registry := NewRegistry([]Heater{heater})

	// WHEN
	_, err := registry.DistributePower([]string{"zone1_main", "bogus"}, 10.0)

	// THEN
	assert.ErrorIs(t, err, ErrHeaterNotFound)
}

func TestDistributePowerLeavesDisabledHeaterOff(t *testing.T) {
	// GIVEN a disabled heater referenced next to an enabled one
	enabled := createMockHeater("zone1_main", 40.0)
	disabled := createMockHeater("zone1_aux", 40.0)
	disabled.config.Enabled.Set(false)
	registry := NewRegistry([]Heater{enabled, disabled})

	// WHEN
	failures, err := registry.DistributePower([]string{"zone1_main", "zone1_aux"}, 40.0)

	// THEN the disabled heater is never actuated and stays at 0%
	assert.NoError(t, err)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 0, disabled.actuations)
	power, _ := registry.GetPower("zone1_aux")
	assert.Equal(t, 0.0, power)

	// AND the enabled heater still receives its own share
	assert.Equal(t, 50.0, enabled.lastPercent)
}

func TestDistributePowerCountsActuatorFailures(t *testing.T) {
	// GIVEN
	good := createMockHeater("zone1_main", 40.0)
	bad := createMockHeater("zone1_aux", 10.0)
	bad.actuateErr = errors.New("bus fault")
	registry := NewRegistry([]Heater{good, bad})

	// WHEN
	failures, err := registry.DistributePower([]string{"zone1_main", "zone1_aux"}, 25.0)

	// THEN the failure never aborts the distribution
	assert.NoError(t, err)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 50.0, good.lastPercent)
}

func TestEmergencyStopZeroesAllHeaters(t *testing.T) {
	// GIVEN a disabled heater among the enabled ones
	enabled := createMockHeater("zone1_main", 40.0)
	disabled := createMockHeater("zone2_main", 40.0)
	disabled.config.Enabled.Set(false)
	registry := NewRegistry([]Heater{enabled, disabled})
	_ = registry.SetPower("zone1_main", 75.0)

	// WHEN
	registry.EmergencyStop()

	// THEN even the disabled heater is forced off
	assert.True(t, enabled.emergencyOff)
	assert.True(t, disabled.emergencyOff)
	power, _ := registry.GetPower("zone1_main")
	assert.Equal(t, 0.0, power)
}

func TestHeaterSnapshot(t *testing.T) {
	// GIVEN
	heater := createMockHeater("zone1_main", 40.0)
	registry := NewRegistry([]Heater{heater})
	_ = registry.SetPower("zone1_main", 30.0)

	// WHEN
	snapshot := registry.Snapshot()

	// THEN
	assert.Len(t, snapshot, 1)
	assert.Equal(t, "zone1_main", snapshot[0].Id)
	assert.Equal(t, 30.0, snapshot[0].Percent)
	assert.True(t, snapshot[0].Enabled)
	assert.Equal(t, HeaterStatusOk, snapshot[0].Status)
}
