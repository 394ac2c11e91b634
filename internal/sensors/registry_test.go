package sensors

import (
	"errors"
	"testing"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/stretchr/testify/assert"
)

type mockSensor struct {
	config configuration.SensorConfig

	value float64
	err   error
}

func (s *mockSensor) GetId() string                         { return s.config.ID }
func (s *mockSensor) GetConfig() configuration.SensorConfig { return s.config }
func (s *mockSensor) Read() (float64, error)                { return s.value, s.err }

func createMockSensor(id string, value float64) *mockSensor {
	return &mockSensor{
		config: configuration.SensorConfig{ID: id},
		value:  value,
	}
}

func TestReadAllCachesReadings(t *testing.T) {
	// GIVEN
	sensor := createMockSensor("zone1_rtd", 293.15)
	registry := NewRegistry([]Sensor{sensor}, 10)

	// WHEN
	failures := registry.ReadAll()
	reading, err := registry.GetReading("zone1_rtd")

	// THEN
	assert.Equal(t, 0, failures)
	assert.NoError(t, err)
	assert.Equal(t, 293.15, reading.TemperatureKelvin)
	assert.Equal(t, ReadingStatusOk, reading.Status)
}

func TestReadingInvalidBeforeFirstReadAll(t *testing.T) {
	// GIVEN
	sensor := createMockSensor("zone1_rtd", 293.15)
	registry := NewRegistry([]Sensor{sensor}, 10)

	// WHEN
	_, err := registry.GetReading("zone1_rtd")

	// THEN
	assert.ErrorIs(t, err, ErrReadingNotValid)
	assert.False(t, registry.IsValid("zone1_rtd"))
}

func TestReadFailureInvalidatesSlot(t *testing.T) {
	// GIVEN
	sensor := createMockSensor("zone1_rtd", 293.15)
	registry := NewRegistry([]Sensor{sensor}, 10)
	registry.ReadAll()

	// WHEN the sensor starts failing
	sensor.err = errors.New("i2c timeout")
	failures := registry.ReadAll()

	// THEN the stale value is not served
	assert.Equal(t, 1, failures)
	assert.False(t, registry.IsValid("zone1_rtd"))
	_, err := registry.GetReading("zone1_rtd")
	assert.ErrorIs(t, err, ErrReadingNotValid)
}

func TestReadAllSkipsDisabledSensors(t *testing.T) {
	// GIVEN
	sensor := createMockSensor("zone1_rtd", 293.15)
	sensor.config.Enabled.Set(false)
	sensor.err = errors.New("must not be read")
	registry := NewRegistry([]Sensor{sensor}, 10)

	// WHEN
	failures := registry.ReadAll()

	// THEN
	assert.Equal(t, 0, failures)
	assert.False(t, registry.IsValid("zone1_rtd"))
}

func TestGetReadingUnknownSensor(t *testing.T) {
	// GIVEN
	registry := NewRegistry([]Sensor{}, 10)

	// WHEN
	_, err := registry.GetReading("bogus")

	// THEN
	assert.ErrorIs(t, err, ErrSensorNotFound)
}

func TestGetAverageSkipsInvalidSensors(t *testing.T) {
	// GIVEN
	good := createMockSensor("zone1_rtd", 300.0)
	bad := createMockSensor("zone1_backup", 0.0)
	bad.err = errors.New("open circuit")
	registry := NewRegistry([]Sensor{good, bad}, 10)
	registry.ReadAll()

	// WHEN
	avg, err := registry.GetAverage([]string{"zone1_rtd", "zone1_backup"})

	// THEN the failed sensor is skipped, never averaged in as zero
	assert.NoError(t, err)
	assert.Equal(t, 300.0, avg)
}

func TestGetAverageOverMultipleSensors(t *testing.T) {
	// GIVEN
	a := createMockSensor("zone1_rtd", 290.0)
	b := createMockSensor("zone1_backup", 310.0)
	registry := NewRegistry([]Sensor{a, b}, 10)
	registry.ReadAll()

	// WHEN
	avg, err := registry.GetAverage([]string{"zone1_rtd", "zone1_backup"})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 300.0, avg)
}

func TestGetAverageNoValidSensors(t *testing.T) {
	// GIVEN
	sensor := createMockSensor("zone1_rtd", 293.15)
	sensor.err = errors.New("open circuit")
	registry := NewRegistry([]Sensor{sensor}, 10)
	registry.ReadAll()

	// WHEN
	_, err := registry.GetAverage([]string{"zone1_rtd"})

	// THEN
	assert.ErrorIs(t, err, ErrNoValidSensors)
}

func TestGetMovingAvg(t *testing.T) {
	// GIVEN
	sensor := createMockSensor("zone1_rtd", 290.0)
	registry := NewRegistry([]Sensor{sensor}, 2)
	registry.ReadAll()
	sensor.value = 310.0
	registry.ReadAll()

	// WHEN
	avg, err := registry.GetMovingAvg("zone1_rtd")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 300.0, avg)
}

func TestSnapshotKeepsConfigurationOrder(t *testing.T) {
	// GIVEN
	a := createMockSensor("zone1_rtd", 290.0)
	b := createMockSensor("zone2_rtd", 310.0)
	registry := NewRegistry([]Sensor{a, b}, 10)
	registry.ReadAll()

	// WHEN
	snapshot := registry.Snapshot()

	// THEN
	assert.Len(t, snapshot, 2)
	assert.Equal(t, "zone1_rtd", snapshot[0].Id)
	assert.Equal(t, "zone2_rtd", snapshot[1].Id)
	assert.True(t, snapshot[0].Valid)
	assert.Equal(t, 310.0, snapshot[1].Reading.TemperatureKelvin)
}
