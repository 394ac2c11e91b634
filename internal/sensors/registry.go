package sensors

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cryocore/thermd/internal/ui"
	"github.com/cryocore/thermd/internal/util"
	"github.com/asecurityteam/rolling"
)

var (
	// ErrSensorNotFound is returned for lookups of unknown sensor ids
	ErrSensorNotFound = errors.New("sensor not found")
	// ErrReadingNotValid is returned when the cached reading of a known
	// sensor is currently invalid (stale values are never served)
	ErrReadingNotValid = errors.New("sensor reading not valid")
	// ErrNoValidSensors is returned when none of the requested sensors
	// has a valid reading to average over
	ErrNoValidSensors = errors.New("no valid sensors")
)

type ReadingStatus string

const (
	ReadingStatusOk        ReadingStatus = "ok"
	ReadingStatusReadError ReadingStatus = "readError"
)

// Reading is the latest acquired value of a single sensor.
type Reading struct {
	TemperatureKelvin float64       `json:"temperatureKelvin"`
	Timestamp         time.Time     `json:"timestamp"`
	Status            ReadingStatus `json:"status"`
}

type sensorSlot struct {
	sensor  Sensor
	reading Reading
	valid   bool
	window  *rolling.PointPolicy
}

// Registry owns the latest-reading cache for a set of sensors and drives
// the external acquisition boundary. All public operations are
// whole-operation critical sections under a single mutex; the registry
// never calls into the control engine.
type Registry struct {
	mu sync.Mutex

	sensors    []Sensor
	slots      map[string]*sensorSlot
	windowSize int
}

// NewRegistry creates a Registry with one reading slot per given sensor.
// All slots start out invalid until the first successful ReadAll.
func NewRegistry(sensorList []Sensor, tempRollingWindowSize int) *Registry {
	if tempRollingWindowSize <= 0 {
		tempRollingWindowSize = 1
	}

	slots := make(map[string]*sensorSlot, len(sensorList))
	for _, sensor := range sensorList {
		slots[sensor.GetId()] = &sensorSlot{
			sensor: sensor,
			window: util.CreateRollingWindow(tempRollingWindowSize),
		}
	}

	return &Registry{
		sensors:    sensorList,
		slots:      slots,
		windowSize: tempRollingWindowSize,
	}
}

// ReadAll invokes the external source once for every enabled sensor and
// updates the reading cache. A failed read invalidates the slot, the stale
// value is not served afterwards. Returns the number of failed reads,
// 0 means fully nominal.
func (r *Registry) ReadAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	failures := 0
	for _, sensor := range r.sensors {
		config := sensor.GetConfig()
		if !config.Enabled.Get() {
			continue
		}

		slot := r.slots[sensor.GetId()]
		value, err := sensor.Read()
		if err != nil {
			slot.reading.Status = ReadingStatusReadError
			slot.valid = false
			failures++
			ui.Warning("Failed to read sensor %s: %v", sensor.GetId(), err)
			continue
		}

		slot.reading = Reading{
			TemperatureKelvin: value,
			Timestamp:         time.Now(),
			Status:            ReadingStatusOk,
		}
		slot.valid = true
		slot.window.Append(value)
	}

	return failures
}

// GetReading returns the cached reading of the given sensor.
func (r *Registry) GetReading(id string) (Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return Reading{}, fmt.Errorf("%w: %s", ErrSensorNotFound, id)
	}
	if !slot.valid {
		return Reading{}, fmt.Errorf("%w: %s", ErrReadingNotValid, id)
	}

	return slot.reading, nil
}

// GetAverage returns the arithmetic mean over the currently valid subset of
// the given sensors. Sensors without a valid reading are skipped, they are
// never averaged in as zero.
func (r *Registry) GetAverage(ids []string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum := 0.0
	validCount := 0
	for _, id := range ids {
		slot, ok := r.slots[id]
		if !ok || !slot.valid {
			continue
		}
		sum += slot.reading.TemperatureKelvin
		validCount++
	}

	if validCount == 0 {
		return 0, ErrNoValidSensors
	}

	return sum / float64(validCount), nil
}

// IsValid reports whether the given sensor currently has a valid reading.
func (r *Registry) IsValid(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	return ok && slot.valid
}

// GetMovingAvg returns the rolling-window average temperature of the given
// sensor, for telemetry only.
func (r *Registry) GetMovingAvg(id string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSensorNotFound, id)
	}
	if !slot.valid {
		return 0, fmt.Errorf("%w: %s", ErrReadingNotValid, id)
	}

	return util.GetWindowAvg(slot.window), nil
}

// SensorSnapshot is a point-in-time copy of a sensor slot.
type SensorSnapshot struct {
	Id      string  `json:"id"`
	Reading Reading `json:"reading"`
	Valid   bool    `json:"valid"`
}

// Snapshot returns a copy of every slot, in configuration order.
func (r *Registry) Snapshot() []SensorSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]SensorSnapshot, 0, len(r.sensors))
	for _, sensor := range r.sensors {
		slot := r.slots[sensor.GetId()]
		result = append(result, SensorSnapshot{
			Id:      sensor.GetId(),
			Reading: slot.reading,
			Valid:   slot.valid,
		})
	}
	return result
}
