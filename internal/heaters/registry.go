package heaters

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cryocore/thermd/internal/ui"
	"github.com/cryocore/thermd/internal/util"
)

var (
	// ErrHeaterNotFound is returned for lookups of unknown heater ids
	ErrHeaterNotFound = errors.New("heater not found")
	// ErrHeaterDisabled is returned when power is requested on a heater
	// whose configuration disables it
	ErrHeaterDisabled = errors.New("heater disabled")
	// ErrNoCapacity is returned by DistributePower when the selected
	// heaters have no rated capacity to distribute over
	ErrNoCapacity = errors.New("no heater capacity available")
	// ErrActuatorFailure wraps errors from the external actuator boundary
	ErrActuatorFailure = errors.New("actuator failure")
)

type HeaterStatus string

const (
	HeaterStatusOk            HeaterStatus = "ok"
	HeaterStatusDisabled      HeaterStatus = "disabled"
	HeaterStatusActuatorError HeaterStatus = "actuatorError"
)

type heaterSlot struct {
	heater Heater

	// last commanded power in percent of the heater's own maximum
	percent float64
	enabled bool
	status  HeaterStatus
}

// Registry owns the latest-commanded-power cache for a set of heaters and
// converts requested wattage into actuation at the external boundary. All
// public operations are whole-operation critical sections under a single
// mutex; the registry never calls into the control engine.
type Registry struct {
	mu sync.Mutex

	heaters []Heater
	slots   map[string]*heaterSlot
}

// NewRegistry creates a Registry with one commanded-power slot per given
// heater, all starting at 0%.
func NewRegistry(heaterList []Heater) *Registry {
	slots := make(map[string]*heaterSlot, len(heaterList))
	for _, heater := range heaterList {
		config := heater.GetConfig()
		enabled := config.Enabled.Get()
		status := HeaterStatusOk
		if !enabled {
			status = HeaterStatusDisabled
		}
		slots[heater.GetId()] = &heaterSlot{
			heater:  heater,
			enabled: enabled,
			status:  status,
		}
	}

	return &Registry{
		heaters: heaterList,
		slots:   slots,
	}
}

// SetPower clamps the requested percent to [0, 100], stores it and forwards
// it to the actuator boundary. Actuator failures are recorded on the heater
// status and surfaced to the caller.
func (r *Registry) SetPower(id string, percent float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrHeaterNotFound, id)
	}
	if !slot.enabled {
		return fmt.Errorf("%w: %s", ErrHeaterDisabled, id)
	}

	return r.setPowerLocked(slot, percent)
}

// setPowerLocked stores and actuates the clamped power of a single slot.
// Callers must hold the registry mutex.
func (r *Registry) setPowerLocked(slot *heaterSlot, percent float64) error {
	percent = util.Coerce(percent, MinPowerPercent, MaxPowerPercent)
	slot.percent = percent

	if err := slot.heater.Actuate(percent); err != nil {
		slot.status = HeaterStatusActuatorError
		return fmt.Errorf("%w: %s", ErrActuatorFailure, err.Error())
	}
	slot.status = HeaterStatusOk

	return nil
}

// GetPower returns the last commanded power percent of the given heater.
func (r *Registry) GetPower(id string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrHeaterNotFound, id)
	}

	return slot.percent, nil
}

// GetStatus returns the current status of the given heater.
func (r *Registry) GetStatus(id string) (HeaterStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrHeaterNotFound, id)
	}

	return slot.status, nil
}

// DistributePower splits totalWatts over the given heaters in proportion to
// each heater's rated maximum, so that every heater ends up at the same
// percent of its own maximum. totalWatts is clamped to [0, total capacity].
// Returns the number of actuator failures; those are recorded per heater
// and never abort the distribution.
func (r *Registry) DistributePower(ids []string, totalWatts float64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	totalCapacity := 0.0
	for _, id := range ids {
		slot, ok := r.slots[id]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrHeaterNotFound, id)
		}
		totalCapacity += slot.heater.GetConfig().MaxPowerW
	}

	if totalCapacity <= 0 {
		return 0, ErrNoCapacity
	}

	totalWatts = util.Coerce(totalWatts, 0, totalCapacity)

	failures := 0
	for _, id := range ids {
		slot := r.slots[id]
		maxPower := slot.heater.GetConfig().MaxPowerW
		if maxPower <= 0 {
			continue
		}

		// a disabled heater stays at 0%, its share of the allocation is lost
		if !slot.enabled {
			ui.Warning("Failed to set power of heater %s: %v", id, ErrHeaterDisabled)
			failures++
			continue
		}

		allocatedWatts := totalWatts * (maxPower / totalCapacity)
		percent := allocatedWatts / maxPower * 100.0

		if err := r.setPowerLocked(slot, percent); err != nil {
			ui.Warning("Failed to set power of heater %s: %v", id, err)
			failures++
		}
	}

	return failures, nil
}

// EmergencyStop unconditionally forces every heater to 0%, disabled ones
// included. Actuator failures are recorded per heater but never block the
// sweep; emergency stop is the last line of defense and must always run to
// completion.
func (r *Registry) EmergencyStop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, heater := range r.heaters {
		slot := r.slots[heater.GetId()]
		slot.percent = 0

		if err := heater.EmergencyOff(); err != nil {
			slot.status = HeaterStatusActuatorError
			ui.Error("Emergency stop of heater %s failed: %v", heater.GetId(), err)
		}
	}
}

// HeaterSnapshot is a point-in-time copy of a heater slot.
type HeaterSnapshot struct {
	Id      string       `json:"id"`
	Percent float64      `json:"percent"`
	Enabled bool         `json:"enabled"`
	Status  HeaterStatus `json:"status"`
}

// Snapshot returns a copy of every slot, in configuration order.
func (r *Registry) Snapshot() []HeaterSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]HeaterSnapshot, 0, len(r.heaters))
	for _, heater := range r.heaters {
		slot := r.slots[heater.GetId()]
		result = append(result, HeaterSnapshot{
			Id:      heater.GetId(),
			Percent: slot.percent,
			Enabled: slot.enabled,
			Status:  slot.status,
		})
	}
	return result
}
