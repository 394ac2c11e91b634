package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/heaters"
	"github.com/cryocore/thermd/internal/sensors"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/cryocore/thermd/internal/util"
)

var (
	// ErrLoopNotFound is returned for lookups of unknown loop ids
	ErrLoopNotFound = errors.New("loop not found")
	// ErrNotInitialized is returned for operations on an engine that
	// has not been initialized from a configuration yet
	ErrNotInitialized = errors.New("engine not initialized")
	// ErrSetpointOutOfRange is returned by SetTarget when setpoint
	// enforcement is enabled for the loop and the target lies outside
	// its valid setpoint range
	ErrSetpointOutOfRange = errors.New("setpoint out of range")
)

// loopRuntime is the mutable per-loop state. It is created once at Init and
// lives for the lifetime of the engine, guarded by the engine mutex.
type loopRuntime struct {
	config configuration.LoopConfig

	pid *util.PidController

	// target is the loop's own configured setpoint in Kelvin
	target float64
	// resolvedSetpoint is the effective setpoint of the last tick,
	// after follow resolution (and ramping, when enforced)
	resolvedSetpoint float64

	status    LoopStatus
	enabled   bool
	suspended bool

	lastMeasured float64
	lastOutput   float64
}

// Engine orchestrates all control loops. Each tick it reads the aggregate
// sensor value per loop, resolves the effective setpoint, runs the PID and
// distributes the output wattage over the loop's heaters.
//
// The engine acquires its own mutex once per public operation and, while
// holding it, calls into the sensor and heater registries, which lock
// independently. This nesting is safe because the registries never call
// back into the engine.
type Engine struct {
	mu sync.Mutex

	sensors *sensors.Registry
	heaters *heaters.Registry

	initialized bool
	loops       []*loopRuntime
	index       map[string]int
}

func NewEngine(sensorRegistry *sensors.Registry, heaterRegistry *heaters.Registry) *Engine {
	return &Engine{
		sensors: sensorRegistry,
		heaters: heaterRegistry,
	}
}

// Init builds one loop runtime per configured loop. The configuration is
// expected to be validated; Init only wires it up.
func (e *Engine) Init(config []configuration.LoopConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(config) > configuration.MaxLoops {
		return fmt.Errorf("too many loops: %d (max %d)", len(config), configuration.MaxLoops)
	}

	e.loops = make([]*loopRuntime, 0, len(config))
	e.index = make(map[string]int, len(config))

	for _, loopConfig := range config {
		enabled := loopConfig.Enabled.Get() && loopConfig.DefaultOn

		status := StatusOk
		if !enabled {
			status = StatusDisabled
		}

		runtime := &loopRuntime{
			config:           loopConfig,
			pid:              util.NewPidController(loopConfig.P, loopConfig.I, loopConfig.D, loopConfig.PowerLimitMin, loopConfig.PowerLimitMax),
			target:           loopConfig.DefaultTargetTemperature,
			resolvedSetpoint: loopConfig.DefaultTargetTemperature,
			status:           status,
			enabled:          enabled,
		}

		e.index[loopConfig.ID] = len(e.loops)
		e.loops = append(e.loops, runtime)

		ui.Info("Loop %s: PID initialized (P=%.2f, I=%.2f, D=%.2f)", loopConfig.ID, loopConfig.P, loopConfig.I, loopConfig.D)
	}

	e.initialized = true
	ui.Info("Control engine initialized with %d loops", len(e.loops))
	return nil
}

// UpdateAll runs one control tick over every loop, dt being the elapsed
// seconds since the previous tick. Returns the tick's aggregate error count,
// 0 meaning all loops nominal. Degraded loops never abort the tick; the
// remaining loops are still processed.
func (e *Engine) UpdateAll(dt float64) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return 0
	}

	errorCount := 0

	// Alarm escalation gathered during the scan is applied only after
	// every loop has been processed, so one loop's condition never
	// mutates its siblings mid-iteration.
	stopAll := false
	stopCause := ""

	for _, loop := range e.loops {
		if !loop.enabled || loop.suspended {
			continue
		}

		measured, err := e.sensors.GetAverage(loop.config.SensorIds)
		if err != nil {
			loop.status = StatusSensorError
			errorCount++
			ui.Warning("Loop %s: sensor read error: %v", loop.config.ID, err)
			continue
		}
		loop.lastMeasured = measured

		alarmed := measured < loop.config.AlarmMinTemp || measured > loop.config.AlarmMaxTemp
		if alarmed {
			newlyTriggered := loop.status != StatusAlarm
			loop.status = StatusAlarm
			errorCount++
			ui.Error("Loop %s: ALARM - temperature %.2f K out of range (%.2f - %.2f)",
				loop.config.ID, measured, loop.config.AlarmMinTemp, loop.config.AlarmMaxTemp)

			if newlyTriggered && loop.config.ErrorCondition == configuration.ErrorConditionStop {
				stopAll = true
				stopCause = loop.config.ID
			}
		}

		setpoint := e.resolveSetpointLocked(loop, dt)
		loop.resolvedSetpoint = setpoint

		output := loop.pid.Update(setpoint, measured, dt)
		loop.lastOutput = output

		failures, err := e.heaters.DistributePower(loop.config.HeaterIds, output)
		if err != nil {
			errorCount++
			ui.Error("Loop %s: failed to set heater power: %v", loop.config.ID, err)
		} else {
			errorCount += failures
		}

		ui.Debug("Loop %s: SP=%.2f, PV=%.2f, OUT=%.2f W", loop.config.ID, setpoint, measured, output)

		if !alarmed {
			loop.status = StatusOk
		}
	}

	if stopAll {
		ui.Error("Loop %s alarm with stop policy: stopping all heaters, suspending all loops", stopCause)
		e.heaters.EmergencyStop()
		for _, loop := range e.loops {
			loop.suspended = true
		}
	}

	return errorCount
}

// resolveSetpointLocked determines the effective setpoint of the loop for
// this tick. A follower derives it from the followed loop's resolved
// setpoint times the configured scalar; anyone else uses its own target.
// Ramping toward the result is applied only when the loop opts into
// setpoint enforcement.
func (e *Engine) resolveSetpointLocked(loop *loopRuntime, dt float64) float64 {
	setpoint := loop.target

	if len(loop.config.FollowsLoopId) > 0 {
		if idx, ok := e.index[loop.config.FollowsLoopId]; ok {
			setpoint = e.loops[idx].resolvedSetpoint * loop.config.FollowsScalar
		}
	}

	if loop.config.EnforceSetpointLimits && loop.config.SetpointChangeRateLimit > 0 && dt > 0 {
		maxStep := loop.config.SetpointChangeRateLimit / 60.0 * dt
		delta := util.Coerce(setpoint-loop.resolvedSetpoint, -maxStep, maxStep)
		setpoint = loop.resolvedSetpoint + delta
	}

	return setpoint
}

// SetTarget sets the loop's own target temperature in Kelvin. The valid
// setpoint range is only checked for loops with setpoint enforcement
// enabled.
func (e *Engine) SetTarget(loopId string, targetKelvin float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	loop, err := e.lookupLocked(loopId)
	if err != nil {
		return err
	}

	if loop.config.EnforceSetpointLimits {
		if targetKelvin < loop.config.ValidSetpointRangeMin || targetKelvin > loop.config.ValidSetpointRangeMax {
			return fmt.Errorf("%w: %.2f K not in [%.2f, %.2f]",
				ErrSetpointOutOfRange, targetKelvin,
				loop.config.ValidSetpointRangeMin, loop.config.ValidSetpointRangeMax)
		}
	}

	loop.target = targetKelvin
	ui.Info("Loop %s: target set to %.2f K", loopId, targetKelvin)
	return nil
}

// GetTarget returns the loop's own target temperature in Kelvin.
func (e *Engine) GetTarget(loopId string) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	loop, err := e.lookupLocked(loopId)
	if err != nil {
		return 0, err
	}

	return loop.target, nil
}

// Enable toggles a loop. Enabling resets the loop's PID state so that error
// accumulated while the loop was off is not integrated into the first tick.
func (e *Engine) Enable(loopId string, enable bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	loop, err := e.lookupLocked(loopId)
	if err != nil {
		return err
	}

	loop.enabled = enable
	if enable {
		loop.pid.Reset()
		loop.status = StatusOk
		ui.Info("Loop %s enabled", loopId)
	} else {
		loop.status = StatusDisabled
		ui.Info("Loop %s disabled", loopId)
	}

	return nil
}

// SuspendAll freezes every loop: no PID updates, no heater writes. The last
// commanded heater output is held, not re-zeroed.
func (e *Engine) SuspendAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	ui.Warning("Suspending all control loops")
	for _, loop := range e.loops {
		loop.suspended = true
	}
}

// ResumeAll unfreezes every loop and resets all PID state to avoid windup
// accumulated across the suspension.
func (e *Engine) ResumeAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	ui.Info("Resuming all control loops")
	for _, loop := range e.loops {
		loop.suspended = false
		loop.pid.Reset()
	}
}

// SetGains hot-reloads the PID tuning of a loop without resetting its
// integrator or error history.
func (e *Engine) SetGains(loopId string, kp float64, ki float64, kd float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	loop, err := e.lookupLocked(loopId)
	if err != nil {
		return err
	}

	loop.pid.SetGains(kp, ki, kd)
	ui.Info("Loop %s: gains updated to P=%.2f, I=%.2f, D=%.2f", loopId, kp, ki, kd)
	return nil
}

// GetStatus returns the status of the given loop. An unknown loop id yields
// StatusNotInitialized, the same sentinel an uninitialized engine reports.
func (e *Engine) GetStatus(loopId string) LoopStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return StatusNotInitialized
	}

	idx, ok := e.index[loopId]
	if !ok {
		return StatusNotInitialized
	}

	return e.loops[idx].status
}

func (e *Engine) lookupLocked(loopId string) (*loopRuntime, error) {
	if !e.initialized {
		return nil, ErrNotInitialized
	}

	idx, ok := e.index[loopId]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLoopNotFound, loopId)
	}

	return e.loops[idx], nil
}

// LoopSnapshot is a point-in-time copy of a loop runtime.
type LoopSnapshot struct {
	Id               string     `json:"id"`
	Target           float64    `json:"target"`
	ResolvedSetpoint float64    `json:"resolvedSetpoint"`
	Measured         float64    `json:"measured"`
	Output           float64    `json:"output"`
	Status           LoopStatus `json:"status"`
	Enabled          bool       `json:"enabled"`
	Suspended        bool       `json:"suspended"`
}

// Snapshot returns a copy of every loop runtime, in configuration order.
func (e *Engine) Snapshot() []LoopSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]LoopSnapshot, 0, len(e.loops))
	for _, loop := range e.loops {
		result = append(result, LoopSnapshot{
			Id:               loop.config.ID,
			Target:           loop.target,
			ResolvedSetpoint: loop.resolvedSetpoint,
			Measured:         loop.lastMeasured,
			Output:           loop.lastOutput,
			Status:           loop.status,
			Enabled:          loop.enabled,
			Suspended:        loop.suspended,
		})
	}
	return result
}
