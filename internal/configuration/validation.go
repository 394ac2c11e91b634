package configuration

import (
	"fmt"

	"github.com/cryocore/thermd/internal/ui"
	"github.com/cryocore/thermd/internal/util"
	"github.com/looplab/tarjan"
	"golang.org/x/exp/slices"
)

// Static table maxima. Configurations beyond these are rejected at startup.
const (
	MaxSensors        = 16
	MaxHeaters        = 16
	MaxLoops          = 8
	MaxSensorsPerLoop = 4
	MaxHeatersPerLoop = 4
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateSensors(config)
	if err != nil {
		return err
	}
	err = validateHeaters(config)
	if err != nil {
		return err
	}
	err = validateLoops(config)
	if err != nil {
		return err
	}

	if containsCmdBackends(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCmdBackends(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}
	for _, heaterConfig := range config.Heaters {
		if heaterConfig.Cmd != nil {
			return true
		}
	}

	return false
}

func validateSensors(config *Configuration) error {
	if len(config.Sensors) > MaxSensors {
		return fmt.Errorf("too many sensors: %d (max %d)", len(config.Sensors), MaxSensors)
	}

	for _, sensorConfig := range config.Sensors {
		subConfigs := 0
		if sensorConfig.Rtd != nil {
			subConfigs++
		}
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: rtd | file | cmd", sensorConfig.ID)
		}

		if !isSensorConfigInUse(sensorConfig, config.Loops) {
			ui.Warning("Unused sensor configuration: %s", sensorConfig.ID)
		}

		if sensorConfig.Rtd != nil {
			rtd := sensorConfig.Rtd
			if len(rtd.Path) <= 0 {
				return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
			}
			if rtd.NominalOhms <= 0 {
				return fmt.Errorf("sensor %s: invalid nominal resistance, must be > 0", sensorConfig.ID)
			}
			if rtd.TemperatureCoefficient == 0 {
				return fmt.Errorf("sensor %s: temperature coefficient must not be zero", sensorConfig.ID)
			}
		}

		if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
		}
	}

	return nil
}

func isSensorConfigInUse(config SensorConfig, loops []LoopConfig) bool {
	for _, loopConfig := range loops {
		if slices.Contains(loopConfig.SensorIds, config.ID) {
			return true
		}
	}

	return false
}

func validateHeaters(config *Configuration) error {
	if len(config.Heaters) > MaxHeaters {
		return fmt.Errorf("too many heaters: %d (max %d)", len(config.Heaters), MaxHeaters)
	}

	for _, heaterConfig := range config.Heaters {
		subConfigs := 0
		if heaterConfig.File != nil {
			subConfigs++
		}
		if heaterConfig.Cmd != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("heater %s: only one heater type can be used per heater definition block", heaterConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("heater %s: sub-configuration for heater is missing, use one of: file | cmd", heaterConfig.ID)
		}

		if heaterConfig.MaxPowerW <= 0 {
			return fmt.Errorf("heater %s: maxPowerW must be > 0", heaterConfig.ID)
		}

		if !isHeaterConfigInUse(heaterConfig, config.Loops) {
			ui.Warning("Unused heater configuration: %s", heaterConfig.ID)
		}

		if heaterConfig.File != nil && len(heaterConfig.File.Path) <= 0 {
			return fmt.Errorf("heater %s: no file path provided", heaterConfig.ID)
		}

		if heaterConfig.Cmd != nil {
			cmdConfig := heaterConfig.Cmd
			if cmdConfig.SetPower == nil {
				return fmt.Errorf("heater %s: missing setPower configuration", heaterConfig.ID)
			}
			if len(cmdConfig.SetPower.Exec) <= 0 {
				return fmt.Errorf("heater %s: setPower executable is missing", heaterConfig.ID)
			}
		}
	}

	return nil
}

func isHeaterConfigInUse(config HeaterConfig, loops []LoopConfig) bool {
	for _, loopConfig := range loops {
		if slices.Contains(loopConfig.HeaterIds, config.ID) {
			return true
		}
	}

	return false
}

func validateLoops(config *Configuration) error {
	if len(config.Loops) > MaxLoops {
		return fmt.Errorf("too many loops: %d (max %d)", len(config.Loops), MaxLoops)
	}

	followsGraph := make(map[interface{}][]interface{})

	for _, loopConfig := range config.Loops {
		if len(loopConfig.SensorIds) <= 0 || len(loopConfig.SensorIds) > MaxSensorsPerLoop {
			return fmt.Errorf("loop %s: between 1 and %d sensors must be configured", loopConfig.ID, MaxSensorsPerLoop)
		}
		if len(loopConfig.HeaterIds) <= 0 || len(loopConfig.HeaterIds) > MaxHeatersPerLoop {
			return fmt.Errorf("loop %s: between 1 and %d heaters must be configured", loopConfig.ID, MaxHeatersPerLoop)
		}

		for _, sensorId := range loopConfig.SensorIds {
			if !sensorIdExists(sensorId, config) {
				return fmt.Errorf("loop %s: no sensor definition with id '%s' found", loopConfig.ID, sensorId)
			}
		}
		for _, heaterId := range loopConfig.HeaterIds {
			if !heaterIdExists(heaterId, config) {
				return fmt.Errorf("loop %s: no heater definition with id '%s' found", loopConfig.ID, heaterId)
			}
		}

		supportedConditions := []ErrorCondition{
			ErrorConditionStop,
			ErrorConditionAlarm,
			ErrorConditionIgnoreInvalidSensors,
			ErrorConditionContinueLastGood,
		}
		if len(loopConfig.ErrorCondition) > 0 && !slices.Contains(supportedConditions, loopConfig.ErrorCondition) {
			return fmt.Errorf("loop %s: unsupported error condition '%s'", loopConfig.ID, loopConfig.ErrorCondition)
		}

		if loopConfig.P == 0 && loopConfig.I == 0 && loopConfig.D == 0 {
			return fmt.Errorf("loop %s: all PID gains are zero", loopConfig.ID)
		}

		if loopConfig.AlarmMaxTemp <= loopConfig.AlarmMinTemp {
			return fmt.Errorf("loop %s: alarmMaxTemp must be greater than alarmMinTemp", loopConfig.ID)
		}

		if len(loopConfig.FollowsLoopId) > 0 {
			if loopConfig.FollowsLoopId == loopConfig.ID {
				return fmt.Errorf("loop %s: a loop cannot follow itself", loopConfig.ID)
			}
			if !loopIdExists(loopConfig.FollowsLoopId, config) {
				return fmt.Errorf("loop %s: no loop definition with id '%s' found", loopConfig.ID, loopConfig.FollowsLoopId)
			}
			followsGraph[loopConfig.ID] = []interface{}{loopConfig.FollowsLoopId}
		}
	}

	warnOnFollowCycles(followsGraph)
	return nil
}

// warnOnFollowCycles reports transitive follow cycles (A follows B, B follows
// A). Only direct self-follow is a hard error; a transitive cycle is legal but
// has no defined resolution order, so it is surfaced loudly.
func warnOnFollowCycles(graph map[interface{}][]interface{}) {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			ui.Warning("Loop follow cycle detected, setpoint resolution order is undefined: %v", items)
		}
	}
}

func sensorIdExists(sensorId string, config *Configuration) bool {
	for _, sensor := range config.Sensors {
		if sensor.ID == sensorId {
			return true
		}
	}

	return false
}

func heaterIdExists(heaterId string, config *Configuration) bool {
	for _, heater := range config.Heaters {
		if heater.ID == heaterId {
			return true
		}
	}

	return false
}

func loopIdExists(loopId string, config *Configuration) bool {
	for _, loop := range config.Loops {
		if loop.ID == loopId {
			return true
		}
	}

	return false
}
