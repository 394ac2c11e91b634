package configuration

// ErrorCondition selects how a loop reacts to an alarm condition.
type ErrorCondition string

const (
	// ErrorConditionStop suspends all loops and stops all heaters
	ErrorConditionStop ErrorCondition = "stop"
	// ErrorConditionAlarm raises the loop status but keeps controlling
	ErrorConditionAlarm ErrorCondition = "alarm"
	// ErrorConditionIgnoreInvalidSensors keeps averaging over the valid sensor subset
	ErrorConditionIgnoreInvalidSensors ErrorCondition = "ignore-invalid-sensors"
	// ErrorConditionContinueLastGood keeps driving the last commanded output
	ErrorConditionContinueLastGood ErrorCondition = "continue-last-good"
)

type LoopConfig struct {
	// ID is the unique identifier of the loop
	ID string `json:"id"`

	// SensorIds of the 1-4 sensors whose valid readings are averaged
	// into the process value of this loop
	SensorIds []string `json:"sensorIds"`
	// HeaterIds of the 1-4 heaters the loop output is distributed over
	HeaterIds []string `json:"heaterIds"`

	// PID gains
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`

	// DefaultTargetTemperature is the initial setpoint in Kelvin
	DefaultTargetTemperature float64 `json:"defaultTargetTemperature"`
	// DefaultOn starts the loop in the enabled state (in addition to Enabled)
	DefaultOn bool            `json:"defaultOn"`
	Enabled   DefaultTrueBool `json:"enabled"`

	// ErrorCondition policy applied when the loop raises an alarm
	ErrorCondition ErrorCondition `json:"errorCondition"`

	// Alarm band in Kelvin; a measured value outside raises an alarm
	AlarmMinTemp float64 `json:"alarmMinTemp"`
	AlarmMaxTemp float64 `json:"alarmMaxTemp"`

	// PID output limits in Watts
	PowerLimitMin float64 `json:"powerLimitMin"`
	PowerLimitMax float64 `json:"powerLimitMax"`

	// Accepted setpoint window and ramp rate. Only enforced when
	// EnforceSetpointLimits is set.
	ValidSetpointRangeMin   float64 `json:"validSetpointRangeMin"`
	ValidSetpointRangeMax   float64 `json:"validSetpointRangeMax"`
	SetpointChangeRateLimit float64 `json:"setpointChangeRateLimit"` // Kelvin per minute
	EnforceSetpointLimits   bool    `json:"enforceSetpointLimits"`

	// FollowsLoopId makes this loop derive its effective setpoint from
	// another loop's resolved setpoint multiplied by FollowsScalar
	FollowsLoopId string  `json:"followsLoopId"`
	FollowsScalar float64 `json:"followsScalar"`
}
