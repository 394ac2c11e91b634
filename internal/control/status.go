package control

// LoopStatus is the externally observable condition of a single loop.
// A loop is always in exactly one status; the suspended flag is tracked
// orthogonally and does not alter the status history.
type LoopStatus string

const (
	StatusOk             LoopStatus = "ok"
	StatusDisabled       LoopStatus = "disabled"
	StatusSensorError    LoopStatus = "sensorError"
	StatusAlarm          LoopStatus = "alarm"
	StatusNotInitialized LoopStatus = "notInitialized"
)

// Code maps the status to a stable numeric encoding for metrics.
func (s LoopStatus) Code() float64 {
	switch s {
	case StatusOk:
		return 0
	case StatusDisabled:
		return 1
	case StatusSensorError:
		return 2
	case StatusAlarm:
		return 3
	default:
		return 4
	}
}
