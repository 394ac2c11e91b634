package util

// PidController is the closed-loop controller used by every thermal loop.
// It is plain math with persistent integrator/previous-error state; all
// locking is done by the owning control engine.
type PidController struct {
	// Proportional Constant
	kp float64
	// Integral Constant
	ki float64
	// Derivative Constant
	kd float64

	// integral accumulator
	integral float64
	// error of the previous update, for the derivative term
	prevError float64

	// Minimum output value
	outputMin float64
	// Maximum output value
	outputMax float64

	// anti-windup bounds for the integral accumulator
	integralMin float64
	integralMax float64
}

// NewPidController creates a PidController with the given gains and output
// limits. The integral limits default to the output limits.
func NewPidController(kp, ki, kd, outputMin, outputMax float64) *PidController {
	return &PidController{
		kp:          kp,
		ki:          ki,
		kd:          kd,
		outputMin:   outputMin,
		outputMax:   outputMax,
		integralMin: outputMin,
		integralMax: outputMax,
	}
}

// Update advances the controller by dt seconds and returns the new output,
// clamped to [outputMin, outputMax]. A dt <= 0 only suppresses the
// derivative term.
func (p *PidController) Update(setpoint float64, measured float64, dt float64) float64 {
	err := setpoint - measured

	pTerm := p.kp * err

	// the integral is clamped at all times so that a saturated output
	// cannot wind it up indefinitely
	p.integral += err * dt
	p.integral = Coerce(p.integral, p.integralMin, p.integralMax)
	iTerm := p.ki * p.integral

	var derivative float64
	if dt > 0 {
		derivative = (err - p.prevError) / dt
	}
	dTerm := p.kd * derivative

	output := Coerce(pTerm+iTerm+dTerm, p.outputMin, p.outputMax)

	p.prevError = err

	return output
}

// Reset clears the integral accumulator and error history.
func (p *PidController) Reset() {
	p.integral = 0
	p.prevError = 0
}

// SetGains swaps the tuning parameters without touching the
// integrator or error history.
func (p *PidController) SetGains(kp, ki, kd float64) {
	p.kp = kp
	p.ki = ki
	p.kd = kd
}

// SetIntegralLimits overrides the default anti-windup bounds.
func (p *PidController) SetIntegralLimits(min float64, max float64) {
	p.integralMin = min
	p.integralMax = max
	p.integral = Coerce(p.integral, min, max)
}
