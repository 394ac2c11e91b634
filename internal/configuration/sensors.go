package configuration

const (
	// SensorTypeRtd identifies file-backed RTD sensors with a linear
	// resistance to temperature conversion
	SensorTypeRtd = "rtd"
	// SensorTypeFile identifies sensors that report Kelvin directly from a file
	SensorTypeFile = "file"
	// SensorTypeCmd identifies sensors backed by an external command
	SensorTypeCmd = "cmd"
)

type SensorConfig struct {
	// ID is the unique identifier of the sensor, referenced by loops
	ID string `json:"id"`
	// Location is a free-form hint where the sensor sits, for humans only
	Location string          `json:"location"`
	Enabled  DefaultTrueBool `json:"enabled"`

	Rtd  *RtdSensorConfig  `json:"rtd,omitempty"`
	File *FileSensorConfig `json:"file,omitempty"`
	Cmd  *CmdSensorConfig  `json:"cmd,omitempty"`
}

// RtdSensorConfig reads a raw resistance value (Ohms) from a file written by
// the external acquisition driver and converts it linearly to Kelvin:
//
//	T = TemperatureAtNominal + (R - NominalOhms) / (NominalOhms * TemperatureCoefficient)
type RtdSensorConfig struct {
	// Path of the file containing the raw resistance in Ohms
	Path string `json:"path"`
	// NominalOhms is the RTD resistance at the nominal temperature (e.g. 1000 for a PT1000)
	NominalOhms float64 `json:"nominalOhms"`
	// TemperatureAtNominal is the temperature in Kelvin at NominalOhms
	TemperatureAtNominal float64 `json:"temperatureAtNominal"`
	// TemperatureCoefficient is the relative resistance change per Kelvin (alpha)
	TemperatureCoefficient float64 `json:"temperatureCoefficient"`
}

type FileSensorConfig struct {
	// Path of a file containing the current temperature in Kelvin
	Path string `json:"path"`
}

type CmdSensorConfig struct {
	// Exec is the executable printing the current temperature in Kelvin
	Exec string `json:"exec"`
	// Args to pass to the executable
	Args []string `json:"args"`
}
