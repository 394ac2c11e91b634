package configuration

const (
	HeaterTypeLowPower  = "low-power"
	HeaterTypeHighPower = "high-power"
)

type HeaterConfig struct {
	// ID is the unique identifier of the heater, referenced by loops
	ID string `json:"id"`
	// Type of the heating element, one of: low-power | high-power
	Type string `json:"type"`
	// Location is a free-form hint where the heater sits, for humans only
	Location string `json:"location"`
	// MaxPowerW is the rated maximum power of this heater in Watts
	MaxPowerW float64 `json:"maxPowerW"`
	// ResistanceOhms is the electrical resistance of the heating element
	ResistanceOhms float64         `json:"resistanceOhms"`
	Enabled        DefaultTrueBool `json:"enabled"`

	File *FileHeaterConfig `json:"file,omitempty"`
	Cmd  *CmdHeaterConfig  `json:"cmd,omitempty"`
}

type FileHeaterConfig struct {
	// Path of the file the requested power percent is written to,
	// consumed by the external power-regulator driver
	Path string `json:"path"`
}

type CmdHeaterConfig struct {
	// SetPower is executed on every power change, "%percent%" in its
	// args is replaced with the requested power percent
	SetPower *ExecConfig `json:"setPower"`
	// EmergencyOff is the distinguished zero-output path used by
	// emergency stop; falls back to SetPower with 0 when unset
	EmergencyOff *ExecConfig `json:"emergencyOff,omitempty"`
}

type ExecConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
