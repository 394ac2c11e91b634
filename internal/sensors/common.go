package sensors

import (
	"fmt"

	"github.com/cryocore/thermd/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	// SensorMap holds all sensor drivers built from the current
	// configuration, for enumeration by the CLI and the REST api
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// Read returns the current temperature of this sensor in Kelvin
	Read() (float64, error)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.Rtd != nil {
		return &RtdSensor{
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
