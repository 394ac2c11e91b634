package sensors

import (
	"fmt"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/util"
)

// FileSensor reads the temperature in Kelvin directly from a file.
type FileSensor struct {
	Config configuration.SensorConfig `json:"config"`
}

func (sensor *FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *FileSensor) Read() (float64, error) {
	filePath := configuration.AbsolutePath(sensor.Config.File.Path)

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	return value, nil
}
