package sensors

import (
	"fmt"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/util"
)

// RtdSensor reads a raw resistance value from the file boundary fed by the
// external acquisition driver and converts it linearly to Kelvin.
type RtdSensor struct {
	Config configuration.SensorConfig `json:"config"`
}

func (sensor *RtdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *RtdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *RtdSensor) Read() (float64, error) {
	rtd := sensor.Config.Rtd

	ohms, err := util.ReadFloatFromFile(configuration.AbsolutePath(rtd.Path))
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	kelvin := rtd.TemperatureAtNominal + (ohms-rtd.NominalOhms)/(rtd.NominalOhms*rtd.TemperatureCoefficient)
	return kelvin, nil
}
