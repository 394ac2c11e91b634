package heaters

import (
	"fmt"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/util"
)

// FileHeater writes the requested power percent to a file consumed by the
// external power-regulator driver.
type FileHeater struct {
	Config configuration.HeaterConfig `json:"config"`
}

func (heater *FileHeater) GetId() string {
	return heater.Config.ID
}

func (heater *FileHeater) GetConfig() configuration.HeaterConfig {
	return heater.Config
}

func (heater *FileHeater) Actuate(percent float64) error {
	filePath := configuration.AbsolutePath(heater.Config.File.Path)

	err := util.WriteFloatToFileAtomic(percent, filePath)
	if err != nil {
		return fmt.Errorf("heater %s: %w", heater.GetId(), err)
	}
	return nil
}

func (heater *FileHeater) EmergencyOff() error {
	return heater.Actuate(MinPowerPercent)
}
