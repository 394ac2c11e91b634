package sensors

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/cryocore/thermd/internal/util"
)

// CmdSensor asks an external command for the current temperature in Kelvin.
type CmdSensor struct {
	Config configuration.SensorConfig `json:"config"`
}

func (sensor *CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *CmdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *CmdSensor) Read() (float64, error) {
	timeout := 2 * time.Second
	exec := sensor.Config.Cmd.Exec
	args := sensor.Config.Cmd.Args
	result, err := util.SafeCmdExecution(exec, args, timeout)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %s", sensor.GetId(), err.Error())
	}

	temp, err := strconv.ParseFloat(result, 64)
	if err != nil {
		ui.Warning("sensor %s: Unable to read temperature from command output: %s", sensor.GetId(), exec)
		return 0, err
	}

	return temp, nil
}
