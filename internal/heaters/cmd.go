package heaters

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/util"
)

// CmdHeater forwards power changes to an external command. The token
// "%percent%" in the configured args is replaced with the requested value.
type CmdHeater struct {
	Config configuration.HeaterConfig `json:"config"`
}

func (heater *CmdHeater) GetId() string {
	return heater.Config.ID
}

func (heater *CmdHeater) GetConfig() configuration.HeaterConfig {
	return heater.Config
}

func (heater *CmdHeater) Actuate(percent float64) error {
	conf := heater.Config.Cmd.SetPower

	value := strconv.FormatFloat(percent, 'f', -1, 64)
	var args = []string{}
	for _, arg := range conf.Args {
		replaced := strings.ReplaceAll(arg, "%percent%", value)
		args = append(args, replaced)
	}

	timeout := 2 * time.Second
	_, err := util.SafeCmdExecution(conf.Exec, args, timeout)
	if err != nil {
		return fmt.Errorf("heater %s: %s", heater.GetId(), err.Error())
	}

	return nil
}

func (heater *CmdHeater) EmergencyOff() error {
	conf := heater.Config.Cmd.EmergencyOff
	if conf == nil {
		return heater.Actuate(MinPowerPercent)
	}

	timeout := 2 * time.Second
	_, err := util.SafeCmdExecution(conf.Exec, conf.Args, timeout)
	if err != nil {
		return fmt.Errorf("heater %s: %s", heater.GetId(), err.Error())
	}

	return nil
}
