package heater

import (
	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/heaters"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Turn off a heater, or all heaters when no id is given",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(heaterId) > 0 {
			heater, err := getHeater(heaterId)
			if err != nil {
				return err
			}
			return heater.EmergencyOff()
		}

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		for _, config := range configuration.CurrentConfig.Heaters {
			heater, err := heaters.NewHeater(config)
			if err != nil {
				return err
			}
			if err := heater.EmergencyOff(); err != nil {
				ui.Error("Unable to turn off heater %s: %v", config.ID, err)
				continue
			}
			ui.Info("Heater %s turned off", config.ID)
		}
		return nil
	},
}

func init() {
	Command.AddCommand(stopCmd)
}
