package heater

import (
	"fmt"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/heaters"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/spf13/cobra"
)

var heaterId string

var Command = &cobra.Command{
	Use:              "heater",
	Short:            "Heater related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&heaterId,
		"id", "i",
		"",
		"Heater ID as specified in the config",
	)
}

func getHeater(id string) (heaters.Heater, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(configPath); err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	availableHeaterIds := []string{}
	for _, config := range configuration.CurrentConfig.Heaters {
		availableHeaterIds = append(availableHeaterIds, config.ID)
		if config.ID == id {
			return heaters.NewHeater(config)
		}
	}

	return nil, fmt.Errorf("no heater with id found: %s, options: %s", id, availableHeaterIds)
}
