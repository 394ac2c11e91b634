package loop

import (
	"fmt"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/spf13/cobra"
)

var loopId string

var Command = &cobra.Command{
	Use:              "loop",
	Short:            "Control loop related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&loopId,
		"id", "i",
		"",
		"Loop ID as specified in the config",
	)
}

func getLoopConfig(id string) (configuration.LoopConfig, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(configPath); err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	availableLoopIds := []string{}
	for _, config := range configuration.CurrentConfig.Loops {
		availableLoopIds = append(availableLoopIds, config.ID)
		if config.ID == id {
			return config, nil
		}
	}

	return configuration.LoopConfig{}, fmt.Errorf("no loop with id found: %s, options: %s", id, availableLoopIds)
}
