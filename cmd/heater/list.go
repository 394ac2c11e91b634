package heater

import (
	"bytes"
	"strconv"

	"github.com/cryocore/thermd/cmd/global"
	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured heaters to console",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		var rows [][]string
		for _, config := range configuration.CurrentConfig.Heaters {
			rows = append(rows, []string{
				config.ID, config.Type, config.Location,
				strconv.FormatFloat(config.MaxPowerW, 'f', 1, 64),
				strconv.FormatBool(config.Enabled.Get()),
			})
		}

		tab := table.Table{
			Headers: []string{"ID", "Type", "Location", "Max Power (W)", "Enabled"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
